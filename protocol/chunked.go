package protocol

import (
	"strconv"

	"github.com/tinyhttpc/tinyhttpc/errors"
)

// maxChunkSizeDigits bounds the hex chunk-size field. 8 digits already
// allow a 4GiB chunk; anything longer is a broken peer.
const maxChunkSizeDigits = 8

// readChunkSize parses the size line that introduces the next chunk. Any
// CR/LF bytes left over from the previous chunk's trailer are skipped
// first, then leading hex digits are collected up to the terminating CR
// (chunk extensions after the digits are ignored) and the following LF is
// discarded.
//
// A size line with no hex digits, or with more than maxChunkSizeDigits of
// them, is reported as an invalid-chunked-encoding protocol error rather
// than being conflated with a terminal zero chunk.
func (r *ResponseReader) readChunkSize() (uint64, error) {
	b, err := r.readRawByte()
	for err == nil && (b == '\r' || b == '\n') {
		b, err = r.readRawByte()
	}
	if err != nil {
		return 0, err
	}

	var digits [maxChunkSizeDigits]byte
	n := 0
	sizeEnded := false
	for b != '\r' {
		if !sizeEnded && isHexDigit(b) {
			if n == maxChunkSizeDigits {
				return 0, errors.NewProtocolError(
					errors.ProtocolErrorInvalidChunkedEncoding,
					"chunk size exceeds 8 hex digits",
				)
			}
			digits[n] = b
			n++
		} else {
			// chunk extension or stray bytes between the size and the CR
			sizeEnded = true
		}

		if b, err = r.readRawByte(); err != nil {
			return 0, err
		}
	}

	// discard the \n after the \r
	if _, err := r.readRawByte(); err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, errors.NewProtocolError(
			errors.ProtocolErrorInvalidChunkedEncoding,
			"chunk size line carries no hex digits",
		)
	}

	size, perr := strconv.ParseUint(string(digits[:n]), 16, 64)
	if perr != nil {
		return 0, errors.NewProtocolErrorCause(
			errors.ProtocolErrorInvalidChunkedEncoding,
			"invalid chunk size "+strconv.Quote(string(digits[:n])),
			perr,
		)
	}

	return size, nil
}

// discardChunkTrailer consumes the CRLF that follows the terminal zero
// chunk. The peer may close immediately after it, so read failures here
// are ignored.
func (r *ResponseReader) discardChunkTrailer() {
	if _, err := r.readRawByte(); err != nil {
		return
	}
	r.readRawByte()
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
