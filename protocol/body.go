package protocol

import (
	"io"

	"github.com/tinyhttpc/tinyhttpc/errors"
)

// ReadByte returns the next decoded body byte. io.EOF marks the end of the
// body. When the current chunk is exhausted the next chunk header is parsed
// transparently, so single-byte consumers cross chunk boundaries without
// noticing them.
func (r *ResponseReader) ReadByte() (byte, error) {
	if r.done {
		return 0, io.EOF
	}

	if r.conn.Remaining == 0 {
		if r.conn.Encoding != EncodingChunked {
			r.done = true
			return 0, io.EOF
		}

		size, err := r.readChunkSize()
		if err != nil {
			r.done = true
			if errors.IsProtocol(err) {
				return 0, err
			}
			// transport failure mid-stream reads as end of body
			return 0, io.EOF
		}
		if size == 0 {
			// terminal chunk
			r.discardChunkTrailer()
			r.done = true
			return 0, io.EOF
		}
		r.conn.Remaining = size
	}

	b, err := r.readRawByte()
	if err != nil {
		r.done = true
		return 0, io.EOF
	}
	r.conn.Remaining--
	return b, nil
}

// Read fills p with decoded body bytes. The buffer is filled completely
// except at the permanent end of the body, where the final call returns a
// short count and subsequent calls return io.EOF. Chunk-size lines and
// their CRLF framing never appear in p.
func (r *ResponseReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.done {
		return 0, io.EOF
	}

	// Fast path: the request fits inside the current unit, so hand the
	// buffer straight to the transport and decrement the counter.
	if uint64(len(p)) <= r.conn.Remaining {
		n, err := r.readFull(p)
		r.conn.Remaining -= uint64(n)
		if err != nil {
			r.done = true
			if n == 0 {
				return 0, io.EOF
			}
		}
		return n, nil
	}

	// Slow path: the request spans at least one unit boundary.
	total := 0
	for total < len(p) {
		if r.conn.Remaining == 0 {
			if r.conn.Encoding != EncodingChunked {
				// fixed-length body fully delivered
				r.done = true
				break
			}

			size, err := r.readChunkSize()
			if err != nil {
				r.done = true
				if errors.IsProtocol(err) {
					return total, err
				}
				break
			}
			if size == 0 {
				r.discardChunkTrailer()
				r.done = true
				break
			}
			r.conn.Remaining = size
		}

		readSize := len(p) - total
		if uint64(readSize) > r.conn.Remaining {
			readSize = int(r.conn.Remaining)
		}

		n, err := r.readFull(p[total : total+readSize])
		total += n
		r.conn.Remaining -= uint64(n)
		if err != nil {
			r.done = true
			break
		}
	}

	if total == 0 && r.done {
		return 0, io.EOF
	}
	return total, nil
}

// ReadAll streams the remaining body through sink in blocks of up to
// len(buf) bytes, reusing buf as scratch space. Draining stops when a read
// comes back shorter than the buffer, which marks the end of the body. If
// sink returns false the drain aborts immediately with an aborted error and
// no further bytes are read. The returned count is the number of bytes
// handed to sink.
func (r *ResponseReader) ReadAll(buf []byte, sink func(block []byte) bool) (int64, error) {
	if len(buf) == 0 {
		return 0, errors.NewInvalidArgumentError("scratch buffer must not be empty")
	}

	var total int64
	for {
		n, err := r.Read(buf)
		total += int64(n)

		if n > 0 && !sink(buf[:n]) {
			return total, errors.NewAbortedError("body sink rejected block")
		}

		if err != nil && err != io.EOF {
			return total, err
		}
		if n < len(buf) {
			return total, nil
		}
	}
}
