package protocol

import (
	"github.com/tinyhttpc/tinyhttpc/errors"
	"github.com/tinyhttpc/tinyhttpc/transport"
)

// ResponseReader decodes one HTTP/1.1 response incrementally from a
// transport: status line, then headers, then the body byte stream. It never
// buffers the message; every read pulls only what the caller asked for.
//
// A ResponseReader is single-threaded and serves one exchange at a time.
// Call Reset before reusing it for the next response on the same connection.
type ResponseReader struct {
	tr   transport.Transport
	conn ConnectionInformation
	done bool
	one  [1]byte
}

// NewResponseReader creates a response reader over the given transport
func NewResponseReader(tr transport.Transport) *ResponseReader {
	return &ResponseReader{
		tr: tr,
	}
}

// Connection returns the decoding state of the current exchange
func (r *ResponseReader) Connection() *ConnectionInformation {
	return &r.conn
}

// Reset prepares the reader for the next exchange on the same transport
func (r *ResponseReader) Reset() {
	r.conn.Reset()
	r.done = false
}

// readRawByte reads exactly one byte from the transport
func (r *ResponseReader) readRawByte() (byte, error) {
	for {
		n, err := r.tr.Read(r.one[:])
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return r.one[0], nil
		}
	}
}

// readFull fills p from the transport, stopping early only on error
func (r *ResponseReader) readFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := r.tr.Read(p[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, errors.NewTransportError(
				errors.TransportErrorSocketReadFailure,
				"transport made no progress",
				nil,
			)
		}
	}
	return total, nil
}

// readLine reads a CR-terminated line and discards the LF that follows.
// Lines longer than max are truncated but consumed through their CR, so
// the stream position stays aligned with the message framing.
func (r *ResponseReader) readLine(max int) (string, error) {
	line := make([]byte, 0, 64)
	for {
		b, err := r.readRawByte()
		if err != nil {
			return string(line), err
		}
		if b == '\r' {
			break
		}
		if len(line) < max {
			line = append(line, b)
		}
	}
	// discard the \n after the \r
	if _, err := r.readRawByte(); err != nil {
		return string(line), err
	}
	return string(line), nil
}
