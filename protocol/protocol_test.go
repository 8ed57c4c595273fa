package protocol

import (
	"bytes"

	"github.com/tinyhttpc/tinyhttpc/errors"
)

// fakeTransport feeds canned response bytes to the reader and records
// everything written. maxRead caps the bytes returned per Read call to
// simulate a fragmenting network.
type fakeTransport struct {
	data    *bytes.Reader
	written bytes.Buffer
	open    bool
	maxRead int
}

func newFakeTransport(response string) *fakeTransport {
	return &fakeTransport{
		data: bytes.NewReader([]byte(response)),
		open: true,
	}
}

func (f *fakeTransport) Connect(host string, port int) error {
	f.open = true
	return nil
}

func (f *fakeTransport) Write(buf []byte) (int, error) {
	return f.written.Write(buf)
}

func (f *fakeTransport) Read(buf []byte) (int, error) {
	if f.maxRead > 0 && len(buf) > f.maxRead {
		buf = buf[:f.maxRead]
	}
	n, err := f.data.Read(buf)
	if err != nil {
		return n, errors.NewTransportError(
			errors.TransportErrorConnectionClosed,
			"connection closed by peer",
			err,
		)
	}
	return n, nil
}

func (f *fakeTransport) Connected() bool {
	return f.open
}

func (f *fakeTransport) Close() error {
	f.open = false
	return nil
}
