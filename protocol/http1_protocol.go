package protocol

import (
	"fmt"
	"strings"

	"github.com/tinyhttpc/tinyhttpc/transport"
)

// Http1Protocol drives HTTP/1.1 exchanges over a transport. Requests are
// formatted into a reused buffer; responses are decoded incrementally by a
// ResponseReader instead of being buffered whole, so memory stays bounded
// by the caller's read buffers regardless of body size.
type Http1Protocol struct {
	transport transport.Transport
	reader    *ResponseReader
	buffer    []byte
	host      string
	port      int
}

// NewHttp1Protocol creates a new HTTP/1.1 protocol handler
func NewHttp1Protocol(t transport.Transport) *Http1Protocol {
	return &Http1Protocol{
		transport: t,
		reader:    NewResponseReader(t),
		buffer:    make([]byte, 0, 1024),
	}
}

// Connect establishes a connection to the specified host and port
func (p *Http1Protocol) Connect(host string, port int) error {
	if err := p.transport.Connect(host, port); err != nil {
		return err
	}
	p.host = host
	p.port = port
	return nil
}

// Disconnect closes the connection
func (p *Http1Protocol) Disconnect() error {
	return p.transport.Close()
}

// Reader returns the response reader bound to this protocol's transport
func (p *Http1Protocol) Reader() *ResponseReader {
	return p.reader
}

// buildRequest formats an HTTP request into the internal buffer
func (p *Http1Protocol) buildRequest(req *HttpRequest) {
	p.buffer = p.buffer[:0] // Reset buffer

	// Request line
	p.buffer = append(p.buffer, fmt.Sprintf("%s %s HTTP/1.1\r\n", req.Method, req.Path)...)

	// Headers, adding Host from the connect target unless the caller set one
	hostSent := false
	for _, header := range req.Headers {
		if strings.EqualFold(header.Key, "Host") {
			hostSent = true
		}
		p.buffer = append(p.buffer, fmt.Sprintf("%s: %s\r\n", header.Key, header.Value)...)
	}
	if !hostSent && p.host != "" {
		p.buffer = append(p.buffer, fmt.Sprintf("Host: %s:%d\r\n", p.host, p.port)...)
	}

	// Blank line
	p.buffer = append(p.buffer, "\r\n"...)

	// Body
	if len(req.Body) > 0 {
		p.buffer = append(p.buffer, req.Body...)
	}
}

// PerformRequest sends req and parses the response status line and headers.
// The returned response's Body streams on demand; drain or discard it
// before issuing the next request on this connection.
func (p *Http1Protocol) PerformRequest(req *HttpRequest) (*HttpResponse, error) {
	p.buildRequest(req)

	if _, err := p.transport.Write(p.buffer); err != nil {
		return nil, err
	}

	p.reader.Reset()

	status, err := p.reader.ReadStatus()
	if err != nil {
		return nil, err
	}

	var headers []string
	if err := p.reader.ReadHeaders(func(line string) {
		headers = append(headers, line)
	}); err != nil {
		return nil, err
	}

	return &HttpResponse{
		StatusCode: status,
		Encoding:   p.reader.Connection().Encoding,
		Headers:    headers,
		Body:       p.reader,
	}, nil
}
