package client

import (
	"strings"

	"github.com/tinyhttpc/tinyhttpc/errors"
	"github.com/tinyhttpc/tinyhttpc/protocol"
)

// HttpClient provides a high-level HTTP client API
type HttpClient struct {
	protocol *protocol.Http1Protocol
}

// NewHttpClient creates a new HTTP client with the given protocol
func NewHttpClient(proto *protocol.Http1Protocol) *HttpClient {
	return &HttpClient{
		protocol: proto,
	}
}

// Connect establishes a connection to the specified host and port
func (c *HttpClient) Connect(host string, port int) error {
	return c.protocol.Connect(host, port)
}

// Disconnect closes the connection
func (c *HttpClient) Disconnect() error {
	return c.protocol.Disconnect()
}

// Get performs a GET request. The response body streams on demand.
func (c *HttpClient) Get(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	if len(req.Body) > 0 {
		return nil, errors.NewInvalidArgumentError("GET request cannot have a body")
	}
	req.Method = protocol.MethodGet
	return c.protocol.PerformRequest(req)
}

// Head performs a HEAD request
func (c *HttpClient) Head(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	if len(req.Body) > 0 {
		return nil, errors.NewInvalidArgumentError("HEAD request cannot have a body")
	}
	req.Method = protocol.MethodHead
	return c.protocol.PerformRequest(req)
}

// Post performs a POST request
func (c *HttpClient) Post(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	if err := c.validateBodyRequest(req, "POST"); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodPost
	return c.protocol.PerformRequest(req)
}

// Put performs a PUT request
func (c *HttpClient) Put(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	if err := c.validateBodyRequest(req, "PUT"); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodPut
	return c.protocol.PerformRequest(req)
}

// Patch performs a PATCH request
func (c *HttpClient) Patch(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	if err := c.validateBodyRequest(req, "PATCH"); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodPatch
	return c.protocol.PerformRequest(req)
}

// Delete performs a DELETE request. A body is allowed but not required.
func (c *HttpClient) Delete(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	req.Method = protocol.MethodDelete
	return c.protocol.PerformRequest(req)
}

// validateBodyRequest validates that a body-carrying request has required fields
func (c *HttpClient) validateBodyRequest(req *protocol.HttpRequest, method string) error {
	if len(req.Body) == 0 {
		return errors.NewInvalidArgumentError(method + " request must have a body")
	}

	// Check for Content-Length header
	hasContentLength := false
	for _, header := range req.Headers {
		if strings.EqualFold(header.Key, "Content-Length") {
			hasContentLength = true
			break
		}
	}

	if !hasContentLength {
		return errors.NewInvalidArgumentError(method + " request must have Content-Length header")
	}

	return nil
}
