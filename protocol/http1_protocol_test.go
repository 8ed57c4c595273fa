package protocol

import (
	"io"
	"strings"
	"testing"
)

func TestBuildRequest_WireFormat(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 8080); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	_, err := p.PerformRequest(&HttpRequest{
		Method: MethodGet,
		Path:   "/index.html",
		Headers: []HttpHeader{
			{Key: "Accept", Value: "text/html"},
		},
	})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	want := "GET /index.html HTTP/1.1\r\n" +
		"Accept: text/html\r\n" +
		"Host: example.com:8080\r\n" +
		"\r\n"
	if got := ft.written.String(); got != want {
		t.Errorf("Request bytes mismatch.\nWant:\n%q\nGot:\n%q", want, got)
	}
}

func TestBuildRequest_CallerHostNotDuplicated(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	_, err := p.PerformRequest(&HttpRequest{
		Method: MethodGet,
		Path:   "/",
		Headers: []HttpHeader{
			{Key: "host", Value: "other.example.com"},
		},
	})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	if strings.Count(strings.ToLower(ft.written.String()), "host:") != 1 {
		t.Errorf("Expected exactly one Host header, got:\n%q", ft.written.String())
	}
}

func TestPerformRequest_BodySentAfterBlankLine(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 201 Created\r\nContent-Length: 0\r\n\r\n")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	resp, err := p.PerformRequest(&HttpRequest{
		Method: MethodPost,
		Path:   "/items",
		Headers: []HttpHeader{
			{Key: "Content-Length", Value: "7"},
		},
		Body: []byte(`{"a":1}`),
	})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
	if !strings.HasSuffix(ft.written.String(), "\r\n\r\n{\"a\":1}") {
		t.Errorf("Body must follow the blank line, got:\n%q", ft.written.String())
	}
}

func TestPerformRequest_StreamingExchange(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\n" +
		"Server: test\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	resp, err := p.PerformRequest(&HttpRequest{Method: MethodGet, Path: "/wiki"})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Encoding != EncodingChunked {
		t.Errorf("Expected chunked encoding, got %s", resp.Encoding)
	}
	if len(resp.Headers) != 2 || resp.Headers[0] != "Server: test" {
		t.Errorf("Unexpected headers: %v", resp.Headers)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Body read failed: %v", err)
	}
	if string(body) != "Wikipedia" {
		t.Errorf("Expected body %q, got %q", "Wikipedia", string(body))
	}
}

func TestDecodeJSON_FromChunkedBody(t *testing.T) {
	// the JSON payload is split across chunk boundaries; the decoder
	// consumes the body stream directly
	ft := newFakeTransport("HTTP/1.1 200 OK\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"a\r\n{\"name\":\"g\r\na\r\no\",\"id\":7}\r\n0\r\n\r\n")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	resp, err := p.PerformRequest(&HttpRequest{Method: MethodGet, Path: "/item/7"})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	var item struct {
		Name string `json:"name"`
		ID   int    `json:"id"`
	}
	if err := resp.DecodeJSON(&item); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if item.Name != "go" || item.ID != 7 {
		t.Errorf("Unexpected decoded value: %+v", item)
	}
}

func TestDecodeJSON_MalformedBody(t *testing.T) {
	ft := newFakeTransport("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\n{\"a\":")
	p := NewHttp1Protocol(ft)
	if err := p.Connect("example.com", 80); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	resp, err := p.PerformRequest(&HttpRequest{Method: MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("PerformRequest failed: %v", err)
	}

	var v map[string]int
	if err := resp.DecodeJSON(&v); err == nil {
		t.Error("Expected error for malformed JSON body, got nil")
	}
}
