package protocol

// HttpMethod represents HTTP request methods
type HttpMethod int

const (
	MethodGet HttpMethod = iota
	MethodPost
	MethodPut
	MethodHead
	MethodDelete
	MethodPatch
)

func (m HttpMethod) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodHead:
		return "HEAD"
	case MethodDelete:
		return "DELETE"
	case MethodPatch:
		return "PATCH"
	default:
		return "GET"
	}
}

// HttpHeader represents an HTTP header key-value pair
type HttpHeader struct {
	Key   string
	Value string
}

// HttpRequest represents an HTTP request
type HttpRequest struct {
	Method  HttpMethod
	Path    string
	Headers []HttpHeader
	Body    []byte
}

// HttpResponse represents a decoded response whose body has not been read
// yet. Headers holds the raw header lines in arrival order. Body streams
// the payload on demand and is only valid until the next request on the
// same connection.
type HttpResponse struct {
	StatusCode uint16
	Encoding   TransferEncoding
	Headers    []string
	Body       *ResponseReader
}
