package protocol

// TransferEncoding identifies how the response body is framed
type TransferEncoding uint8

const (
	EncodingNone TransferEncoding = iota
	EncodingChunked
	EncodingCompress
	EncodingDeflate
	EncodingGZip
)

func (e TransferEncoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingChunked:
		return "chunked"
	case EncodingCompress:
		return "compress"
	case EncodingDeflate:
		return "deflate"
	case EncodingGZip:
		return "gzip"
	default:
		return "unknown"
	}
}

// ConnectionInformation holds the decoding state of one in-flight response.
// One instance belongs to exactly one exchange at a time; reuse requires
// Reset before the next response is parsed.
type ConnectionInformation struct {
	// StatusCode is the parsed status line code, 0 until parsed
	StatusCode uint16

	// Encoding selects the body framing strategy
	Encoding TransferEncoding

	// Remaining counts the bytes left in the current deliverable unit:
	// the whole content-length for EncodingNone, the current chunk for
	// EncodingChunked
	Remaining uint64
}

// Reset clears the connection state for a new exchange
func (c *ConnectionInformation) Reset() {
	c.StatusCode = 0
	c.Encoding = EncodingNone
	c.Remaining = 0
}
