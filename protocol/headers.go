package protocol

import (
	"strconv"
	"strings"
)

// HeaderLineLimit bounds a single header line. Longer lines are truncated,
// not rejected.
const HeaderLineLimit = 2048

// HeaderFunc receives each raw header line in arrival order
type HeaderFunc func(line string)

// ReadHeaders consumes header lines up to the blank line that separates
// headers from the body, extracting Transfer-Encoding and Content-Length
// into the connection state. If sink is non-nil it receives every raw line.
//
// The first recognized Transfer-Encoding value wins and is never
// overwritten. Content-Length is honored only while no transfer encoding
// has been seen, so a chunked response that also carries a Content-Length
// header is framed by its chunks, matching what servers actually send.
func (r *ResponseReader) ReadHeaders(sink HeaderFunc) error {
	r.conn.Encoding = EncodingNone

	for {
		line, err := r.readLine(HeaderLineLimit)
		if err != nil {
			return err
		}
		if len(line) == 0 {
			return nil
		}

		if sink != nil {
			sink(line)
		}

		if r.conn.Encoding != EncodingNone {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "transfer-encoding"):
			switch {
			case strings.HasSuffix(lower, "chunked"):
				r.conn.Encoding = EncodingChunked
				// chunk counter is armed lazily on the first body read
				r.conn.Remaining = 0
			case strings.HasSuffix(lower, "compress"):
				r.conn.Encoding = EncodingCompress
			case strings.HasSuffix(lower, "deflate"):
				r.conn.Encoding = EncodingDeflate
			case strings.HasSuffix(lower, "gzip"):
				r.conn.Encoding = EncodingGZip
			}
		case strings.HasPrefix(lower, "content-length"):
			if k := strings.IndexByte(line, ' '); k >= 0 {
				if n, perr := strconv.ParseUint(strings.TrimSpace(line[k+1:]), 10, 64); perr == nil {
					r.conn.Remaining = n
				}
			}
		}
	}
}
