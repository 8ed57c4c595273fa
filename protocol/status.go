package protocol

import (
	"strconv"
	"strings"
)

// ReadStatus reads the response status line and returns the status code.
// Empty lines before the status line are skipped; some servers emit spurious
// blank lines ahead of it. A status line that does not carry a numeric code
// in its second field yields 0 rather than an error.
func (r *ResponseReader) ReadStatus() (uint16, error) {
	for {
		line, err := r.readLine(HeaderLineLimit)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.conn.StatusCode = parseStatusCode(line)
		return r.conn.StatusCode, nil
	}
}

// parseStatusCode extracts the numeric code from a status line such as
// "HTTP/1.1 200 OK". Malformed lines parse to 0.
func parseStatusCode(line string) uint16 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}

	token := fields[1]
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}

	code, err := strconv.ParseUint(token[:i], 10, 16)
	if err != nil {
		return 0
	}
	return uint16(code)
}
