package protocol

import (
	json "github.com/goccy/go-json"

	"github.com/tinyhttpc/tinyhttpc/errors"
)

// DecodeJSON decodes the response body as JSON straight off the stream,
// without materializing the body first. The decoder pulls bytes through the
// body reader, so chunked and fixed-length framing are handled identically.
func (resp *HttpResponse) DecodeJSON(v interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.NewProtocolErrorCause(
			errors.ProtocolErrorInvalidBody,
			"failed to decode JSON body",
			err,
		)
	}
	return nil
}
