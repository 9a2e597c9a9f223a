package fitsizgo

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

const Version = "0.1.0"
const UserAgent = "fitsiz-miniapp-go/" + Version

var defaultConstantHeaders = http.Header{
	"Accept":          []string{"application/json, text/plain, */*"},
	"Accept-Language": []string{"ru-RU,ru;q=0.9,en-US;q=0.8"},
	"User-Agent":      []string{UserAgent},
}

func (c *Client) buildHeaders(opts types.HeaderOpts) http.Header {
	headers := defaultConstantHeaders.Clone()
	if c.userAgent != "" {
		headers.Set("User-Agent", c.userAgent)
	}

	if opts.Accept != types.ContentTypeNone {
		headers.Set("Accept", string(opts.Accept))
	}

	if opts.WithRequestID {
		headers.Set("X-Request-ID", uuid.NewString())
	}

	for k, v := range opts.Extra {
		headers.Set(k, v)
	}

	return headers
}
