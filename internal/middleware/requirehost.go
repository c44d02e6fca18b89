package middleware

import (
	"fmt"

	"github.com/Ne02ptzero/pistache/internal/http/message"
)

var ErrMissingHost = fmt.Errorf("missing Host header")

// RequireHost rejects HTTP/1.1 requests that carry no Host header.
// HTTP/1.0 requests pass through unchanged.
type RequireHost struct{}

func NewRequireHost() *RequireHost {
	return &RequireHost{}
}

func (rh *RequireHost) HandleRequest(req *message.Request) error {
	if req.Version != message.Http11 {
		return nil
	}
	if _, ok := req.Host(); !ok {
		return fmt.Errorf("%s %s: %w", req.Method, req.Resource, ErrMissingHost)
	}
	return nil
}
