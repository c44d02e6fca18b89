package message

import (
	"strings"

	"github.com/Ne02ptzero/pistache/internal/http/header"
)

type Message struct {
	Version Version
	Headers *header.Headers
	Body    []byte
}

type Request struct {
	Message
	Method Method
	// Resource is the request-target exactly as received, query included.
	Resource string
}

func NewRequest() *Request {
	return &Request{
		Message: Message{
			Version: Http11,
			Headers: header.NewHeaders(),
		},
	}
}

func (r *Request) Path() string {
	path, _, _ := strings.Cut(r.Resource, "?")
	return path
}

func (r *Request) Query() string {
	_, query, _ := strings.Cut(r.Resource, "?")
	return query
}

// ContentLength reports the declared length, if the request carried a typed
// Content-Length header.
func (r *Request) ContentLength() (int64, bool) {
	h, err := r.Headers.Get(header.NameContentLength)
	if err != nil {
		return 0, false
	}
	cl, ok := h.(*header.ContentLength)
	if !ok {
		return 0, false
	}
	return cl.Length(), true
}

// Host reports the request's Host header. Names are matched without regard
// to case, so a raw "host" header counts when Host is not registered.
func (r *Request) Host() (string, bool) {
	h, err := r.Headers.Get(header.NameHost)
	if err != nil {
		h = r.headerFold(header.NameHost)
	}
	if h == nil {
		return "", false
	}
	if host, ok := h.(*header.Host); ok {
		return host.Host(), true
	}
	return h.Value(), true
}

func (r *Request) headerFold(name string) header.Header {
	for _, h := range r.Headers.All() {
		if strings.EqualFold(h.Name(), name) {
			return h
		}
	}
	return nil
}
