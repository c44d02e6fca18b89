package middleware

import (
	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/random"
)

const NameRequestID = "X-Request-Id"

// RequestID tags requests that arrive without an X-Request-Id header with a
// freshly generated one, so handlers can correlate their logs.
type RequestID struct {
	random random.Random
}

func NewRequestID(r random.Random) *RequestID {
	return &RequestID{random: r}
}

func (ri *RequestID) HandleRequest(req *message.Request) error {
	if req.Headers.Has(NameRequestID) {
		return nil
	}
	id, err := ri.random.Hex(8)
	if err != nil {
		return err
	}
	req.Headers.Add(header.NewRaw(NameRequestID, id))
	return nil
}
