package router

import (
	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
)

func Ping(*message.Request) *message.Response {
	return message.NewResponse(message.OK, "pong")
}

// Echo answers with the request body and its Content-Type.
func Echo(req *message.Request) *message.Response {
	resp := message.NewResponse(message.OK, string(req.Body))
	if h, err := req.Headers.Get(header.NameContentType); err == nil {
		resp.MimeType = h.Value()
	}
	return resp
}

func (r *Router) HandleDefaults() {
	r.Handle(message.Get, "/ping", Ping)
	r.Handle(message.Post, "/echo", Echo)
}
