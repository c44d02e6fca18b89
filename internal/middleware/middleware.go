package middleware

import (
	"github.com/Ne02ptzero/pistache/internal/http/message"
)

type RequestMiddleware interface {
	HandleRequest(req *message.Request) error
}

type ResponseMiddleware interface {
	HandleResponse(resp *message.Response) error
}
