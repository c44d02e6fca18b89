package transport

import (
	"net"
	"time"

	"github.com/Ne02ptzero/pistache/internal/http/stream"
	"github.com/Ne02ptzero/pistache/internal/middleware"
)

const DefaultReadBufferSize = 32768

type Transport interface {
	Listen() (net.Listener, error)
	Serve(listener net.Listener) error
}

type Options struct {
	Stream stream.Options

	// ReadBufferSize is the largest chunk handed to a stream at once.
	ReadBufferSize int
	// IdleTimeout closes connections that send nothing for this long.
	// Zero disables it.
	IdleTimeout time.Duration

	RequestMiddlewares  []middleware.RequestMiddleware
	ResponseMiddlewares []middleware.ResponseMiddleware
}
