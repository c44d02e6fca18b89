package stream

import (
	"io"
	"net"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/http/parser"
	"github.com/Ne02ptzero/pistache/internal/middleware"

	"go.uber.org/zap"
)

const DefaultWriteBufferSize = 8192

// Conn is the send side of a connection as seen by a stream.
type Conn interface {
	io.Writer
	RemoteAddr() net.Addr
}

// Peer is handed to handlers so they can answer the request they received.
type Peer interface {
	RemoteAddr() net.Addr
	Respond(resp *message.Response) error
}

// Handler receives each parsed request. OnRequest runs on the connection's
// goroutine and must call peer.Respond before it returns: the write buffer
// and the close state are not safe for concurrent use, and pipelined
// responses are written in the order OnRequest is called.
type Handler interface {
	OnRequest(req *message.Request, peer Peer)
}

type HandlerFunc func(req *message.Request, peer Peer)

func (f HandlerFunc) OnRequest(req *message.Request, peer Peer) {
	f(req, peer)
}

type Options struct {
	WriteBufferSize int
	MaxHeaderBytes  int
	MaxBodyBytes    int64
	Logger          *zap.Logger
}

type Stream interface {
	Peer
	OnInput(p []byte) error
	UseRequestMiddleware(mw middleware.RequestMiddleware)
	UseResponseMiddleware(mw middleware.ResponseMiddleware)
	RequestMiddlewares() []middleware.RequestMiddleware
	ResponseMiddlewares() []middleware.ResponseMiddleware
	Close()
}

type stream struct {
	conn     Conn
	parser   *parser.Parser
	handler  Handler
	logger   *zap.Logger
	writeBuf []byte
	reqMW    []middleware.RequestMiddleware
	respMW   []middleware.ResponseMiddleware

	// closing is set once the current exchange must be the last one.
	closing bool
	closed  bool
}

func New(conn Conn, registry header.Registry, handler Handler, opts Options) Stream {
	size := opts.WriteBufferSize
	if size <= 0 {
		size = DefaultWriteBufferSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &stream{
		conn: conn,
		parser: parser.New(registry,
			parser.WithMaxHeaderBytes(opts.MaxHeaderBytes),
			parser.WithMaxBodyBytes(opts.MaxBodyBytes),
		),
		handler:  handler,
		logger:   logger.With(zap.Stringer("remote", conn.RemoteAddr())),
		writeBuf: make([]byte, size),
	}
}

func (s *stream) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *stream) UseRequestMiddleware(mw middleware.RequestMiddleware) {
	s.reqMW = append(s.reqMW, mw)
}

func (s *stream) UseResponseMiddleware(mw middleware.ResponseMiddleware) {
	s.respMW = append(s.respMW, mw)
}

func (s *stream) RequestMiddlewares() []middleware.RequestMiddleware {
	return s.reqMW
}

func (s *stream) ResponseMiddlewares() []middleware.ResponseMiddleware {
	return s.respMW
}

// Close discards any partially received request. Further input is refused.
func (s *stream) Close() {
	s.parser.Reset()
	s.closed = true
}

func (s *stream) applyRequestMiddlewares(req *message.Request) error {
	for _, m := range s.RequestMiddlewares() {
		if err := m.HandleRequest(req); err != nil {
			s.logger.Debug("request middleware rejected request", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *stream) applyResponseMiddlewares(resp *message.Response) error {
	for _, m := range s.ResponseMiddlewares() {
		if err := m.HandleResponse(resp); err != nil {
			s.logger.Warn("cannot apply response middleware", zap.Error(err))
			return err
		}
	}
	return nil
}
