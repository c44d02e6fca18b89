package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/stream"

	"go.uber.org/zap"
)

type httpHandler struct {
	registry header.Registry
	handler  stream.Handler
	opts     Options
	logger   *zap.Logger
}

func newHTTPHandler(registry header.Registry, handler stream.Handler, opts Options, logger *zap.Logger) *httpHandler {
	if opts.ReadBufferSize <= 0 {
		opts.ReadBufferSize = DefaultReadBufferSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Stream.Logger = logger

	return &httpHandler{
		registry: registry,
		handler:  handler,
		opts:     opts,
		logger:   logger,
	}
}

func (hh *httpHandler) newStream(conn net.Conn) stream.Stream {
	s := stream.New(conn, hh.registry, hh.handler, hh.opts.Stream)
	for _, mw := range hh.opts.RequestMiddlewares {
		s.UseRequestMiddleware(mw)
	}
	for _, mw := range hh.opts.ResponseMiddlewares {
		s.UseResponseMiddleware(mw)
	}
	return s
}

// handle reads the connection in chunks until the peer goes away, the idle
// timeout fires or the stream asks for the connection to end.
func (hh *httpHandler) handle(conn net.Conn) {
	defer hh.closeConnection(conn)

	s := hh.newStream(conn)
	defer s.Close()

	buf := make([]byte, hh.opts.ReadBufferSize)
	for {
		if err := hh.extendDeadline(conn); err != nil {
			hh.logger.Warn("cannot set read deadline", zap.Error(err))
			return
		}

		n, err := conn.Read(buf)
		if n > 0 {
			if ierr := s.OnInput(buf[:n]); ierr != nil {
				if !errors.Is(ierr, stream.ErrConnectionClose) {
					hh.logger.Debug("closing connection after input error",
						zap.Stringer("remote", conn.RemoteAddr()), zap.Error(ierr))
				}
				return
			}
		}
		if err != nil {
			hh.logReadError(conn, err)
			return
		}
	}
}

func (hh *httpHandler) extendDeadline(conn net.Conn) error {
	if hh.opts.IdleTimeout <= 0 {
		return nil
	}
	return conn.SetReadDeadline(time.Now().Add(hh.opts.IdleTimeout))
}

func (hh *httpHandler) logReadError(conn net.Conn, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
	case errors.Is(err, os.ErrDeadlineExceeded):
		hh.logger.Debug("idle connection timed out", zap.Stringer("remote", conn.RemoteAddr()))
	default:
		hh.logger.Warn("error reading connection", zap.Stringer("remote", conn.RemoteAddr()), zap.Error(err))
	}
}

func (hh *httpHandler) closeConnection(conn net.Conn) {
	err := conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		hh.logger.Warn("error closing connection", zap.Error(err))
	}
}
