package stream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/http/parser"

	"go.uber.org/zap"
)

const NameConnection = "Connection"

var (
	ErrClosed = fmt.Errorf("stream closed")
	// ErrConnectionClose is returned once a request asked for the connection
	// to end. The response has already been sent.
	ErrConnectionClose = fmt.Errorf("connection close requested")
)

// OnInput consumes one chunk of bytes from the connection. Every request
// completed by the chunk is dispatched to the handler in arrival order;
// trailing partial data is kept for the next call.
func (s *stream) OnInput(p []byte) error {
	if s.closed {
		return ErrClosed
	}

	s.parser.Feed(p)
	for {
		req, err := s.parser.Next()
		if errors.Is(err, parser.ErrIncomplete) {
			return nil
		}
		if err != nil {
			return s.reject(err)
		}

		s.logger.Debug("request",
			zap.Stringer("method", req.Method),
			zap.String("resource", req.Resource),
		)

		if err = s.applyRequestMiddlewares(req); err != nil {
			return s.reject(err)
		}

		s.closing = wantsClose(req)
		s.handler.OnRequest(req, s)
		if s.closing {
			s.Close()
			return ErrConnectionClose
		}
	}
}

// reject answers a request that cannot be served and reports err so the
// caller drops the connection.
func (s *stream) reject(err error) error {
	code := statusFor(err)
	s.logger.Info("rejecting request", zap.Error(err), zap.Int("status", int(code)))

	s.closing = true
	if werr := s.Respond(message.NewResponse(code, code.Reason())); werr != nil {
		s.logger.Warn("cannot send error response", zap.Error(werr))
	}
	s.Close()
	return err
}

func statusFor(err error) message.Code {
	switch {
	case errors.Is(err, parser.ErrUnsupportedMethod),
		errors.Is(err, parser.ErrUnsupportedTransferEncoding):
		return message.NotImplemented
	case errors.Is(err, parser.ErrBodyTooLarge):
		return message.RequestEntityTooLarge
	default:
		return message.BadRequest
	}
}

// wantsClose applies the HTTP/1.x persistence rules: 1.1 keeps the
// connection unless told to close, 1.0 closes unless told to keep it.
func wantsClose(req *message.Request) bool {
	if req.Version == message.Http10 {
		return !hasConnectionToken(req, "keep-alive")
	}
	return hasConnectionToken(req, "close")
}

func hasConnectionToken(req *message.Request, token string) bool {
	for _, h := range req.Headers.All() {
		if !strings.EqualFold(h.Name(), NameConnection) {
			continue
		}
		for _, v := range strings.Split(h.Value(), ",") {
			if strings.EqualFold(strings.TrimSpace(v), token) {
				return true
			}
		}
	}
	return false
}

func connectionClose() header.Header {
	return header.NewRaw(NameConnection, "close")
}
