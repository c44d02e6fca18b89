package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/http/writer"

	"go.uber.org/zap"
)

// Respond runs the response middlewares, serializes resp and sends it.
func (s *stream) Respond(resp *message.Response) error {
	if err := s.applyResponseMiddlewares(resp); err != nil {
		return err
	}
	if s.closing {
		resp.Headers.Add(connectionClose())
	}

	if err := WriteResponse(s.conn, resp, s.writeBuf); err != nil {
		s.logger.Warn("cannot write response", zap.Error(err), zap.Int("status", int(resp.Code())))
		return err
	}
	return nil
}

// WriteResponse serializes resp into buf and writes it to w. A response that
// does not fit buf is serialized again into a buffer of its exact size.
func WriteResponse(w io.Writer, resp *message.Response, buf []byte) error {
	wr := writer.New(buf)
	err := resp.Serialize(wr)
	if errors.Is(err, writer.ErrBufferOverflow) {
		wr = writer.New(make([]byte, resp.Size()))
		err = resp.Serialize(wr)
	}
	if err != nil {
		return fmt.Errorf("serialize response: %w", err)
	}

	if _, err = w.Write(wr.Bytes()); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
