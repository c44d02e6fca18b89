package message

import (
	"fmt"
	"strconv"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/writer"
)

type Response struct {
	Message
	MimeType string

	code Code
}

func NewResponse(code Code, body string) *Response {
	return &Response{
		Message: Message{
			Version: Http11,
			Headers: header.NewHeaders(),
			Body:    []byte(body),
		},
		code: code,
	}
}

func NewResponseFromInt(code int, body string) (*Response, error) {
	c, err := CodeFromInt(code)
	if err != nil {
		return nil, err
	}
	return NewResponse(c, body), nil
}

func (r *Response) Code() Code { return r.code }

// skipHeader reports whether a stored header is replaced by a computed one
// during serialization.
func (r *Response) skipHeader(name string) bool {
	return name == header.NameContentLength || (name == header.NameContentType && r.MimeType != "")
}

// Serialize renders the status line, headers, blank line and body. It stops
// at the first write that does not fit and returns writer.ErrBufferOverflow.
func (r *Response) Serialize(w *writer.Writer) error {
	if _, ok := reasons[r.code]; !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedStatusCode, int(r.code))
	}
	if _, err := w.WriteString(r.Version.String()); err != nil {
		return err
	}
	if err := w.WriteByte(' '); err != nil {
		return err
	}
	if _, err := w.WriteInt(int64(r.code)); err != nil {
		return err
	}
	if err := w.WriteByte(' '); err != nil {
		return err
	}
	if _, err := w.WriteString(r.code.Reason()); err != nil {
		return err
	}
	if _, err := w.WriteCRLF(); err != nil {
		return err
	}

	for _, h := range r.Headers.All() {
		if r.skipHeader(h.Name()) {
			continue
		}
		if _, err := w.WriteHeader(h.Name(), h.Value()); err != nil {
			return err
		}
	}
	if r.MimeType != "" {
		if _, err := w.WriteHeader(header.NameContentType, r.MimeType); err != nil {
			return err
		}
	}
	if _, err := w.WriteHeaderInt(header.NameContentLength, int64(len(r.Body))); err != nil {
		return err
	}
	if _, err := w.WriteCRLF(); err != nil {
		return err
	}

	_, err := w.WriteRaw(r.Body)
	return err
}

// Size is the exact number of bytes Serialize writes.
func (r *Response) Size() int {
	size := len(r.Version.String()) + 1 + len(strconv.Itoa(int(r.code))) + 1 + len(r.code.Reason()) + 2
	for _, h := range r.Headers.All() {
		if r.skipHeader(h.Name()) {
			continue
		}
		size += writer.HeaderSize(h.Name(), h.Value())
	}
	if r.MimeType != "" {
		size += writer.HeaderSize(header.NameContentType, r.MimeType)
	}
	size += writer.HeaderSize(header.NameContentLength, strconv.Itoa(len(r.Body)))
	return size + 2 + len(r.Body)
}
