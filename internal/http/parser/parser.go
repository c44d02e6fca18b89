package parser

import (
	"bytes"
	"strings"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"

	"github.com/pkg/errors"
)

type Stage uint8

const (
	StageRequestLine Stage = iota
	StageHeaders
	StageBody
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageRequestLine:
		return "request line"
	case StageHeaders:
		return "headers"
	case StageBody:
		return "body"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

type Option func(*Parser)

// WithMaxHeaderBytes caps the request line plus header section. Zero disables
// the limit.
func WithMaxHeaderBytes(n int) Option {
	return func(p *Parser) { p.maxHeaderBytes = n }
}

// WithMaxBodyBytes caps the declared Content-Length. Zero disables the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(p *Parser) { p.maxBodyBytes = n }
}

// Parser turns buffered bytes into requests. It keeps its position between
// calls so a request may arrive in any number of chunks. A Parser belongs to
// one connection and is not safe for concurrent use.
type Parser struct {
	registry       header.Registry
	maxHeaderBytes int
	maxBodyBytes   int64

	buf              []byte
	pos              int
	stage            Stage
	contentLength    int64
	transferEncoding bool
	request          *message.Request
}

func New(registry header.Registry, opts ...Option) *Parser {
	p := &Parser{registry: registry}
	for _, opt := range opts {
		opt(p)
	}
	p.resetRequest()
	return p
}

func (p *Parser) Feed(data []byte) {
	p.buf = append(p.buf, data...)
}

func (p *Parser) Buffered() int { return len(p.buf) }

// Reset drops buffered bytes and any partially parsed request.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.resetRequest()
}

func (p *Parser) resetRequest() {
	p.pos = 0
	p.stage = StageRequestLine
	p.contentLength = -1
	p.transferEncoding = false
	p.request = message.NewRequest()
}

// Next advances the state machine over the buffered bytes. It returns a
// complete request, ErrIncomplete when more bytes are needed, or a
// *ParseError after which the parser has been reset.
func (p *Parser) Next() (*message.Request, error) {
	c := &cursor{buf: p.buf, pos: p.pos}
	for {
		var err error
		switch p.stage {
		case StageRequestLine:
			err = p.expectRequestLine(c)
		case StageHeaders:
			err = p.expectHeaders(c)
		case StageBody:
			err = p.expectBody(c)
		case StageDone:
			return p.finish(), nil
		}

		if err == nil {
			continue
		}
		if errors.Is(err, ErrIncomplete) {
			if p.stage != StageBody && p.headerLimitExceeded(len(p.buf)) {
				return nil, p.fail(errors.Wrapf(ErrHeaderTooLarge, "%d bytes buffered without end of headers", len(p.buf)))
			}
			return nil, ErrIncomplete
		}
		return nil, p.fail(err)
	}
}

func (p *Parser) fail(err error) error {
	perr := &ParseError{Stage: p.stage, Err: err}
	p.Reset()
	return perr
}

func (p *Parser) headerLimitExceeded(n int) bool {
	return p.maxHeaderBytes > 0 && n > p.maxHeaderBytes
}

func (p *Parser) finish() *message.Request {
	req := p.request
	n := copy(p.buf, p.buf[p.pos:])
	p.buf = p.buf[:n]
	p.resetRequest()
	return req
}

func (p *Parser) expectRequestLine(c *cursor) error {
	// RFC 9112 section 2.2: ignore empty lines received before the request line.
	for c.eol() {
		c.advance(2)
		p.pos = c.pos
	}
	if b, ok := c.next(); ok && b == '\r' && c.remaining() < 2 {
		return ErrIncomplete
	}

	method, err := c.token(' ')
	if err != nil {
		return requestLineError(err)
	}
	m, ok := message.ParseMethod(string(method))
	if !ok {
		return errors.Wrapf(ErrUnsupportedMethod, "method %q", method)
	}

	resource, err := c.token(' ')
	if err != nil {
		return requestLineError(err)
	}
	if len(resource) == 0 {
		return errors.Wrap(ErrMalformedRequestLine, "empty resource")
	}

	version, err := c.line()
	if err != nil {
		return requestLineError(err)
	}
	v, ok := message.ParseVersion(string(version))
	if !ok {
		return errors.Wrapf(ErrUnsupportedVersion, "version %q", version)
	}

	p.request.Method = m
	p.request.Resource = string(resource)
	p.request.Version = v
	p.pos = c.pos
	p.stage = StageHeaders
	return nil
}

func requestLineError(err error) error {
	if errors.Is(err, errBareLineBreak) {
		return errors.Wrap(ErrMalformedRequestLine, "line ends early")
	}
	return err
}

func (p *Parser) expectHeaders(c *cursor) error {
	for {
		ln, err := c.line()
		if err != nil {
			if errors.Is(err, errBareLineBreak) {
				return errors.Wrap(ErrMalformedHeader, "bare CR or LF")
			}
			return err
		}
		if p.headerLimitExceeded(c.pos) {
			return errors.Wrapf(ErrHeaderTooLarge, "header section exceeds %d bytes", p.maxHeaderBytes)
		}

		if len(ln) == 0 {
			p.pos = c.pos
			return p.beginBody()
		}

		if err = p.addHeader(ln); err != nil {
			return err
		}
		p.pos = c.pos
	}
}

func (p *Parser) addHeader(ln []byte) error {
	if ln[0] == ' ' || ln[0] == '\t' {
		return errors.Wrap(ErrMalformedHeader, "obsolete line folding")
	}
	rawName, rawValue, found := bytes.Cut(ln, []byte{':'})
	if !found {
		return errors.Wrapf(ErrMalformedHeader, "no colon in %q", ln)
	}
	name := string(bytes.TrimSpace(rawName))
	value := string(bytes.TrimSpace(rawValue))
	if name == "" {
		return errors.Wrapf(ErrMalformedHeader, "empty name in %q", ln)
	}
	if canonical, ok := p.registry.Canonical(name); ok {
		name = canonical
	}
	if strings.EqualFold(name, NameTransferEncoding) {
		p.transferEncoding = true
	}

	h, err := p.makeHeader(name, value)
	if err != nil {
		return err
	}

	if strings.EqualFold(name, header.NameContentLength) {
		n, err := contentLength(h)
		if err != nil {
			return errors.Wrap(ErrInvalidHeaderValue, err.Error())
		}
		if p.contentLength >= 0 && p.contentLength != n {
			return errors.Wrapf(ErrContentLengthMismatch, "conflicting values %d and %d", p.contentLength, n)
		}
		p.contentLength = n
	}

	p.request.Headers.Add(h)
	return nil
}

// makeHeader builds a typed header for registered names and keeps every
// other name as an opaque header.Raw.
func (p *Parser) makeHeader(name, value string) (header.Header, error) {
	h, err := p.registry.Make(name)
	if errors.Is(err, header.ErrUnknownHeader) {
		return header.NewRaw(name, value), nil
	}
	if err != nil {
		return nil, err
	}
	if err = h.Parse(value); err != nil {
		return nil, errors.Wrap(ErrInvalidHeaderValue, err.Error())
	}
	return h, nil
}

func contentLength(h header.Header) (int64, error) {
	if cl, ok := h.(*header.ContentLength); ok {
		return cl.Length(), nil
	}
	cl := &header.ContentLength{}
	if err := cl.Parse(h.Value()); err != nil {
		return 0, err
	}
	return cl.Length(), nil
}

func (p *Parser) beginBody() error {
	if p.transferEncoding {
		return errors.Wrap(ErrUnsupportedTransferEncoding, "transfer-encoding is not supported")
	}
	if p.maxBodyBytes > 0 && p.contentLength > p.maxBodyBytes {
		return errors.Wrapf(ErrBodyTooLarge, "declared %d bytes, limit %d", p.contentLength, p.maxBodyBytes)
	}
	p.stage = StageBody
	return nil
}

func (p *Parser) expectBody(c *cursor) error {
	if p.contentLength > 0 {
		if int64(c.remaining()) < p.contentLength {
			return ErrIncomplete
		}
		n := int(p.contentLength)
		body := make([]byte, n)
		copy(body, c.buf[c.pos:c.pos+n])
		c.advance(n)
		p.request.Body = body
	}

	p.pos = c.pos
	p.stage = StageDone
	return nil
}

// ParseRequest parses data as exactly one complete request. Running out of
// input is reported as a *ParseError rather than ErrIncomplete, and bytes left
// after the body are a Content-Length mismatch.
func ParseRequest(registry header.Registry, data []byte, opts ...Option) (*message.Request, error) {
	p := New(registry, opts...)
	p.Feed(data)

	req, err := p.Next()
	if errors.Is(err, ErrIncomplete) {
		if p.stage == StageBody {
			got := len(p.buf) - p.pos
			return nil, p.fail(errors.Wrapf(ErrContentLengthMismatch, "declared %d bytes, got %d", p.contentLength, got))
		}
		return nil, p.fail(errors.Wrapf(ErrUnexpectedEnd, "after %d bytes", len(data)))
	}
	if err != nil {
		return nil, err
	}

	if trailing := p.Buffered(); trailing > 0 {
		p.Reset()
		return nil, &ParseError{
			Stage: StageBody,
			Err:   errors.Wrapf(ErrContentLengthMismatch, "%d bytes after body", trailing),
		}
	}
	return req, nil
}
