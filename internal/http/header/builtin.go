package header

import (
	"fmt"
	"mime"
	"strconv"
	"strings"
)

const (
	NameContentLength = "Content-Length"
	NameHost          = "Host"
	NameContentType   = "Content-Type"
	NameUserAgent     = "User-Agent"
)

type ContentLength struct {
	length int64
}

func NewContentLength(n int64) *ContentLength {
	return &ContentLength{length: n}
}

func (c *ContentLength) Name() string { return NameContentLength }

func (c *ContentLength) Parse(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidValue, NameContentLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return fmt.Errorf("%w: %s %q is not a decimal number", ErrInvalidValue, NameContentLength, raw)
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, NameContentLength, raw, err)
	}
	c.length = n
	return nil
}

func (c *ContentLength) Value() string { return strconv.FormatInt(c.length, 10) }

func (c *ContentLength) Length() int64 { return c.length }

type Host struct {
	raw     string
	host    string
	port    uint16
	hasPort bool
}

func (h *Host) Name() string { return NameHost }

// Parse accepts "host", "host:port", "[v6]" and "[v6]:port".
func (h *Host) Parse(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidValue, NameHost)
	}

	host, port := raw, ""
	if strings.HasPrefix(raw, "[") {
		end := strings.IndexByte(raw, ']')
		if end == -1 {
			return fmt.Errorf("%w: unterminated IPv6 literal in %s %q", ErrInvalidValue, NameHost, raw)
		}
		host = raw[1:end]
		rest := raw[end+1:]
		if rest != "" {
			if rest[0] != ':' {
				return fmt.Errorf("%w: unexpected %q after IPv6 literal", ErrInvalidValue, rest)
			}
			port = rest[1:]
		}
	} else if i := strings.LastIndexByte(raw, ':'); i != -1 {
		host, port = raw[:i], raw[i+1:]
	}

	if host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidValue, raw)
	}

	h.raw = raw
	h.host = host
	if port != "" {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return fmt.Errorf("%w: bad port in %s %q", ErrInvalidValue, NameHost, raw)
		}
		h.port = uint16(p)
		h.hasPort = true
	}
	return nil
}

func (h *Host) Value() string { return h.raw }

func (h *Host) Host() string { return h.host }

func (h *Host) Port() (uint16, bool) { return h.port, h.hasPort }

type ContentType struct {
	raw       string
	mediaType string
	params    map[string]string
}

func (c *ContentType) Name() string { return NameContentType }

func (c *ContentType) Parse(raw string) error {
	mediaType, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, NameContentType, raw, err)
	}
	c.raw = raw
	c.mediaType = mediaType
	c.params = params
	return nil
}

func (c *ContentType) Value() string { return c.raw }

func (c *ContentType) MediaType() string { return c.mediaType }

func (c *ContentType) Param(key string) string { return c.params[key] }

type UserAgent struct {
	agent string
}

func (u *UserAgent) Name() string { return NameUserAgent }

func (u *UserAgent) Parse(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidValue, NameUserAgent)
	}
	u.agent = raw
	return nil
}

func (u *UserAgent) Value() string { return u.agent }
