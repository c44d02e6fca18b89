package parser

type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

// advance moves forward n bytes. It refuses to move past the end.
func (c *cursor) advance(n int) bool {
	if n < 0 || n > c.remaining() {
		return false
	}
	c.pos += n
	return true
}

func (c *cursor) eol() bool {
	return c.remaining() >= 2 && c.buf[c.pos] == '\r' && c.buf[c.pos+1] == '\n'
}

// token returns the bytes up to sep and consumes sep. Hitting a line break
// first is errBareLineBreak; running out of input rewinds the cursor.
func (c *cursor) token(sep byte) ([]byte, error) {
	start := c.pos
	for {
		b, ok := c.next()
		if !ok {
			c.pos = start
			return nil, ErrIncomplete
		}
		switch b {
		case sep:
			tok := c.buf[start:c.pos]
			c.advance(1)
			return tok, nil
		case '\r', '\n':
			return nil, errBareLineBreak
		}
		c.advance(1)
	}
}

// line returns the bytes up to CRLF and consumes the CRLF.
func (c *cursor) line() ([]byte, error) {
	start := c.pos
	for {
		b, ok := c.next()
		if !ok {
			c.pos = start
			return nil, ErrIncomplete
		}
		switch b {
		case '\r':
			if c.remaining() < 2 {
				c.pos = start
				return nil, ErrIncomplete
			}
			if !c.eol() {
				return nil, errBareLineBreak
			}
			ln := c.buf[start:c.pos]
			c.advance(2)
			return ln, nil
		case '\n':
			return nil, errBareLineBreak
		}
		c.advance(1)
	}
}
