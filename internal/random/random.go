package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

var ErrInvalidLength = fmt.Errorf("invalid length")

// Random produces identifiers of n random bytes rendered as lowercase hex.
type Random interface {
	Hex(n int) (string, error)
}

type random struct {
	reader io.Reader
}

func New() Random {
	return &random{reader: rand.Reader}
}

func NewWithReader(reader io.Reader) Random {
	return &random{reader: reader}
}

func (ran *random) Hex(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(ran.reader, b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
