package random

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct {
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	return 0, f.err
}

func TestRandom_Hex(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantLen int
		wantErr bool
	}{
		{"one byte", 1, 2, false},
		{"request id", 8, 16, false},
		{"zero", 0, 0, true},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := New().Hex(tt.n)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLength)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, id, tt.wantLen)
		})
	}
}

func TestRandom_HexDeterministic(t *testing.T) {
	r := NewWithReader(bytes.NewReader([]byte{0x00, 0xab, 0xff}))

	id, err := r.Hex(3)
	assert.NoError(t, err)
	assert.Equal(t, "00abff", id)
}

func TestRandom_ReaderError(t *testing.T) {
	readErr := errors.New("entropy exhausted")
	r := NewWithReader(&failingReader{err: readErr})

	_, err := r.Hex(8)
	assert.ErrorIs(t, err, readErr)
}

func TestRandom_ShortRead(t *testing.T) {
	r := NewWithReader(bytes.NewReader([]byte{0x01}))

	_, err := r.Hex(4)
	assert.Error(t, err)
}
