package writer

import (
	"fmt"
	"strconv"
)

var ErrBufferOverflow = fmt.Errorf("writer: buffer overflow")

// Writer serializes into a caller-owned buffer and never grows it. Every
// write is all-or-nothing: when the data does not fit, ErrBufferOverflow is
// returned and the buffer is left as it was.
type Writer struct {
	buf []byte
	n   int
}

func New(buf []byte) *Writer {
	return &Writer{buf: buf}
}

func (w *Writer) Bytes() []byte { return w.buf[:w.n] }

func (w *Writer) Len() int { return w.n }

func (w *Writer) Cap() int { return len(w.buf) }

func (w *Writer) Available() int { return len(w.buf) - w.n }

func (w *Writer) Reset() { w.n = 0 }

func (w *Writer) WriteRaw(p []byte) (int, error) {
	if len(p) > w.Available() {
		return 0, ErrBufferOverflow
	}
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

func (w *Writer) WriteString(s string) (int, error) {
	if len(s) > w.Available() {
		return 0, ErrBufferOverflow
	}
	w.n += copy(w.buf[w.n:], s)
	return len(s), nil
}

func (w *Writer) WriteByte(c byte) error {
	if w.Available() < 1 {
		return ErrBufferOverflow
	}
	w.buf[w.n] = c
	w.n++
	return nil
}

func (w *Writer) WriteInt(v int64) (int, error) {
	var scratch [20]byte
	return w.WriteRaw(strconv.AppendInt(scratch[:0], v, 10))
}

func (w *Writer) WriteUint(v uint64) (int, error) {
	var scratch [20]byte
	return w.WriteRaw(strconv.AppendUint(scratch[:0], v, 10))
}

func (w *Writer) WriteCRLF() (int, error) {
	return w.WriteString("\r\n")
}

// WriteHeader writes "name: value\r\n".
func (w *Writer) WriteHeader(name, value string) (int, error) {
	size := HeaderSize(name, value)
	if size > w.Available() {
		return 0, ErrBufferOverflow
	}
	w.n += copy(w.buf[w.n:], name)
	w.n += copy(w.buf[w.n:], ": ")
	w.n += copy(w.buf[w.n:], value)
	w.n += copy(w.buf[w.n:], "\r\n")
	return size, nil
}

func (w *Writer) WriteHeaderInt(name string, v int64) (int, error) {
	return w.WriteHeader(name, strconv.FormatInt(v, 10))
}

// HeaderSize is the number of bytes WriteHeader needs for name and value.
func HeaderSize(name, value string) int {
	return len(name) + 2 + len(value) + 2
}
