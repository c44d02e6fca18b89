package header

import "fmt"

var (
	ErrDuplicateHeader = fmt.Errorf("header already registered")
	ErrUnknownHeader   = fmt.Errorf("unknown header")
	ErrHeaderNotFound  = fmt.Errorf("header not found")
	ErrInvalidValue    = fmt.Errorf("invalid header value")
)

// Header is a typed HTTP header. Instances are created empty by a Factory,
// populated once by Parse and treated as read-only afterwards.
type Header interface {
	Name() string
	Parse(raw string) error
	Value() string
}

type Factory func() Header

// Raw carries a header whose name has no typed implementation.
type Raw struct {
	name  string
	value string
}

func NewRaw(name, value string) *Raw {
	return &Raw{name: name, value: value}
}

func (r *Raw) Name() string { return r.name }

func (r *Raw) Parse(raw string) error {
	r.value = raw
	return nil
}

func (r *Raw) Value() string { return r.value }
