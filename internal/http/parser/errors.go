package parser

import "github.com/pkg/errors"

// ErrIncomplete means the buffered bytes end in the middle of a request. It is
// not a grammar violation: feed more data and call Next again.
var ErrIncomplete = errors.New("need more data")

var (
	ErrUnsupportedMethod     = errors.New("unsupported method")
	ErrUnsupportedVersion    = errors.New("unsupported version")
	ErrMalformedRequestLine  = errors.New("malformed request line")
	ErrMalformedHeader       = errors.New("malformed header line")
	ErrInvalidHeaderValue    = errors.New("invalid header value")
	ErrContentLengthMismatch = errors.New("content-length mismatch")
	ErrHeaderTooLarge        = errors.New("header section too large")
	ErrBodyTooLarge          = errors.New("body too large")
	ErrUnexpectedEnd         = errors.New("unexpected end of input")

	ErrUnsupportedTransferEncoding = errors.New("unsupported transfer encoding")
)

const NameTransferEncoding = "Transfer-Encoding"

var errBareLineBreak = errors.New("bare CR or LF")

type ParseError struct {
	Stage Stage
	Err   error
}

func (e *ParseError) Error() string {
	return "parse " + e.Stage.String() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
