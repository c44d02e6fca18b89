package message

import (
	"fmt"
	"strconv"
)

var ErrUnsupportedStatusCode = fmt.Errorf("unsupported status code")

type Code int

const (
	Continue                     Code = 100
	SwitchingProtocols           Code = 101
	OK                           Code = 200
	Created                      Code = 201
	Accepted                     Code = 202
	NonAuthoritativeInformation  Code = 203
	NoContent                    Code = 204
	ResetContent                 Code = 205
	PartialContent               Code = 206
	MultipleChoices              Code = 300
	MovedPermanently             Code = 301
	Found                        Code = 302
	SeeOther                     Code = 303
	NotModified                  Code = 304
	UseProxy                     Code = 305
	TemporaryRedirect            Code = 307
	BadRequest                   Code = 400
	Unauthorized                 Code = 401
	PaymentRequired              Code = 402
	Forbidden                    Code = 403
	NotFound                     Code = 404
	MethodNotAllowed             Code = 405
	NotAcceptable                Code = 406
	ProxyAuthenticationRequired  Code = 407
	RequestTimeout               Code = 408
	Conflict                     Code = 409
	Gone                         Code = 410
	LengthRequired               Code = 411
	PreconditionFailed           Code = 412
	RequestEntityTooLarge        Code = 413
	RequestURITooLong            Code = 414
	UnsupportedMediaType         Code = 415
	RequestedRangeNotSatisfiable Code = 416
	ExpectationFailed            Code = 417
	InternalServerError          Code = 500
	NotImplemented               Code = 501
	BadGateway                   Code = 502
	ServiceUnavailable           Code = 503
	GatewayTimeout               Code = 504
)

var reasons = map[Code]string{
	Continue:                     "Continue",
	SwitchingProtocols:           "Switching Protocols",
	OK:                           "OK",
	Created:                      "Created",
	Accepted:                     "Accepted",
	NonAuthoritativeInformation:  "Non-Authoritative Information",
	NoContent:                    "No Content",
	ResetContent:                 "Reset Content",
	PartialContent:               "Partial Content",
	MultipleChoices:              "Multiple Choices",
	MovedPermanently:             "Moved Permanently",
	Found:                        "Found",
	SeeOther:                     "See Other",
	NotModified:                  "Not Modified",
	UseProxy:                     "Use Proxy",
	TemporaryRedirect:            "Temporary Redirect",
	BadRequest:                   "Bad Request",
	Unauthorized:                 "Unauthorized",
	PaymentRequired:              "Payment Required",
	Forbidden:                    "Forbidden",
	NotFound:                     "Not Found",
	MethodNotAllowed:             "Method Not Allowed",
	NotAcceptable:                "Not Acceptable",
	ProxyAuthenticationRequired:  "Proxy Authentication Required",
	RequestTimeout:               "Request Timeout",
	Conflict:                     "Conflict",
	Gone:                         "Gone",
	LengthRequired:               "Length Required",
	PreconditionFailed:           "Precondition Failed",
	RequestEntityTooLarge:        "Request Entity Too Large",
	RequestURITooLong:            "Request-URI Too Long",
	UnsupportedMediaType:         "Unsupported Media Type",
	RequestedRangeNotSatisfiable: "Requested Range Not Satisfiable",
	ExpectationFailed:            "Expectation Failed",
	InternalServerError:          "Internal Server Error",
	NotImplemented:               "Not Implemented",
	BadGateway:                   "Bad Gateway",
	ServiceUnavailable:           "Service Unavailable",
	GatewayTimeout:               "Gateway Timeout",
}

// CodeFromInt maps a raw status number to a Code from the status table.
func CodeFromInt(code int) (Code, error) {
	c := Code(code)
	if _, ok := reasons[c]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedStatusCode, code)
	}
	return c, nil
}

func (c Code) Reason() string { return reasons[c] }

func (c Code) String() string {
	return strconv.Itoa(int(c)) + " " + c.Reason()
}
