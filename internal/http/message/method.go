package message

type Method uint8

const (
	Options Method = iota
	Get
	Post
	Head
	Put
	Delete
	Trace
	Connect
)

var methodTokens = [...]string{
	Options: "OPTIONS",
	Get:     "GET",
	Post:    "POST",
	Head:    "HEAD",
	Put:     "PUT",
	Delete:  "DELETE",
	Trace:   "TRACE",
	Connect: "CONNECT",
}

func (m Method) String() string {
	if int(m) < len(methodTokens) {
		return methodTokens[m]
	}
	return "UNKNOWN"
}

// ParseMethod matches the wire token exactly; methods are case-sensitive.
func ParseMethod(token string) (Method, bool) {
	for m, t := range methodTokens {
		if t == token {
			return Method(m), true
		}
	}
	return 0, false
}

type Version uint8

const (
	Http10 Version = iota
	Http11
)

func (v Version) String() string {
	switch v {
	case Http10:
		return "HTTP/1.0"
	case Http11:
		return "HTTP/1.1"
	default:
		return "HTTP/?"
	}
}

func ParseVersion(token string) (Version, bool) {
	switch token {
	case "HTTP/1.0":
		return Http10, true
	case "HTTP/1.1":
		return Http11, true
	default:
		return 0, false
	}
}
