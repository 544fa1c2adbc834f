package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Kind classifies a failed catalog request.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindTimeout
	KindParse
)

var (
	ErrNotFound     = errors.New("catalog: page not found")
	ErrUnauthorized = errors.New("catalog: unauthorized")
	ErrTimeout      = errors.New("catalog: connection timeout")
	ErrNetwork      = errors.New("catalog: networking error")
	ErrParse        = errors.New("catalog: parse error")
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	default:
		return "network"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindUnauthorized:
		return ErrUnauthorized
	case KindTimeout:
		return ErrTimeout
	case KindParse:
		return ErrParse
	default:
		return ErrNetwork
	}
}

// Error is returned by every catalog operation. It matches the sentinel of
// its Kind with errors.Is and unwraps to the underlying cause.
type Error struct {
	Kind       Kind
	StatusCode int
	URL        string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind carried by err, or 0 when err is not a catalog error.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}

func statusKind(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusRequestTimeout:
		return KindTimeout
	default:
		return KindNetwork
	}
}

func parseError(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Err: fmt.Errorf(format, args...)}
}

const unparseableURL = "<unparseable url>"

// redact drops credentials from a request URL before it is logged or
// embedded in an error.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return unparseableURL
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
