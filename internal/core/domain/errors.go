package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConversion
	KindProxy
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConversion:
		return "conversion"
	case KindProxy:
		return "proxy"
	default:
		return "internal"
	}
}

// Error carries a client-safe message and the underlying cause.
// Only Msg is ever shown to a client.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// ValidationError reports bad or missing client input.
func ValidationError(msg string) error { return newError(KindValidation, nil, msg) }

// NotFoundError reports that the requested thing does not exist.
func NotFoundError(msg string) error { return newError(KindNotFound, nil, msg) }

// ConversionError reports a failed transcode.
func ConversionError(err error, msg string) error { return newError(KindConversion, err, msg) }

// ProxyError reports a failed upstream fetch for the stream proxy.
func ProxyError(err error, msg string) error { return newError(KindProxy, err, msg) }

// InternalError reports any other failure.
func InternalError(err error, msg string) error { return newError(KindInternal, err, msg) }

// KindOf returns the kind of the first *Error in err's chain.
// Anything unclassified is internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the client-visible message of err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Msg != "" {
		return de.Msg
	}
	return "Internal Server Error"
}
