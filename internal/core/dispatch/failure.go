package dispatch

import (
	stderrs "errors"

	perr "inkverse/internal/platform/errors"
)

// ErrorKind is the coarse reason a load failed
type ErrorKind uint8

const (
	// KindUnknown covers failures that fit no other kind
	KindUnknown ErrorKind = iota
	// KindNetwork means no usable response arrived
	KindNetwork
	// KindGraphQL means the server answered with an errors array
	KindGraphQL
	// KindNotFound means the server answered but the resource does not exist
	KindNotFound
)

var kindNames = [...]string{"unknown", "network", "graphql", "not_found"}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// MarshalText renders the kind by name in JSON
func (k ErrorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Failure is the error value carried by error actions and by State.Err
type Failure struct {
	Kind    ErrorKind      `json:"kind"`
	Code    perr.ErrorCode `json:"code"`
	Message string         `json:"message"`
	cause   error
}

func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}
	return f.Kind.String() + ": " + f.Message
}

// Unwrap exposes the classified error
func (f *Failure) Unwrap() error { return f.cause }

// Classify maps any error to a Failure; nil stays nil
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if stderrs.As(err, &f) {
		return f
	}

	code := perr.CodeOf(err)
	kind := KindUnknown
	switch code {
	case perr.ErrorCodeUnavailable, perr.ErrorCodeTooManyRequests, perr.ErrorCodeCanceled:
		kind = KindNetwork
	case perr.ErrorCodeGraphQL, perr.ErrorCodeUnauthorized, perr.ErrorCodeForbidden:
		kind = KindGraphQL
	case perr.ErrorCodeNotFound:
		kind = KindNotFound
	}

	return &Failure{Kind: kind, Code: code, Message: err.Error(), cause: err}
}
