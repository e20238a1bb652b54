package graphql

import (
	"strings"

	perr "inkverse/internal/platform/errors"
)

// ServerError is one entry of a response's errors array
type ServerError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Location points into the query document
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e ServerError) Error() string { return e.Message }

// Code returns extensions.code, if the server set one
func (e ServerError) Code() string {
	s, _ := e.Extensions["code"].(string)
	return s
}

// ResponseError is returned when a response carried an errors array
type ResponseError struct {
	Operation string
	Errors    []ServerError
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		msgs = append(msgs, se.Message)
	}
	return strings.Join(msgs, "; ")
}

// responseError picks the platform code from the server's extension codes
// an extension code only counts when every error agrees on it
func responseError(op string, errs []ServerError) error {
	code := perr.ErrorCodeGraphQL
	if len(errs) > 0 {
		switch first := errs[0].Code(); first {
		case "NOT_FOUND", "UNAUTHENTICATED", "FORBIDDEN":
			same := true
			for _, e := range errs[1:] {
				if e.Code() != first {
					same = false
					break
				}
			}
			if same {
				code = map[string]perr.ErrorCode{
					"NOT_FOUND":       perr.ErrorCodeNotFound,
					"UNAUTHENTICATED": perr.ErrorCodeUnauthorized,
					"FORBIDDEN":       perr.ErrorCodeForbidden,
				}[first]
			}
		}
	}
	return perr.Wrapf(&ResponseError{Operation: op, Errors: errs}, code, "graphql %s", op)
}
