package http

import (
	"net/http"

	"inkverse/internal/platform/net/http/bind"
)

// JSONHandler binds and validates T from the body, then wraps fn's result
// fn may return a Response to pick its own status
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) http.HandlerFunc {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// NoBodyHandler wraps fn's result without reading the body
func NoBodyHandler(fn func(*http.Request) (any, error)) http.HandlerFunc {
	return Handle(func(r *http.Request) Response {
		return result(fn(r))
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
