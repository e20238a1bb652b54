// Package http writes every reply in one JSON envelope and adapts chi to a small Router
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "inkverse/internal/platform/errors"
	pnet "inkverse/internal/platform/net"
)

// Envelope is the body of every response
type Envelope struct {
	Status    int            `json:"status"`
	Code      perr.ErrorCode `json:"code,omitempty"`
	Error     string         `json:"error,omitempty"`
	Field     string         `json:"field,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	Data      any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorEnvelope maps err to its status and envelope
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	return status, Envelope{
		Status:    status,
		Code:      wr.Code,
		Error:     wr.Message,
		Field:     wr.Field,
		RequestID: reqID,
	}
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		code, env := ErrorEnvelope(err, reqID)
		JSON(w, code, env)
		return
	}
	JSON(w, status, Envelope{Status: status, RequestID: reqID, Data: resp.Body})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response whose status comes from the error code
func Error(err error) Response { return Response{Body: err} }
