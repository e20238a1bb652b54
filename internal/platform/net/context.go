// Package net carries request scoped values from middleware to handlers
package net

import (
	"context"
	"strings"

	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keyBearer ctxKey = iota

// WithRequest stores reqID where both chi and the logger look for it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return logger.RequestID(ctx)
}

// WithBearer stores the caller's bearer token
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, keyBearer, token)
}

// Bearer returns the caller's bearer token, empty for anonymous requests
func Bearer(ctx context.Context) string {
	s, _ := ctx.Value(keyBearer).(string)
	return s
}

// ParseBearer reads an Authorization header value
// An empty header is anonymous; anything but "Bearer <token>" is unauthorized
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", perr.Unauthorizedf("authorization must use the bearer scheme")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", perr.Unauthorizedf("empty bearer token")
	}
	return token, nil
}
