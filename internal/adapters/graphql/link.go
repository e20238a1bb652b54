package graphql

import (
	"context"
	stderrs "errors"
	"net/http"

	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"
	pnet "inkverse/internal/platform/net"
)

// Handler executes an operation against the server
type Handler func(ctx context.Context, op Operation) (*Response, error)

// Link wraps a Handler, the way router middleware wraps an http.Handler
type Link func(next Handler) Handler

// Chain composes links around terminal; the first link runs outermost
func Chain(terminal Handler, links ...Link) Handler {
	h := terminal
	for i := len(links) - 1; i >= 0; i-- {
		if links[i] != nil {
			h = links[i](h)
		}
	}
	return h
}

type headerKey struct{}

// WithHeader returns ctx carrying an extra request header for the transport
func WithHeader(ctx context.Context, key, value string) context.Context {
	h := headersFrom(ctx).Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(key, value)
	return context.WithValue(ctx, headerKey{}, h)
}

func headersFrom(ctx context.Context) http.Header {
	h, _ := ctx.Value(headerKey{}).(http.Header)
	return h
}

// ErrorLink reports every GraphQL error to r and, in dev, logs GraphQL and
// transport failures at debug. Errors pass through unchanged.
func ErrorLink(r Reporter, dev bool, log *logger.Logger) Link {
	if r == nil {
		r = Nop()
	}
	if log == nil {
		l := logger.Nop()
		log = &l
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, op Operation) (*Response, error) {
			resp, err := next(ctx, op)
			if err == nil {
				return resp, nil
			}

			var rerr *ResponseError
			if stderrs.As(err, &rerr) {
				for _, se := range rerr.Errors {
					capture(ctx, r, op, se)
					if dev {
						log.Debug().
							Str("operation", op.Name).
							Str("message", se.Message).
							Interface("locations", se.Locations).
							Interface("path", se.Path).
							Msg("graphql error")
					}
				}
				return resp, err
			}

			if dev {
				log.Debug().Err(err).Str("operation", op.Name).Msg("graphql network error")
			}
			return resp, err
		}
	}
}

func capture(ctx context.Context, r Reporter, op Operation, se ServerError) {
	ctx = logger.WithOperation(context.WithoutCancel(ctx), op.Name)
	go func() {
		defer func() { _ = recover() }()
		r.Capture(ctx, se)
	}()
}

// TokenSource supplies the bearer token for the user client
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns tok
func StaticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return tok, nil })
}

// ContextToken forwards the caller's bearer token carried on ctx, else asks fallback
func ContextToken(fallback TokenSource) TokenSource {
	return TokenFunc(func(ctx context.Context) (string, error) {
		if tok := pnet.Bearer(ctx); tok != "" {
			return tok, nil
		}
		if fallback == nil {
			return "", nil
		}
		return fallback.Token(ctx)
	})
}

type resolvedTokenKey struct{}

// withResolvedToken records the token the client already asked for, so the
// auth link sends the same credentials the request was keyed on
func withResolvedToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, resolvedTokenKey{}, tok)
}

func resolvedToken(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(resolvedTokenKey{}).(string)
	return tok, ok
}

// AuthLink adds "Authorization: Bearer <token>" when ts yields a token
// An empty token sends the request anonymously
func AuthLink(ts TokenSource) Link {
	return func(next Handler) Handler {
		return func(ctx context.Context, op Operation) (*Response, error) {
			if ts != nil {
				tok, ok := resolvedToken(ctx)
				if !ok {
					var err error
					if tok, err = ts.Token(ctx); err != nil {
						return nil, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "graphql %s: token", op.Name)
					}
				}
				if tok != "" {
					ctx = WithHeader(ctx, "Authorization", "Bearer "+tok)
				}
			}
			return next(ctx, op)
		}
	}
}
