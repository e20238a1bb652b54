package repokit

import (
	"context"

	"inkverse/internal/adapters/graphql"
)

// Hook runs before every operation a wrapped Queryer executes
// It may enrich ctx; an error aborts the operation
type Hook func(ctx context.Context, op graphql.Operation) (context.Context, error)

// WithHooks wraps inner so hooks run in order before each query
func WithHooks(inner Queryer, hooks ...Hook) Queryer {
	if len(hooks) == 0 {
		return inner
	}
	return hooked{inner: inner, hooks: hooks}
}

type hooked struct {
	inner Queryer
	hooks []Hook
}

func (h hooked) Query(ctx context.Context, op graphql.Operation, out any) error {
	for _, hk := range h.hooks {
		var err error
		if ctx, err = hk(ctx, op); err != nil {
			return err
		}
	}
	return h.inner.Query(ctx, op, out)
}
