package repokit

import (
	"context"
	"errors"
	"testing"

	"inkverse/internal/adapters/graphql"
	kit "inkverse/internal/platform/testkit"
)

type ctxKey struct{}

func TestBindAndMustBind(t *testing.T) {
	var seen Queryer
	b := BindFunc[string](func(q Queryer) string { seen = q; return "repo" })

	q := graphql.QuerierFunc(func(context.Context, graphql.Operation, any) error { return nil })
	if got := MustBind[string](b, q); got != "repo" || seen == nil {
		t.Fatalf("MustBind = %q seen=%v", got, seen)
	}
	kit.MustPanic(t, func() { _ = MustBind[string](b, nil) })
}

func TestPolicy(t *testing.T) {
	if Policy(false) != graphql.CacheFirst || Policy(true) != graphql.NetworkOnly {
		t.Fatalf("policy mapping")
	}
}

func TestQueryDecodesIntoFreshValue(t *testing.T) {
	q := graphql.QuerierFunc(func(_ context.Context, op graphql.Operation, out any) error {
		p := out.(*map[string]string)
		*p = map[string]string{"op": op.Name}
		return nil
	})
	got, err := Query[map[string]string](context.Background(), q, graphql.Operation{Name: "getList"})
	if err != nil || got["op"] != "getList" {
		t.Fatalf("Query = %v %v", got, err)
	}
}

func TestHooksRunInOrderAndCanAbort(t *testing.T) {
	var order []string
	var seenVal any
	inner := graphql.QuerierFunc(func(ctx context.Context, _ graphql.Operation, _ any) error {
		order = append(order, "query")
		seenVal = ctx.Value(ctxKey{})
		return nil
	})
	tag := func(ctx context.Context, op graphql.Operation) (context.Context, error) {
		order = append(order, "tag")
		return context.WithValue(ctx, ctxKey{}, op.Name), nil
	}
	count := func(ctx context.Context, _ graphql.Operation) (context.Context, error) {
		order = append(order, "count")
		return ctx, nil
	}

	q := WithHooks(inner, tag, count)
	if err := q.Query(context.Background(), graphql.Operation{Name: "search"}, nil); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(order) != 3 || order[0] != "tag" || order[2] != "query" || seenVal != "search" {
		t.Fatalf("order=%v seen=%v", order, seenVal)
	}

	boom := errors.New("blocked")
	stop := func(ctx context.Context, _ graphql.Operation) (context.Context, error) { return ctx, boom }
	if err := WithHooks(inner, stop).Query(context.Background(), graphql.Operation{}, nil); !errors.Is(err, boom) {
		t.Fatalf("abort err = %v", err)
	}
	if WithHooks(inner) == nil {
		t.Fatalf("no hooks should return inner")
	}
}
