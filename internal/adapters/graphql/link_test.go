package graphql

import (
	"context"
	"testing"

	pnet "inkverse/internal/platform/net"

	"github.com/google/go-cmp/cmp"
)

func TestChainRunsLinksInOrder(t *testing.T) {
	var trace []string
	mark := func(name string) Link {
		return func(next Handler) Handler {
			return func(ctx context.Context, op Operation) (*Response, error) {
				trace = append(trace, name+">")
				resp, err := next(ctx, op)
				trace = append(trace, "<"+name)
				return resp, err
			}
		}
	}
	terminal := func(context.Context, Operation) (*Response, error) {
		trace = append(trace, "transport")
		return &Response{}, nil
	}

	h := Chain(terminal, mark("error"), nil, mark("auth"))
	if _, err := h(context.Background(), Operation{Name: "x"}); err != nil {
		t.Fatalf("err = %v", err)
	}
	want := []string{"error>", "auth>", "transport", "<auth", "<error"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}

func TestWithHeaderDoesNotMutateParent(t *testing.T) {
	parent := WithHeader(context.Background(), "A", "1")
	child := WithHeader(parent, "B", "2")

	if headersFrom(parent).Get("B") != "" {
		t.Fatalf("parent headers mutated")
	}
	if headersFrom(child).Get("A") != "1" || headersFrom(child).Get("B") != "2" {
		t.Fatalf("child headers = %v", headersFrom(child))
	}
}

func TestAuthLinkSkipsEmptyToken(t *testing.T) {
	var got string
	h := Chain(func(ctx context.Context, _ Operation) (*Response, error) {
		got = headersFrom(ctx).Get("Authorization")
		return &Response{}, nil
	}, AuthLink(StaticToken("")))

	if _, err := h(context.Background(), Operation{Name: "x"}); err != nil || got != "" {
		t.Fatalf("err=%v auth=%q", err, got)
	}
}

func TestContextTokenPrefersCaller(t *testing.T) {
	ts := ContextToken(StaticToken("fallback"))

	tok, err := ts.Token(pnet.WithBearer(context.Background(), "caller"))
	if err != nil || tok != "caller" {
		t.Fatalf("tok=%q err=%v", tok, err)
	}
	if tok, _ = ts.Token(context.Background()); tok != "fallback" {
		t.Fatalf("fallback tok = %q", tok)
	}
	if tok, _ = ContextToken(nil).Token(context.Background()); tok != "" {
		t.Fatalf("nil fallback tok = %q", tok)
	}
}
