package dispatch

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"fmt"
	"testing"

	perr "inkverse/internal/platform/errors"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"transport", perr.Unavailablef("dial refused"), KindNetwork},
		{"rate limited", perr.Newf(perr.ErrorCodeTooManyRequests, "slow down"), KindNetwork},
		{"canceled", context.Canceled, KindNetwork},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), KindNetwork},
		{"graphql", perr.GraphQLf("Cannot query field"), KindGraphQL},
		{"unauthorized", perr.Unauthorizedf("token expired"), KindGraphQL},
		{"not found", perr.NotFoundf("comic series"), KindNotFound},
		{"json", perr.JSONErrf("bad body"), KindUnknown},
		{"foreign", stderrs.New("weird"), KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Classify(tc.err)
			if f.Kind != tc.want {
				t.Fatalf("Kind = %v, want %v", f.Kind, tc.want)
			}
			if !stderrs.Is(f, tc.err) {
				t.Fatalf("cause not reachable via errors.Is")
			}
		})
	}
}

func TestClassifyKeepsMessageAndExistingFailure(t *testing.T) {
	if Classify(nil) != nil {
		t.Fatalf("nil should stay nil")
	}

	f := Classify(perr.Wrapf(stderrs.New("eof"), perr.ErrorCodeUnavailable, "graphql getList"))
	if f.Message != "graphql getList: eof" || f.Code != perr.ErrorCodeUnavailable {
		t.Fatalf("Failure = %+v", f)
	}

	wrapped := fmt.Errorf("outer: %w", f)
	if Classify(wrapped) != f {
		t.Fatalf("existing Failure should be returned as is")
	}
}

func TestFailureJSON(t *testing.T) {
	b, err := json.Marshal(&Failure{Kind: KindNotFound, Code: perr.ErrorCodeNotFound, Message: "gone"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"kind":"not_found","code":9,"message":"gone"}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
	if ActionSuccessAppend.String() != "success_append" || ActionType(77).String() != "unknown" {
		t.Fatalf("action names")
	}
}
