package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/dispatch"
	"inkverse/internal/platform/logger"
	kit "inkverse/internal/platform/testkit"
	"inkverse/internal/services/screens/domain"
	"inkverse/internal/services/screens/repo"
)

func TestMain(m *testing.M) { kit.VerifyNoLeaks(m) }

// reply builds the data object for one operation
type reply func(vars map[string]any) (any, error)

// fakeAPI is an in-memory GraphQL server that decodes canned data into out
type fakeAPI struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []graphql.Operation
}

func newFakeAPI() *fakeAPI { return &fakeAPI{replies: map[string]reply{}} }

func (f *fakeAPI) on(op string, r reply) *fakeAPI {
	f.mu.Lock()
	f.replies[op] = r
	f.mu.Unlock()
	return f
}

func (f *fakeAPI) Query(ctx context.Context, op graphql.Operation, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	r := f.replies[op.Name]
	f.mu.Unlock()

	if r == nil {
		return fmt.Errorf("unexpected operation %s", op.Name)
	}
	data, err := r(op.Variables)
	if err != nil {
		return err
	}
	b, err := json.Marshal(map[string]any{op.Name: data})
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Name == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ops() []graphql.Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]graphql.Operation(nil), f.calls...)
}

func newTestSvc(q graphql.Querier, cfg Config) *Svc {
	nop := logger.Nop()
	return New(repo.NewGQL(), q, &nop, cfg)
}

// recorder keeps every action and state a store applied
type recorder[P any] struct {
	mu      sync.Mutex
	actions []dispatch.ActionType
	states  []dispatch.State[P]
}

func record[P any](st *dispatch.Store[P]) *recorder[P] {
	r := &recorder[P]{}
	st.Subscribe(func(s dispatch.State[P], a dispatch.Action[P]) {
		r.mu.Lock()
		r.actions = append(r.actions, a.Type)
		r.states = append(r.states, s)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder[P]) types() []dispatch.ActionType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dispatch.ActionType(nil), r.actions...)
}

func (r *recorder[P]) all() []dispatch.State[P] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dispatch.State[P](nil), r.states...)
}

func (r *recorder[P]) terminals() int {
	n := 0
	for _, t := range r.types() {
		if t == dispatch.ActionSuccess || t == dispatch.ActionSuccessAppend || t == dispatch.ActionError {
			n++
		}
	}
	return n
}

func seriesData(uuid string, issues int) map[string]any {
	list := make([]map[string]any, 0, issues)
	for i := 1; i <= issues; i++ {
		list = append(list, map[string]any{
			"__typename": "ComicIssue",
			"uuid":       fmt.Sprintf("%s-i%d", uuid, i),
			"name":       fmt.Sprintf("Episode %d", i),
			"seriesUuid": uuid,
			"position":   i,
		})
	}
	return map[string]any{"__typename": "ComicSeries", "uuid": uuid, "name": "Series " + uuid, "issues": list}
}

func comics(prefix string, n int) []domain.ComicSeries {
	out := make([]domain.ComicSeries, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ComicSeries{UUID: fmt.Sprintf("%s%d", prefix, i), Name: "Comic"})
	}
	return out
}
