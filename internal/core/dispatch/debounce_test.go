package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	kit "inkverse/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) after(_ time.Duration, fn func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// elapse fires every live timer on the calling goroutine
func (c *fakeClock) elapse() {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func newFakeDebouncer(clock *fakeClock) *Debouncer[page] {
	db := NewDebouncer[page](300 * time.Millisecond)
	db.after = clock.after
	return db
}

type recorder struct {
	mu      sync.Mutex
	actions []ActionType
}

func (r *recorder) dispatch(a Action[page]) {
	r.mu.Lock()
	r.actions = append(r.actions, a.Type)
	r.mu.Unlock()
}

func (r *recorder) types() []ActionType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ActionType(nil), r.actions...)
}

func TestDebouncerRunsOnlyTheLastCall(t *testing.T) {
	clock := &fakeClock{}
	db := newFakeDebouncer(clock)
	rec := &recorder{}

	var calls []string
	for _, term := range []string{"s", "sp", "spi", "spid", "spider"} {
		db.Call(rec.dispatch, func(d Dispatch[page]) {
			calls = append(calls, term)
			d(Loading[page](false))
			d(Success(page{Items: []string{term}}))
		})
	}
	clock.elapse()

	if diff := cmp.Diff([]string{"spider"}, calls); diff != "" {
		t.Fatalf("runs (-want +got):\n%s", diff)
	}
	want := []ActionType{ActionLoading, ActionLoading, ActionLoading, ActionLoading, ActionLoading, ActionSuccess}
	if diff := cmp.Diff(want, rec.types()); diff != "" {
		t.Fatalf("dispatches (-want +got):\n%s", diff)
	}
}

func TestDebouncerDropsActionsFromSupersededRun(t *testing.T) {
	clock := &fakeClock{}
	db := newFakeDebouncer(clock)
	rec := &recorder{}

	var first Dispatch[page]
	db.Call(rec.dispatch, func(d Dispatch[page]) { first = d })
	clock.elapse()

	db.Call(rec.dispatch, func(d Dispatch[page]) { d(Success(page{Items: []string{"new"}})) })

	first(Success(page{Items: []string{"old"}}))
	clock.elapse()

	want := []ActionType{ActionLoading, ActionLoading, ActionSuccess}
	if diff := cmp.Diff(want, rec.types()); diff != "" {
		t.Fatalf("dispatches (-want +got):\n%s", diff)
	}
}

func TestDebouncerStopAndCancel(t *testing.T) {
	clock := &fakeClock{}
	db := newFakeDebouncer(clock)
	rec := &recorder{}
	var ran atomic.Int32

	db.Call(rec.dispatch, func(Dispatch[page]) { ran.Add(1) })
	db.Cancel()
	clock.elapse()
	if ran.Load() != 0 {
		t.Fatalf("canceled run executed")
	}

	db.Call(rec.dispatch, func(Dispatch[page]) { ran.Add(1) })
	db.Stop()
	clock.elapse()
	db.Call(rec.dispatch, func(Dispatch[page]) { ran.Add(1) })
	clock.elapse()

	if ran.Load() != 0 {
		t.Fatalf("run executed after Stop")
	}
	if got := len(rec.types()); got != 2 {
		t.Fatalf("loading dispatches = %d, want 2", got)
	}
}

func TestDebouncerZeroDelayRunsInline(t *testing.T) {
	db := NewDebouncer[page](0)
	rec := &recorder{}
	db.Call(rec.dispatch, func(d Dispatch[page]) { d(Success(page{})) })
	if diff := cmp.Diff([]ActionType{ActionLoading, ActionSuccess}, rec.types()); diff != "" {
		t.Fatalf("dispatches (-want +got):\n%s", diff)
	}
}

func TestDebouncerWithRealTimerAndStore(t *testing.T) {
	st := NewStore(context.Background(), NewReducer[page](nil))
	defer st.Close()
	db := NewDebouncer[page](20 * time.Millisecond)
	defer db.Stop()

	var runs atomic.Int32
	for _, term := range []string{"b", "ba", "bat"} {
		db.Call(st.Bind(), func(d Dispatch[page]) {
			runs.Add(1)
			d(Success(page{Items: []string{term}}))
		})
	}
	if !st.State().IsLoading {
		t.Fatalf("loading should show before the delay passes")
	}

	kit.Eventually(t, time.Second, func() bool { return st.State().Data != nil }, "debounced run never landed")
	if runs.Load() != 1 {
		t.Fatalf("runs = %d", runs.Load())
	}
	if got := st.State().Data.Items[0]; got != "bat" {
		t.Fatalf("term = %q", got)
	}
}
