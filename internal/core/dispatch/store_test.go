package dispatch

import (
	"context"
	"sync"
	"testing"

	kit "inkverse/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) { kit.VerifyNoLeaks(m) }

func TestStoreAppliesBoundActions(t *testing.T) {
	st := NewStore(context.Background(), NewReducer(concat))
	defer st.Close()

	d := st.Bind()
	d(Loading[page](false))
	if !st.State().IsLoading {
		t.Fatalf("loading not applied")
	}
	d(Success(page{Items: []string{"a"}}))
	got := st.State()
	if got.IsLoading || got.Data == nil || got.Data.Items[0] != "a" {
		t.Fatalf("success not applied: %+v", got)
	}
}

func TestStoreDropsStaleDispatchers(t *testing.T) {
	st := NewStore[page](context.Background(), nil)
	defer st.Close()

	slow := st.Bind()
	slow(Loading[page](false))

	fast := st.Bind()
	fast(Loading[page](false))
	fast(Success(page{Items: []string{"hello"}}))

	slow(Success(page{Items: []string{"hel"}}))
	slow(Fail[page](&Failure{Kind: KindNetwork}))

	got := st.State()
	if diff := cmp.Diff([]string{"hello"}, got.Data.Items); diff != "" {
		t.Fatalf("stale dispatch leaked (-want +got):\n%s", diff)
	}
	if got.Err != nil {
		t.Fatalf("stale error leaked: %v", got.Err)
	}
}

func TestStoreUngatedDispatch(t *testing.T) {
	st := NewStore[page](context.Background(), nil)
	defer st.Close()

	_ = st.Bind()
	st.Dispatch(Success(page{Items: []string{"x"}}))
	if st.State().Data == nil {
		t.Fatalf("ungated dispatch should always apply")
	}
}

func TestStoreCloseStopsUpdatesAndCancels(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()

	st := NewStore[page](parent, nil)
	d := st.Bind()
	d(Loading[page](false))

	st.Close()
	st.Close()

	d(Success(page{Items: []string{"late"}}))
	if st.State().Data != nil {
		t.Fatalf("dispatch after close mutated state")
	}
	if !st.State().IsLoading {
		t.Fatalf("state before close should be kept")
	}
	select {
	case <-st.Context().Done():
	default:
		t.Fatalf("context not canceled by Close")
	}
	if !st.Closed() {
		t.Fatalf("Closed() = false")
	}
}

func TestStoreParentCancelPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	st := NewStore[page](parent, nil)
	defer st.Close()

	cancel()
	<-st.Context().Done()
}

func TestStoreSubscribe(t *testing.T) {
	st := NewStore[page](context.Background(), nil)
	defer st.Close()

	var seen []ActionType
	unsubscribe := st.Subscribe(func(_ State[page], a Action[page]) { seen = append(seen, a.Type) })

	d := st.Bind()
	d(Loading[page](false))
	d(Success(page{}))
	unsubscribe()
	d(Loading[page](false))

	if diff := cmp.Diff([]ActionType{ActionLoading, ActionSuccess}, seen); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	st := NewStore(context.Background(), NewReducer(concat))
	defer st.Close()

	d := st.Bind()
	d(Success(page{}))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d(Loading[page](true))
			d(SuccessPage(page{Items: []string{"i"}}, 0, 1, 1, true))
		}()
	}
	wg.Wait()

	got := st.State()
	if len(got.Data.Items) != 32 {
		t.Fatalf("items = %d, want 32", len(got.Data.Items))
	}
	if got.IsLoading && got.IsLoadingMore {
		t.Fatalf("both flags set")
	}
}
