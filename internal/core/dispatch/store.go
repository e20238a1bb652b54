package dispatch

import (
	"context"
	"sync"
)

// Store owns one screen's state
// Loaders receive a Dispatch from Bind; only the most recently bound
// dispatcher may still change the state, so a slow earlier fetch cannot
// overwrite a newer one. Close turns every dispatcher into a no-op.
type Store[P any] struct {
	mu     sync.Mutex
	reduce Reducer[P]
	state  State[P]
	latest uint64
	closed bool
	subs   map[uint64]func(State[P], Action[P])
	nextID uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewStore returns a store whose Context is canceled by Close or by parent
func NewStore[P any](parent context.Context, reduce Reducer[P]) *Store[P] {
	if parent == nil {
		parent = context.Background()
	}
	if reduce == nil {
		reduce = NewReducer[P](nil)
	}
	ctx, cancel := context.WithCancel(parent)
	return &Store[P]{
		reduce: reduce,
		subs:   make(map[uint64]func(State[P], Action[P])),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Bind issues a fresh dispatcher and retires every earlier one
func (s *Store[P]) Bind() Dispatch[P] {
	s.mu.Lock()
	s.latest++
	tok := s.latest
	s.mu.Unlock()

	return func(a Action[P]) {
		a.token = tok
		s.apply(a)
	}
}

// Dispatch applies a without token gating
func (s *Store[P]) Dispatch(a Action[P]) {
	a.token = 0
	s.apply(a)
}

func (s *Store[P]) apply(a Action[P]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if a.token != 0 && a.token != s.latest {
		return
	}
	s.state = s.reduce(s.state, a)
	for _, fn := range s.subs {
		fn(s.state, a)
	}
}

// State returns a snapshot of the current state
func (s *Store[P]) State() State[P] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn after every applied action, under the store lock
// fn must not call back into the store
func (s *Store[P]) Subscribe(fn func(State[P], Action[P])) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Context is canceled once the store is closed
// Loaders should fetch with it so abandoned screens stop their requests
func (s *Store[P]) Context() context.Context { return s.ctx }

// Close drops all later actions and cancels Context; safe to call twice
func (s *Store[P]) Close() {
	s.mu.Lock()
	s.closed = true
	s.subs = map[uint64]func(State[P], Action[P]){}
	s.mu.Unlock()
	s.cancel()
}

// Closed reports whether Close has been called
func (s *Store[P]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
