package dispatch

import (
	"sync"
	"time"
)

type stopper interface{ Stop() bool }

type afterFunc func(time.Duration, func()) stopper

func realAfter(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }

// Debouncer coalesces rapid calls so only the last one inside the delay runs
//
// Every Call dispatches loading straight away so the screen reacts to typing.
// When the delay passes without another Call the latest run executes; its own
// loading action is swallowed and its later actions are dropped if a newer
// Call arrived meanwhile.
type Debouncer[P any] struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	timer   stopper
	stopped bool
	after   afterFunc
}

// NewDebouncer returns a debouncer with the given quiet period
func NewDebouncer[P any](delay time.Duration) *Debouncer[P] {
	return &Debouncer[P]{delay: delay, after: realAfter}
}

// Call schedules run and reports loading through d
// A delay of zero or less runs synchronously
func (db *Debouncer[P]) Call(d Dispatch[P], run func(Dispatch[P])) {
	if d == nil {
		d = Discard[P]
	}

	db.mu.Lock()
	if db.stopped {
		db.mu.Unlock()
		return
	}
	db.seq++
	seq := db.seq
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
	db.mu.Unlock()

	d(Loading[P](false))

	if db.delay <= 0 {
		db.fire(seq, d, run)
		return
	}

	db.mu.Lock()
	if seq == db.seq && !db.stopped {
		db.timer = db.after(db.delay, func() { db.fire(seq, d, run) })
	}
	db.mu.Unlock()
}

func (db *Debouncer[P]) fire(seq uint64, d Dispatch[P], run func(Dispatch[P])) {
	if !db.current(seq) {
		return
	}
	run(func(a Action[P]) {
		if a.Type == ActionLoading && !a.IsLoadingMore {
			return
		}
		if !db.current(seq) {
			return
		}
		d(a)
	})
}

func (db *Debouncer[P]) current(seq uint64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return !db.stopped && seq == db.seq
}

// Cancel drops the pending run, if any, without stopping the debouncer
func (db *Debouncer[P]) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.seq++
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}

// Stop cancels the pending run and ignores every later Call
func (db *Debouncer[P]) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stopped = true
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
