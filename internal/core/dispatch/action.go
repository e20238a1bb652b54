// Package dispatch is the state machine every screen loader drives:
// typed actions, a pure reducer, a token-gated store and a debouncer
package dispatch

// ActionType tags the variant an Action carries
type ActionType uint8

const (
	// ActionUnknown is the zero value; reducers pass it through
	ActionUnknown ActionType = iota
	// ActionLoading marks the start of a fetch
	ActionLoading
	// ActionSuccess replaces the data
	ActionSuccess
	// ActionSuccessAppend merges a further page into the data
	ActionSuccessAppend
	// ActionError ends a fetch with a failure
	ActionError
)

var actionNames = [...]string{"unknown", "loading", "success", "success_append", "error"}

func (t ActionType) String() string {
	if int(t) < len(actionNames) {
		return actionNames[t]
	}
	return actionNames[ActionUnknown]
}

// MarshalText renders the type by name in JSON
func (t ActionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Action is one event in a load lifecycle
// Payload is only meaningful for the success variants, Err only for ActionError
type Action[P any] struct {
	Type          ActionType
	IsLoadingMore bool
	Payload       P
	Page          int
	Count         int
	PageSize      int
	Err           *Failure

	token uint64
}

// Terminal reports whether a ends a fetch
func (a Action[P]) Terminal() bool {
	return a.Type == ActionSuccess || a.Type == ActionSuccessAppend || a.Type == ActionError
}

// Dispatch delivers an action to whoever owns the state
type Dispatch[P any] func(Action[P])

// Discard is a Dispatch that drops everything
func Discard[P any](Action[P]) {}

// Loading starts a fetch; more marks a further-page fetch
func Loading[P any](more bool) Action[P] {
	return Action[P]{Type: ActionLoading, IsLoadingMore: more}
}

// Success replaces the data with payload
func Success[P any](payload P) Action[P] {
	return Action[P]{Type: ActionSuccess, Payload: payload}
}

// SuccessPage carries one page of results
// appended selects ActionSuccessAppend, which merges into the existing data
func SuccessPage[P any](payload P, page, count, pageSize int, appended bool) Action[P] {
	t := ActionSuccess
	if appended {
		t = ActionSuccessAppend
	}
	return Action[P]{
		Type:          t,
		IsLoadingMore: appended,
		Payload:       payload,
		Page:          page,
		Count:         count,
		PageSize:      pageSize,
	}
}

// Fail ends a fetch with err classified into a Failure
func Fail[P any](err error) Action[P] {
	f := Classify(err)
	if f == nil {
		f = &Failure{Kind: KindUnknown, Message: "unknown error"}
	}
	return Action[P]{Type: ActionError, Err: f}
}
