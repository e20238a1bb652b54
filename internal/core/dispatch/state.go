package dispatch

// State is what a screen renders from
// IsLoading and IsLoadingMore are never both true
type State[P any] struct {
	IsLoading     bool     `json:"isLoading"`
	IsLoadingMore bool     `json:"isLoadingMore"`
	Err           *Failure `json:"error,omitempty"`
	Data          *P       `json:"data,omitempty"`
	Page          int      `json:"page"`
	HasMore       bool     `json:"hasMore"`
}

// VisibleError is the error a screen shows; data on hand hides it
func (s State[P]) VisibleError() *Failure {
	if s.Data != nil {
		return nil
	}
	return s.Err
}

// CanLoadMore reports whether a further page may be requested now
func (s State[P]) CanLoadMore() bool {
	return s.Data != nil && s.HasMore && !s.IsLoading && !s.IsLoadingMore
}

// Settled reports whether no fetch is in flight
func (s State[P]) Settled() bool { return !s.IsLoading && !s.IsLoadingMore }
