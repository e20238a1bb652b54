package dispatch

// Reducer folds an action into a state
type Reducer[P any] func(State[P], Action[P]) State[P]

// Merge combines existing data with a further page
type Merge[P any] func(existing, page P) P

// NewReducer builds the reducer shared by every screen
// merge is only used by ActionSuccessAppend; nil means the page replaces the data
// A panicking merge leaves the state as it was
func NewReducer[P any](merge Merge[P]) Reducer[P] {
	return func(s State[P], a Action[P]) (next State[P]) {
		prev := s
		defer func() {
			if r := recover(); r != nil {
				next = prev
			}
		}()

		switch a.Type {
		case ActionLoading:
			if a.IsLoadingMore {
				s.IsLoading = false
				s.IsLoadingMore = true
				return s
			}
			s.IsLoading = true
			s.IsLoadingMore = false
			s.Err = nil
			return s

		case ActionSuccess:
			payload := a.Payload
			s.Data = &payload
			s.Err = nil
			s.IsLoading, s.IsLoadingMore = false, false
			s.Page = a.Page
			if s.Page < 1 {
				s.Page = 1
			}
			s.HasMore = hasMore(a)
			return s

		case ActionSuccessAppend:
			merged := a.Payload
			if s.Data != nil && merge != nil {
				merged = merge(*s.Data, a.Payload)
			}
			s.Data = &merged
			s.Err = nil
			s.IsLoading, s.IsLoadingMore = false, false
			if a.Page > 0 {
				s.Page = a.Page
			} else {
				s.Page++
			}
			s.HasMore = hasMore(a)
			return s

		case ActionError:
			s.Err = a.Err
			if s.Err == nil {
				s.Err = &Failure{Kind: KindUnknown, Message: "unknown error"}
			}
			s.IsLoading, s.IsLoadingMore = false, false
			return s

		default:
			return s
		}
	}
}

// a full page implies another may follow; unpaged actions never have more
func hasMore[P any](a Action[P]) bool {
	return a.PageSize > 0 && a.Count >= a.PageSize
}
