package domain

// HomeInput is the body of POST /screens/home
type HomeInput struct {
	ForceRefresh bool `json:"forceRefresh,omitempty" example:"false"`
}

// ComicSeriesInput is the body of POST /screens/comicseries
type ComicSeriesInput struct {
	UUID         string `json:"uuid,omitempty" validate:"required_without=ShortURL,omitempty,uuid" example:"c8b9a3f4-1b2d-4d6e-9f10-2a3b4c5d6e7f"`
	ShortURL     string `json:"shortUrl,omitempty" validate:"required_without=UUID,omitempty,min=1,max=200" example:"nimona"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// ComicIssueInput is the body of POST /screens/comicissue
type ComicIssueInput struct {
	IssueUUID    string `json:"issueUuid,omitempty" validate:"required_without=ShortURL,omitempty,uuid"`
	SeriesUUID   string `json:"seriesUuid,omitempty" validate:"omitempty,uuid"`
	ShortURL     string `json:"shortUrl,omitempty" validate:"required_without=IssueUUID,omitempty,min=1,max=200"`
	EpisodeID    string `json:"episodeId,omitempty" validate:"required_with=ShortURL,omitempty,max=50"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// CreatorInput is the body of POST /screens/creator
type CreatorInput struct {
	UUID         string `json:"uuid,omitempty" validate:"required_without=ShortURL,omitempty,uuid"`
	ShortURL     string `json:"shortUrl,omitempty" validate:"required_without=UUID,omitempty,min=1,max=200"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// ListInput is the body of POST /screens/list
type ListInput struct {
	ID           string `json:"id" validate:"required,max=100" example:"id9-lgbt"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// ComicsInput is the body of POST /screens/comics
// Page 2 and later are returned alone; the client appends them
type ComicsInput struct {
	Page            int      `json:"page,omitempty" validate:"omitempty,min=1,max=1000" example:"1"`
	LimitPerPage    int      `json:"limitPerPage,omitempty" validate:"omitempty,min=1,max=100" example:"15"`
	FilterForTypes  []string `json:"filterForTypes,omitempty" validate:"omitempty,dive,oneof=COMICSERIES CREATOR"`
	FilterForTags   []string `json:"filterForTags,omitempty" validate:"excluded_with=FilterForGenres,omitempty,max=10,dive,min=1,max=100"`
	FilterForGenres []string `json:"filterForGenres,omitempty" validate:"omitempty,max=10,dive,startswith=COMICSERIES_"`
	ForceRefresh    bool     `json:"forceRefresh,omitempty"`
}

// SearchInput is the body of POST /screens/search
type SearchInput struct {
	Term           string   `json:"term" validate:"max=200" example:"nimona"`
	Page           int      `json:"page,omitempty" validate:"omitempty,min=1,max=1000"`
	LimitPerPage   int      `json:"limitPerPage,omitempty" validate:"omitempty,min=1,max=100"`
	FilterForTypes []string `json:"filterForTypes,omitempty" validate:"omitempty,dive,oneof=COMICSERIES CREATOR"`
	ForceRefresh   bool     `json:"forceRefresh,omitempty"`
}
