// Package domain holds the screen payloads, loader parameters and HTTP DTOs
package domain

import (
	"strconv"
	"strings"
)

// ComicSeries is a series as the API returns it
type ComicSeries struct {
	UUID           string   `json:"uuid"`
	ShortURL       string   `json:"shortUrl,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Type           string   `json:"type,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CoverImageURL  string   `json:"coverImageUrl,omitempty"`
	BannerImageURL string   `json:"bannerImageUrl,omitempty"`
}

// Story is one page image of an issue
type Story struct {
	ID       string `json:"id"`
	ImageURL string `json:"storyImageUrl"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ComicIssue is a single episode of a series
type ComicIssue struct {
	UUID          string       `json:"uuid"`
	Name          string       `json:"name"`
	SeriesUUID    string       `json:"seriesUuid"`
	Position      int          `json:"position"`
	DatePublished string       `json:"datePublished,omitempty"`
	CreatorNote   string       `json:"creatorNote,omitempty"`
	ThumbnailURL  string       `json:"thumbnailImageUrl,omitempty"`
	Stories       []Story      `json:"stories,omitempty"`
	ComicSeries   *ComicSeries `json:"comicSeries,omitempty"`
}

// CreatorLink is an external profile link
type CreatorLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Creator is an author or artist
type Creator struct {
	UUID           string        `json:"uuid"`
	ShortURL       string        `json:"shortUrl,omitempty"`
	Name           string        `json:"name"`
	Bio            string        `json:"bio,omitempty"`
	AvatarImageURL string        `json:"avatarImageUrl,omitempty"`
	Links          []CreatorLink `json:"links,omitempty"`
}

// List is a curated list of series
type List struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ComicSeries []ComicSeries `json:"comicseries"`
}

// HomeFeed is the payload of the home screen
type HomeFeed struct {
	Featured        []ComicSeries `json:"featuredComicSeries"`
	CuratedLists    []List        `json:"curatedLists"`
	MostPopular     []ComicSeries `json:"mostPopularComicSeries"`
	RecentlyAdded   []ComicSeries `json:"recentlyAddedComicSeries"`
	RecentlyUpdated []ComicSeries `json:"recentlyUpdatedComicSeries"`
}

// ComicSeriesPayload is the payload of the series screen
type ComicSeriesPayload struct {
	ComicSeries *ComicSeries `json:"comicseries"`
	Issues      []ComicIssue `json:"issues"`
}

// ComicIssuePayload is the payload of the reader screen
type ComicIssuePayload struct {
	ComicIssue  *ComicIssue  `json:"comicissue"`
	ComicSeries *ComicSeries `json:"comicseries"`
	AllIssues   []ComicIssue `json:"allIssues"`
}

// NextIssue is the issue after the current one by position, if any
func (p ComicIssuePayload) NextIssue() *ComicIssue { return p.neighbour(+1) }

// PreviousIssue is the issue before the current one by position, if any
func (p ComicIssuePayload) PreviousIssue() *ComicIssue { return p.neighbour(-1) }

func (p ComicIssuePayload) neighbour(dir int) *ComicIssue {
	if p.ComicIssue == nil {
		return nil
	}
	cur := p.ComicIssue.Position
	var best *ComicIssue
	for i := range p.AllIssues {
		is := &p.AllIssues[i]
		if is.UUID == p.ComicIssue.UUID {
			continue
		}
		d := (is.Position - cur) * dir
		if d <= 0 {
			continue
		}
		if best == nil || (best.Position-cur)*dir > d {
			best = is
		}
	}
	return best
}

// CreatorPayload is the payload of the creator screen
type CreatorPayload struct {
	Creator     *Creator      `json:"creator"`
	ComicSeries []ComicSeries `json:"comicseries"`
}

// ListPayload is the payload of the list screen
type ListPayload struct {
	List *List `json:"list"`
}

// ComicsListPayload is the payload of the filtered browse screen
type ComicsListPayload struct {
	Comics []ComicSeries `json:"comics"`
}

// SearchPayload is the payload of the search screen
type SearchPayload struct {
	ComicSeries []ComicSeries `json:"comicseries"`
	Creators    []Creator     `json:"creators"`
}

// Len is the number of results in the page
func (p SearchPayload) Len() int { return len(p.ComicSeries) + len(p.Creators) }

const genrePrefix = "COMICSERIES_"

// GenreTitle turns a genre value like COMICSERIES_SLICE_OF_LIFE into "SLICE OF LIFE"
func GenreTitle(value string) string {
	return strings.ReplaceAll(strings.Replace(value, genrePrefix, "", 1), "_", " ")
}

// ParseListID accepts a bare id ("9") or a deep-link slug ("id9-lgbt")
func ParseListID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "id")
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil || s == "" {
		return "", false
	}
	return s, true
}
