package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/dispatch"
	perr "inkverse/internal/platform/errors"
	"inkverse/internal/services/screens/domain"
	"inkverse/internal/services/screens/service"

	"github.com/google/uuid"
)

type options struct {
	screen  string
	uuid    string
	short   string
	episode string
	series  string
	id      string
	term    string
	types   string
	tags    string
	genres  string
	more    int
	force   bool
	user    bool
	wait    time.Duration
}

var screens = []string{"home", "comicseries", "comicissue", "creator", "list", "comics", "search"}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("inkverse-browse", flag.ContinueOnError)
	fs.StringVar(&o.screen, "screen", "home", "screen to mount: "+strings.Join(screens, ", "))
	fs.StringVar(&o.uuid, "uuid", "", "series, issue or creator uuid")
	fs.StringVar(&o.short, "short", "", "series or creator short url")
	fs.StringVar(&o.episode, "episode", "", "episode id, with -short")
	fs.StringVar(&o.series, "series", "", "series uuid of the issue, optional")
	fs.StringVar(&o.id, "id", "", "list id or deep link slug (id9-lgbt)")
	fs.StringVar(&o.term, "term", "", "search term; stdin lines are read as keystrokes when empty")
	fs.StringVar(&o.types, "types", "", "comma separated result types")
	fs.StringVar(&o.tags, "tags", "", "comma separated tags for -screen comics")
	fs.StringVar(&o.genres, "genres", "", "comma separated genres for -screen comics")
	fs.IntVar(&o.more, "more", 0, "further pages to load after the first")
	fs.BoolVar(&o.force, "force", false, "skip the cache for the first load")
	fs.BoolVar(&o.user, "user", false, "query with the user client")
	fs.DurationVar(&o.wait, "wait", 15*time.Second, "how long to wait for a debounced search to settle")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	for _, s := range screens {
		if s == o.screen {
			return o, nil
		}
	}
	return o, fmt.Errorf("unknown screen %q", o.screen)
}

func csv(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// printer writes one JSON line per state change
type printer struct {
	mu      sync.Mutex
	enc     *json.Encoder
	session string
}

type line struct {
	Session string              `json:"session"`
	Screen  string              `json:"screen"`
	Action  dispatch.ActionType `json:"action"`
	State   any                 `json:"state"`
}

func (p *printer) print(screen string, a dispatch.ActionType, st any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.enc.Encode(line{Session: p.session, Screen: screen, Action: a, State: st})
}

// watch prints every state of st and signals each terminal action
func watch[P any](p *printer, screen string, st *dispatch.Store[P]) <-chan struct{} {
	done := make(chan struct{}, 1)
	st.Subscribe(func(s dispatch.State[P], a dispatch.Action[P]) {
		p.print(screen, a.Type, s)
		if a.Terminal() {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})
	return done
}

// settle waits until st has no fetch in flight
func settle[P any](ctx context.Context, st *dispatch.Store[P], done <-chan struct{}, limit time.Duration) error {
	timer := time.NewTimer(limit)
	defer timer.Stop()
	for !st.State().Settled() {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return perr.Unavailablef("screen did not settle within %s", limit)
		}
	}
	return nil
}

// outcome is the error the final state shows, if any
func outcome[P any](st *dispatch.Store[P]) error {
	if f := st.State().VisibleError(); f != nil {
		return f
	}
	return nil
}

type browser struct {
	svc  *service.Svc
	user graphql.Querier
}

func (b browser) request(o options) domain.Request {
	req := domain.Request{ForceRefresh: o.force}
	if o.user && b.user != nil {
		req.Client = b.user
	}
	return req
}

func (b browser) run(ctx context.Context, o options, in io.Reader, out io.Writer) error {
	p := &printer{enc: json.NewEncoder(out), session: uuid.NewString()}
	req := b.request(o)

	switch o.screen {
	case "home":
		st := service.NewHomeFeedStore(ctx)
		defer st.Close()
		watch(p, o.screen, st)
		b.svc.LoadHomeFeed(st.Context(), domain.HomeFeedParams{Request: req}, st.Bind())
		return outcome(st)

	case "comicseries":
		st := service.NewComicSeriesStore(ctx)
		defer st.Close()
		watch(p, o.screen, st)
		if o.uuid != "" {
			b.svc.LoadComicSeries(st.Context(), domain.ComicSeriesParams{Request: req, UUID: o.uuid}, st.Bind())
		} else {
			b.svc.LoadComicSeriesURL(st.Context(), domain.ComicSeriesURLParams{Request: req, ShortURL: o.short}, st.Bind())
		}
		return outcome(st)

	case "comicissue":
		st := service.NewComicIssueStore(ctx)
		defer st.Close()
		watch(p, o.screen, st)
		if o.uuid != "" {
			b.svc.LoadComicIssue(st.Context(), domain.ComicIssueParams{Request: req, IssueUUID: o.uuid, SeriesUUID: o.series}, st.Bind())
		} else {
			b.svc.LoadComicIssueURL(st.Context(), domain.ComicIssueURLParams{Request: req, ShortURL: o.short, EpisodeID: o.episode}, st.Bind())
		}
		return outcome(st)

	case "creator":
		st := service.NewCreatorStore(ctx)
		defer st.Close()
		watch(p, o.screen, st)
		if o.uuid != "" {
			b.svc.LoadCreator(st.Context(), domain.CreatorParams{Request: req, UUID: o.uuid}, st.Bind())
		} else {
			b.svc.LoadCreatorURL(st.Context(), domain.CreatorURLParams{Request: req, ShortURL: o.short}, st.Bind())
		}
		return outcome(st)

	case "list":
		st := service.NewListStore(ctx)
		defer st.Close()
		watch(p, o.screen, st)
		b.svc.LoadList(st.Context(), domain.ListParams{Request: req, ID: o.id}, st.Bind())
		return outcome(st)

	case "comics":
		return b.comics(ctx, p, o, req)

	default:
		return b.search(ctx, p, o, in)
	}
}

func (b browser) comics(ctx context.Context, p *printer, o options, req domain.Request) error {
	cl := b.svc.NewComicsList(ctx, domain.ComicsListParams{
		Request:         req,
		FilterForTypes:  csv(o.types),
		FilterForTags:   csv(o.tags),
		FilterForGenres: csv(o.genres),
	})
	defer cl.Close()
	watch(p, o.screen, cl.Store())

	cl.Load(o.force)
	for i := 0; i < o.more; i++ {
		if !cl.LoadMore() {
			break
		}
	}
	return outcome(cl.Store())
}

func (b browser) search(ctx context.Context, p *printer, o options, in io.Reader) error {
	ss := b.svc.NewSearchSession(ctx, csv(o.types)...)
	defer ss.Close()
	done := watch(p, o.screen, ss.Store())

	if o.term != "" {
		ss.Type(o.term)
	} else {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ss.Type(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "read keystrokes")
		}
	}

	if err := settle(ctx, ss.Store(), done, o.wait); err != nil {
		return err
	}
	for i := 0; i < o.more; i++ {
		if !ss.LoadMore() {
			break
		}
	}
	return outcome(ss.Store())
}
