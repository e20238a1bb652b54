// Package service contains the screen loaders
//
// A loader takes a context, its parameters and a dispatch. It reports
// loading straight away, runs its queries through the selected client and
// finishes with exactly one success or error action. Loaders never panic and
// never return errors; the dispatch is the only output.
package service

import (
	"context"
	"time"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/core/dispatch"
	"inkverse/internal/modkit/repokit"
	"inkverse/internal/platform/config"
	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"
	"inkverse/internal/services/screens/domain"
	"inkverse/internal/services/screens/repo"
)

// Service defines the service contract for screens
type Service interface{ domain.LoaderPort }

// Config tunes paging and search
type Config struct {
	PageSize       int
	SearchDebounce time.Duration
}

// DefaultConfig matches the page size and typing delay of the reader app
func DefaultConfig() Config {
	return Config{PageSize: 15, SearchDebounce: 300 * time.Millisecond}
}

// ConfigFrom reads INKVERSE_PAGE_SIZE and INKVERSE_SEARCH_DEBOUNCE
func ConfigFrom(cfg config.Conf) Config {
	def := DefaultConfig()
	c := cfg.Prefix("INKVERSE_")
	return Config{
		PageSize:       c.MayInt("PAGE_SIZE", def.PageSize),
		SearchDebounce: c.MayDuration("SEARCH_DEBOUNCE", def.SearchDebounce),
	}
}

// Svc implements the Service interface
type Svc struct {
	binder repokit.Binder[repo.Repo]
	public repokit.Queryer
	log    *logger.Logger
	cfg    Config
}

var _ Service = (*Svc)(nil)

// New creates a new screens service
// public answers every request that does not name its own client
func New(binder repokit.Binder[repo.Repo], public repokit.Queryer, log *logger.Logger, cfg Config) *Svc {
	if binder == nil {
		panic("screens.Service requires a non nil Repo binder")
	}
	public = repokit.RequireQueryer(public)
	if log == nil {
		log = logger.Named("screens")
	}
	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.SearchDebounce < 0 {
		cfg.SearchDebounce = def.SearchDebounce
	}
	return &Svc{binder: binder, public: public, log: log, cfg: cfg}
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

// repoFor binds the repo to the request's client, the public one by default
func (s *Svc) repoFor(req domain.Request) repo.Repo {
	q := req.Client
	if q == nil {
		q = s.public
	}
	return repokit.MustBind(s.binder, repokit.WithHooks(q, s.traceOperation))
}

func (s *Svc) traceOperation(ctx context.Context, op graphql.Operation) (context.Context, error) {
	ctx = logger.WithOperation(ctx, op.Name)
	logger.From(ctx, s.log).Debug().Str("policy", op.Policy.String()).Msg("graphql operation")
	return ctx, nil
}

// page describes the slice of results a success carries; zero means unpaged
type page struct {
	number, count, size int
}

// run drives one load: loading, the query, then one terminal action
func run[P any](
	ctx context.Context,
	s *Svc,
	screen string,
	req domain.Request,
	d dispatch.Dispatch[P],
	load func(ctx context.Context, r repo.Repo, policy graphql.FetchPolicy) (P, page, error),
) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d == nil {
		d = dispatch.Discard[P]
	}
	ctx = logger.WithScreen(ctx, screen)
	log := logger.From(ctx, s.log)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("screen load panicked")
			safeDispatch(d, dispatch.Fail[P](perr.PanicErrf("%s: %v", screen, r)))
		}
	}()

	d(dispatch.Loading[P](req.IsLoadingMore))

	policy := repokit.Policy(req.ForceRefresh)
	log.Debug().Str("policy", policy.String()).Bool("more", req.IsLoadingMore).Msg("screen load")

	payload, pg, err := load(ctx, s.repoFor(req), policy)
	if err != nil {
		log.Debug().Err(err).Msg("screen load failed")
		d(dispatch.Fail[P](err))
		return
	}
	d(dispatch.SuccessPage(payload, pg.number, pg.count, pg.size, req.IsLoadingMore))
}

// safeDispatch reports a failure through a dispatch that may itself have panicked
func safeDispatch[P any](d dispatch.Dispatch[P], a dispatch.Action[P]) {
	defer func() { _ = recover() }()
	d(a)
}
