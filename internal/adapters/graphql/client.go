package graphql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"

	"golang.org/x/sync/singleflight"
)

const (
	urlDefault     = "https://api-v2.inkverse.co"
	timeoutDefault = 10 * time.Second
	versionDefault = "3.0.0"
)

// Options configures one Client
type Options struct {
	URL     string
	Name    string
	Version string
	Timeout time.Duration

	// Token turns on the auth link; nil sends every request anonymously
	Token    TokenSource
	Reporter Reporter
	Dev      bool

	HTTPClient *http.Client
	Log        *logger.Logger
}

// Client runs operations through ErrorLink, an optional AuthLink and the
// HTTP transport, answering from the shared cache when the policy allows
type Client struct {
	name    string
	cache   *Cache
	exec    Handler
	token   TokenSource
	timeout time.Duration
	log     *logger.Logger

	group   singleflight.Group
	mu      sync.Mutex
	flights map[string]*flight
}

// flight is one upstream request and the callers waiting on it
// It runs detached from every caller and is canceled when the last one leaves
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewClient builds a Client over cache; a nil cache gets a private one
func NewClient(cache *Cache, o Options) *Client {
	if o.URL == "" {
		o.URL = urlDefault
	}
	if o.Version == "" {
		o.Version = versionDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = timeoutDefault
	}
	if o.Log == nil {
		o.Log = logger.Named("graphql")
	}
	if cache == nil {
		cache = NewCache()
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}

	headers := http.Header{}
	headers.Set("client-version", o.Version)
	if o.Name != "" {
		headers.Set("client-name", o.Name)
	}

	t := &transport{
		http:    hc,
		url:     strings.TrimRight(o.URL, "/"),
		headers: headers,
		log:     o.Log,
		now:     time.Now,
		newID:   newRequestID,
	}

	links := []Link{ErrorLink(o.Reporter, o.Dev, o.Log)}
	if o.Token != nil {
		links = append(links, AuthLink(o.Token))
	}

	return &Client{
		name:    o.Name,
		cache:   cache,
		exec:    Chain(t.do, links...),
		token:   o.Token,
		timeout: o.Timeout,
		log:     o.Log,
		flights: map[string]*flight{},
	}
}

// Name is the client-name header value
func (c *Client) Name() string { return c.name }

// Cache returns the cache this client reads and writes
func (c *Client) Cache() *Cache { return c.cache }

// Query implements Querier
func (c *Client) Query(ctx context.Context, op Operation, out any) error {
	if op.Name == "" || op.Query == "" {
		return perr.InvalidArgf("graphql: operation needs a name and a query")
	}
	key := op.Key()

	if op.Policy == CacheFirst || op.Policy == CacheOnly {
		if data, ok := c.cache.Read(key); ok {
			c.log.Debug().Str("operation", op.Name).Str("policy", op.Policy.String()).Msg("graphql cache hit")
			return decode(op.Name, data, out)
		}
		if op.Policy == CacheOnly {
			return perr.NotFoundf("graphql %s: not cached", op.Name)
		}
	}

	resp, err := c.fetch(ctx, key, op)
	if err != nil {
		return err
	}
	if op.Policy != NoCache && len(resp.Data) > 0 {
		if err := c.cache.Write(key, resp.Data); err != nil {
			c.log.Warn().Err(err).Str("operation", op.Name).Msg("graphql cache write failed")
		}
	}
	return decode(op.Name, resp.Data, out)
}

// fetch joins an identical request already in flight for the same credentials
// Each caller waits on its own ctx; leaving early does not fail the others
func (c *Client) fetch(ctx context.Context, key string, op Operation) (*Response, error) {
	fkey := c.name + "|" + key
	if c.token != nil {
		tok, err := c.token.Token(ctx)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "graphql %s: token", op.Name)
		}
		ctx = withResolvedToken(ctx, tok)
		if tok != "" {
			fkey += "|" + tokenKey(tok)
		}
	}
	if err := perr.FromContext(ctx, "graphql "+op.Name); err != nil {
		return nil, err
	}

	c.mu.Lock()
	f, ok := c.flights[fkey]
	if !ok {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		f = &flight{ctx: fctx, cancel: cancel}
		c.flights[fkey] = f
	}
	f.waiters++
	ch := c.group.DoChan(fkey, func() (any, error) {
		return c.exec(f.ctx, op)
	})
	c.mu.Unlock()

	select {
	case res := <-ch:
		c.leave(fkey, f, false)
		if res.Shared {
			c.log.Debug().Str("operation", op.Name).Msg("graphql request shared")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Response), nil
	case <-ctx.Done():
		c.leave(fkey, f, true)
		return nil, perr.FromContext(ctx, "graphql "+op.Name)
	}
}

// leave drops one waiter; the last one out releases the flight and, when it
// gave up early, abandons the upstream request
func (c *Client) leave(fkey string, f *flight, abandoned bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	if c.flights[fkey] == f {
		delete(c.flights, fkey)
	}
	if abandoned {
		c.group.Forget(fkey)
	}
	f.cancel()
}

// tokenKey keeps raw credentials out of the in-flight keys
func tokenKey(tok string) string {
	sum := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(sum[:8])
}

func decode(op string, data json.RawMessage, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "graphql %s: decode data", op)
	}
	return nil
}
