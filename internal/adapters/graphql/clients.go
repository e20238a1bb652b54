package graphql

import (
	"net/http"
	"time"

	"inkverse/internal/platform/config"
	"inkverse/internal/platform/logger"
)

const (
	publicClientName = "Inkverse Go (Public)"
	userClientName   = "Inkverse Go (User)"
)

// ClientsOptions configures the public/user client pair
type ClientsOptions struct {
	URL      string
	Version  string
	Timeout  time.Duration
	Token    TokenSource
	Reporter Reporter
	Dev      bool

	HTTPClient *http.Client
	Log        *logger.Logger
}

// ClientsFromConfig reads INKVERSE_* settings
func ClientsFromConfig(cfg config.Conf) ClientsOptions {
	c := cfg.Prefix("INKVERSE_")
	o := ClientsOptions{
		URL:     c.MayURL("GRAPHQL_URL", urlDefault),
		Version: c.MayString("CLIENT_VERSION", versionDefault),
		Timeout: c.MayDuration("GRAPHQL_TIMEOUT", timeoutDefault),
		Dev:     c.MayBool("DEV", false),
	}
	if tok := c.MayString("USER_TOKEN", ""); tok != "" {
		o.Token = StaticToken(tok)
	}
	return o
}

// Clients is the pair every loader chooses from, sharing one cache
type Clients struct {
	Cache  *Cache
	Public *Client
	User   *Client
}

// NewClients builds both clients over a fresh cache
// The user client carries the auth link; the public one never sends credentials
func NewClients(o ClientsOptions) *Clients {
	if o.Reporter == nil {
		o.Reporter = NewLogReporter(o.Log)
	}
	cache := NewCache()
	base := Options{
		URL:        o.URL,
		Version:    o.Version,
		Timeout:    o.Timeout,
		Reporter:   o.Reporter,
		Dev:        o.Dev,
		HTTPClient: o.HTTPClient,
		Log:        o.Log,
	}

	pub := base
	pub.Name = publicClientName

	usr := base
	usr.Name = userClientName
	usr.Token = o.Token
	if usr.Token == nil {
		usr.Token = StaticToken("")
	}

	return &Clients{
		Cache:  cache,
		Public: NewClient(cache, pub),
		User:   NewClient(cache, usr),
	}
}
