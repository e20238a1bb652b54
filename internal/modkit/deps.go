// Package modkit provides module wiring and core deps
package modkit

import (
	"inkverse/internal/adapters/graphql"
	"inkverse/internal/modkit/swaggerkit"
	"inkverse/internal/platform/config"
	"inkverse/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Clients *graphql.Clients
	Docs    *swaggerkit.Doc
}

// Logger returns a component logger, derived from Log when one was injected
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	ll := d.Log.With().Str("component", component).Logger()
	return &ll
}

// Public is the anonymous client, nil when no clients were wired
func (d Deps) Public() graphql.Querier {
	if d.Clients == nil || d.Clients.Public == nil {
		return nil
	}
	return d.Clients.Public
}

// User is the authenticated client, nil when no clients were wired
func (d Deps) User() graphql.Querier {
	if d.Clients == nil || d.Clients.User == nil {
		return nil
	}
	return d.Clients.User
}

// Cache is the cache both clients share
func (d Deps) Cache() *graphql.Cache {
	if d.Clients == nil {
		return nil
	}
	return d.Clients.Cache
}
