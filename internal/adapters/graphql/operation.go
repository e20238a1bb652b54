// Package graphql is the Inkverse GraphQL client: an HTTP transport behind a
// chain of links, a normalized cache shared by the public and user clients,
// and fetch policies that decide when the cache may answer
package graphql

import (
	"context"
	"encoding/json"
)

// FetchPolicy decides how a query uses the cache
type FetchPolicy uint8

const (
	// CacheFirst answers from the cache when it can and fetches otherwise
	CacheFirst FetchPolicy = iota
	// NetworkOnly always fetches and refreshes the cache
	NetworkOnly
	// CacheOnly never fetches; a miss is a not found error
	CacheOnly
	// NoCache fetches and leaves the cache untouched
	NoCache
)

func (p FetchPolicy) String() string {
	switch p {
	case CacheFirst:
		return "cache-first"
	case NetworkOnly:
		return "network-only"
	case CacheOnly:
		return "cache-only"
	case NoCache:
		return "no-cache"
	}
	return "unknown"
}

// Operation is one named GraphQL query with its variables
type Operation struct {
	Name      string
	Query     string
	Variables map[string]any
	Policy    FetchPolicy
}

// Key identifies the operation in the cache and in the in-flight table
// encoding/json sorts map keys so equal variables give equal keys
func (o Operation) Key() string {
	if len(o.Variables) == 0 {
		return o.Name + ":{}"
	}
	b, err := json.Marshal(o.Variables)
	if err != nil {
		return o.Name + ":!"
	}
	return o.Name + ":" + string(b)
}

// Querier runs an operation and decodes its data into out
type Querier interface {
	Query(ctx context.Context, op Operation, out any) error
}

// QuerierFunc adapts a function to Querier
type QuerierFunc func(ctx context.Context, op Operation, out any) error

// Query implements Querier
func (f QuerierFunc) Query(ctx context.Context, op Operation, out any) error { return f(ctx, op, out) }

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is the decoded GraphQL response envelope
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ServerError   `json:"errors,omitempty"`
}
