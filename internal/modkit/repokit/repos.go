// Package repokit provides the seams GraphQL-backed repositories are built on
package repokit

import (
	"context"

	"inkverse/internal/adapters/graphql"
)

// Queryer is the read surface repositories bind to
type Queryer = graphql.Querier

// Policy picks the fetch policy for a load; a forced refresh skips the cache
func Policy(forceRefresh bool) graphql.FetchPolicy {
	if forceRefresh {
		return graphql.NetworkOnly
	}
	return graphql.CacheFirst
}

// Query runs op through q and decodes the data into a fresh T
func Query[T any](ctx context.Context, q Queryer, op graphql.Operation) (T, error) {
	var out T
	err := q.Query(ctx, op, &out)
	return out, err
}
