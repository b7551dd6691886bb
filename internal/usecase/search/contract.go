package search

import (
	"context"

	"github.com/kailas-cloud/djinnsearch/internal/domain/principal"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
)

// Engine executes search requests against the index.
type Engine interface {
	Execute(ctx context.Context, req request.Request) (result.Set, error)
}

// Directory resolves usernames into principals.
type Directory interface {
	Lookup(ctx context.Context, username string) (principal.Principal, error)
}
