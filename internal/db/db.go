package db

import (
	"context"
	"time"
)

// Engine is the full-text search engine facade combining all sub-interfaces.
type Engine interface {
	Pinger
	Searcher
	Indexer
	Close() error
}

// Pinger checks backend availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes search queries.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery, opts RunOptions) (*SearchResult, error)
}

// Indexer writes documents to the search index.
type Indexer interface {
	Index(ctx context.Context, docs []IndexDoc) error
	Delete(ctx context.Context, ids []string) error
	Count(ctx context.Context) (uint64, error)
}

// SetStore provides the set operations the principal directory needs.
type SetStore interface {
	Pinger
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
