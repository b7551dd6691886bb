package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/djinnsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.SearchQuery, opts db.RunOptions) (*db.SearchResult, error)
	calls    int
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery, opts db.RunOptions) (*db.SearchResult, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, q, opts)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, []string{"title", "url"}, 0)
	return repo, ms
}
