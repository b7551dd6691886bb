package document

import (
	"context"
	"testing"

	"github.com/kailas-cloud/djinnsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexFn  func(ctx context.Context, docs []db.IndexDoc) error
	deleteFn func(ctx context.Context, ids []string) error
	countFn  func(ctx context.Context) (uint64, error)
}

func (m *mockStore) Index(ctx context.Context, docs []db.IndexDoc) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, docs)
	}
	return nil
}

func (m *mockStore) Delete(ctx context.Context, ids []string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ids)
	}
	return nil
}

func (m *mockStore) Count(ctx context.Context) (uint64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
