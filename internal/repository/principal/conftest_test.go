package principal

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	pingFn      func(ctx context.Context) error
	smembersFn  func(ctx context.Context, key string) ([]string, error)
	sismemberFn func(ctx context.Context, key, member string) (bool, error)
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	if m.sismemberFn != nil {
		return m.sismemberFn(ctx, key, member)
	}
	return false, nil
}

func newTestDirectory(t *testing.T) (*RedisDirectory, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return NewRedisDirectory(ms, "djinn:"), ms
}
