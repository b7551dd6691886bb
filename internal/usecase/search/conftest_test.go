package search

import (
	"context"
	"os"
	"testing"

	"github.com/kailas-cloud/djinnsearch/internal/domain/principal"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
	"github.com/kailas-cloud/djinnsearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockEngine struct {
	// results are returned in order, one per call; the last one repeats.
	results []result.Set
	err     error
	calls   []request.Request
}

func (m *mockEngine) Execute(_ context.Context, req request.Request) (result.Set, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return result.Set{}, m.err
	}
	if len(m.results) == 0 {
		return result.Set{}, nil
	}
	i := min(len(m.calls)-1, len(m.results)-1)
	return m.results[i], nil
}

type mockDirectory struct {
	principal principal.Principal
	err       error
	calls     int
}

func (m *mockDirectory) Lookup(_ context.Context, username string) (principal.Principal, error) {
	m.calls++
	if m.err != nil {
		return principal.Principal{}, m.err
	}
	if m.principal.Username() != "" {
		return m.principal, nil
	}
	return principal.New(username, nil, false)
}

func mustPrincipal(t *testing.T, username string, groups []int64, superuser bool) principal.Principal {
	t.Helper()
	p, err := principal.New(username, groups, superuser)
	if err != nil {
		t.Fatalf("principal.New: %v", err)
	}
	return p
}

func hits(n int) result.Set {
	hs := make([]result.Hit, n)
	for i := range hs {
		hs[i] = result.NewHit(string(rune('a'+i)), float64(n-i), nil)
	}
	return result.NewSet(n, hs, nil, "")
}
