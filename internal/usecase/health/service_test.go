package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := &mockPinger{err: errors.New("conn refused")}
	up := &mockPinger{}

	tests := []struct {
		name      string
		index     Pinger
		directory Pinger
		status    Status
		checks    map[string]CheckResult
	}{
		{"all healthy", up, up, Healthy, map[string]CheckResult{ComponentIndex: CheckOK, ComponentDirectory: CheckOK}},
		{"directory down", up, down, Degraded, map[string]CheckResult{ComponentIndex: CheckOK, ComponentDirectory: CheckError}},
		{"index down", down, up, Unhealthy, map[string]CheckResult{ComponentIndex: CheckError, ComponentDirectory: CheckOK}},
		{"both down", down, down, Unhealthy, map[string]CheckResult{ComponentIndex: CheckError, ComponentDirectory: CheckError}},
		{"no directory", up, nil, Healthy, map[string]CheckResult{ComponentIndex: CheckOK}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.index, tc.directory).Check(context.Background())

			if r.Status != tc.status {
				t.Errorf("expected %q, got %q", tc.status, r.Status)
			}
			if len(r.Checks) != len(tc.checks) {
				t.Errorf("expected %d checks, got %v", len(tc.checks), r.Checks)
			}
			for k, v := range tc.checks {
				if r.Checks[k] != v {
					t.Errorf("expected %s %q, got %q", k, v, r.Checks[k])
				}
			}
		})
	}
}
