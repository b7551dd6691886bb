package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
)

func TestInstrumentedEngine_Success(t *testing.T) {
	inner := &mockEngine{results: []result.Set{hits(2)}}
	e := NewInstrumentedEngine(inner, zap.NewNop())

	rs, err := e.Execute(context.Background(), textRequest("budget").WithProfile("default"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Total() != 2 {
		t.Errorf("total = %d", rs.Total())
	}
	if len(inner.calls) != 1 {
		t.Errorf("inner calls = %d", len(inner.calls))
	}
}

func TestInstrumentedEngine_Error(t *testing.T) {
	cause := errors.New("index closed")
	e := NewInstrumentedEngine(&mockEngine{err: cause}, zap.NewNop())

	_, err := e.Execute(context.Background(), textRequest("budget"))
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
