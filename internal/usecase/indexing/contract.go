package indexing

import (
	"context"

	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
)

// DocumentWriter writes documents to and removes them from the index.
type DocumentWriter interface {
	IndexMany(ctx context.Context, docs []domdoc.Document) error
	DeleteMany(ctx context.Context, ids []string) error
}
