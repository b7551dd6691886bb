// Package bleve implements the search engine on a bleve v2 index.
package bleve

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/djinnsearch/internal/db"
)

// Compile-time check: Engine implements db.Engine.
var _ db.Engine = (*Engine)(nil)

// Config holds index location and tuning.
type Config struct {
	// Path is the index directory. Empty keeps the index in memory.
	Path            string
	CreateIfMissing bool
	// MaxEdits bounds spelling suggestions. Zero means DefaultMaxEdits.
	MaxEdits int
}

// Engine implements db.Engine on a bleve index.
type Engine struct {
	index    bleve.Index
	def      *db.IndexDefinition
	maxEdits int
}

// Open opens the index at cfg.Path, creating it from def when missing and
// allowed. An empty path creates an in-memory index.
func Open(cfg Config, def *db.IndexDefinition) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("index definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("index definition: %w", err)
	}

	m, err := buildMapping(def)
	if err != nil {
		return nil, err
	}

	var idx bleve.Index
	switch {
	case cfg.Path == "":
		idx, err = bleve.NewMemOnly(m)
		if err != nil {
			return nil, &db.Error{Op: db.OpCreate, Err: err}
		}
	default:
		idx, err = bleve.Open(cfg.Path)
		if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
			if !cfg.CreateIfMissing {
				return nil, &db.Error{Op: db.OpOpen, Err: fmt.Errorf("%s: %w", cfg.Path, db.ErrIndexNotFound)}
			}
			idx, err = bleve.New(cfg.Path, m)
			if err != nil {
				return nil, &db.Error{Op: db.OpCreate, Err: err}
			}
		} else if err != nil {
			return nil, &db.Error{Op: db.OpOpen, Err: err}
		}
	}

	maxEdits := cfg.MaxEdits
	if maxEdits <= 0 {
		maxEdits = DefaultMaxEdits
	}

	return &Engine{index: idx, def: def, maxEdits: maxEdits}, nil
}

// Create builds a new on-disk index. Fails if one already exists at path.
func Create(path string, def *db.IndexDefinition) (*Engine, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if def == nil {
		return nil, fmt.Errorf("index definition is required")
	}
	m, err := buildMapping(def)
	if err != nil {
		return nil, err
	}
	idx, err := bleve.New(path, m)
	if errors.Is(err, bleve.ErrorIndexPathExists) {
		return nil, &db.Error{Op: db.OpCreate, Err: fmt.Errorf("%s: %w", path, db.ErrIndexExists)}
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpCreate, Err: err}
	}
	return &Engine{index: idx, def: def, maxEdits: DefaultMaxEdits}, nil
}

// Ping checks that the index can be read.
func (e *Engine) Ping(_ context.Context) error {
	if _, err := e.index.DocCount(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the index.
func (e *Engine) Close() error {
	if err := e.index.Close(); err != nil {
		return &db.Error{Op: db.OpClose, Err: err}
	}
	return nil
}

// Search runs q. When opts carries a spelling query a suggestion is computed
// from the dictionary; its failure is reported in SuggestionErr, not as an error.
func (e *Engine) Search(ctx context.Context, q *db.SearchQuery, opts db.RunOptions) (*db.SearchResult, error) {
	bq, err := e.buildQuery(q)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequestOptions(bq, limit, max(q.Offset, 0), false)
	req.Fields = q.Fields
	for _, f := range q.Facets {
		req.AddFacet(f.Name, bleve.NewFacetRequest(f.Field, f.Size))
	}
	if len(q.Sort) > 0 {
		req.SortBy(append(append([]string(nil), q.Sort...), "-_score"))
	}

	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	out := &db.SearchResult{
		Total:   int(res.Total),
		Entries: make([]db.SearchEntry, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		out.Entries = append(out.Entries, db.SearchEntry{Key: h.ID, Score: h.Score, Fields: h.Fields})
	}
	if len(res.Facets) > 0 {
		out.Facets = make(map[string][]db.FacetCount, len(res.Facets))
		for name, fr := range res.Facets {
			terms := fr.Terms.Terms()
			counts := make([]db.FacetCount, 0, len(terms))
			for _, t := range terms {
				counts = append(counts, db.FacetCount{Term: t.Term, Count: t.Count})
			}
			out.Facets[name] = counts
		}
	}

	if opts.SpellingQuery != nil {
		s, err := e.suggest(ctx, *opts.SpellingQuery)
		if err != nil {
			out.SuggestionErr = &db.Error{Op: db.OpSuggest, Err: err}
		} else {
			out.Suggestion = s
		}
	}

	return out, nil
}

func (e *Engine) buildQuery(q *db.SearchQuery) (query.Query, error) {
	match, err := translate(q.Match)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	if len(q.Filters) == 0 {
		return match, nil
	}

	bq := bleve.NewBooleanQuery()
	bq.AddMust(match)
	for i, f := range q.Filters {
		fq, err := translate(f)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		bq.AddMust(fq)
	}
	return bq, nil
}

// Index writes docs in a single batch. Existing ids are replaced.
func (e *Engine) Index(ctx context.Context, docs []db.IndexDoc) error {
	if len(docs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}

	b := e.index.NewBatch()
	for _, d := range docs {
		if d.ID == "" {
			return &db.Error{Op: db.OpIndex, Err: fmt.Errorf("document without id")}
		}
		if err := b.Index(d.ID, d.Fields); err != nil {
			return &db.Error{Op: db.OpIndex, Err: fmt.Errorf("%s: %w", d.ID, err)}
		}
	}
	if err := e.index.Batch(b); err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}
	return nil
}

// Delete removes documents by id. Unknown ids are ignored.
func (e *Engine) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}

	b := e.index.NewBatch()
	for _, id := range ids {
		b.Delete(id)
	}
	if err := e.index.Batch(b); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// Count returns the number of indexed documents.
func (e *Engine) Count(_ context.Context) (uint64, error) {
	n, err := e.index.DocCount()
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Definition returns the schema the engine was opened with.
func (e *Engine) Definition() *db.IndexDefinition { return e.def }
