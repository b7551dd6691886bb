package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/bootstrap"
	blevedb "github.com/kailas-cloud/djinnsearch/internal/db/bleve"
	dombatch "github.com/kailas-cloud/djinnsearch/internal/domain/batch"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/profile"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
	"github.com/kailas-cloud/djinnsearch/internal/ingest"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
	documentrepo "github.com/kailas-cloud/djinnsearch/internal/repository/document"
	indexinguc "github.com/kailas-cloud/djinnsearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/djinnsearch/internal/usecase/search"
)

func createCommand(c *cli.Context) error {
	cfg := configFrom(c)
	if cfg.Engine.IndexPath == "" {
		return fmt.Errorf("engine.index_path is required to create an index")
	}

	engine, err := blevedb.Create(cfg.Engine.IndexPath, documentrepo.Schema())
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	loggerFrom(c).Info("Created index", zap.String("path", cfg.Engine.IndexPath))
	fmt.Fprintf(c.App.Writer, "created %s\n", cfg.Engine.IndexPath)
	return nil
}

func indexCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}
	cfg := configFrom(c)
	log := loggerFrom(c)
	ctx := logger.ContextWithLogger(c.Context, log)

	start := time.Now()
	batch, err := ingest.DecodeFiles(ctx, c.Args().Slice(), c.Int("workers"))
	if err != nil {
		return err
	}
	for _, f := range batch.Failures {
		log.Warn("Skipped record", zap.String("source", f.Source), zap.Int("line", f.Line), zap.Error(f.Err))
	}

	engine, err := bootstrap.OpenEngine(cfg.Engine)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	batchSize := cfg.Engine.IndexBatchSize
	if n := c.Int("batch-size"); n > 0 {
		batchSize = n
	}
	svc := indexinguc.New(documentrepo.New(engine)).WithBatchSize(batchSize)
	sum := dombatch.Summarize(svc.Index(ctx, batch.Docs))

	log.Info("Indexing finished",
		zap.Int("indexed", sum.Indexed),
		zap.Int("failed", sum.Failed),
		zap.Int("invalid", len(batch.Failures)),
		zap.Duration("duration", time.Since(start)),
	)
	fmt.Fprintf(c.App.Writer, "indexed: %d, failed: %d, invalid: %d\n", sum.Indexed, sum.Failed, len(batch.Failures))

	if sum.Failed > 0 {
		return fmt.Errorf("%d documents failed: %w", sum.Failed, sum.Err)
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one id is required")
	}
	cfg := configFrom(c)
	ctx := logger.ContextWithLogger(c.Context, loggerFrom(c))

	engine, err := bootstrap.OpenEngine(cfg.Engine)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	svc := indexinguc.New(documentrepo.New(engine)).WithBatchSize(cfg.Engine.IndexBatchSize)
	sum := dombatch.Summarize(svc.Delete(ctx, c.Args().Slice()))
	fmt.Fprintf(c.App.Writer, "deleted: %d, failed: %d\n", sum.Deleted, sum.Failed)

	if sum.Failed > 0 {
		return fmt.Errorf("%d deletes failed: %w", sum.Failed, sum.Err)
	}
	return nil
}

func countCommand(c *cli.Context) error {
	engine, err := bootstrap.OpenEngine(configFrom(c).Engine)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	n, err := documentrepo.New(engine).Count(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, n)
	return nil
}

// queryHit is the printed form of one search hit.
type queryHit struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Fields map[string]any `json:"fields,omitempty"`
}

// queryOutput is the printed form of a search payload.
type queryOutput struct {
	Query      string                                 `json:"query"`
	NoQuery    bool                                   `json:"no_query,omitempty"`
	Total      int                                    `json:"total"`
	Page       int                                    `json:"page"`
	HasNext    bool                                   `json:"has_next"`
	Tainted    bool                                   `json:"is_tainted_and_or"`
	Suggestion string                                 `json:"suggestion,omitempty"`
	Hits       []queryHit                             `json:"hits"`
	Facets     map[dimension.Dimension]map[string]int `json:"facets,omitempty"`
	Errors     map[string]string                      `json:"errors,omitempty"`
}

func queryCommand(c *cli.Context) error {
	cfg := configFrom(c)
	log := loggerFrom(c)
	ctx := logger.ContextWithLogger(c.Context, log)

	params := searchuc.Params{
		Profile:  profile.Default(),
		Username: c.String("user"),
		Input: query.Input{
			Text:    c.Args().First(),
			OrderBy: c.String("order"),
			Page:    c.Int("page"),
		},
	}
	if types := c.StringSlice("content-type"); len(types) > 0 {
		params.Input.Filters = map[dimension.Dimension][]string{dimension.ContentType: types}
	}
	switch {
	case c.IsSet("group") && c.IsSet("owner"):
		return fmt.Errorf("--group and --owner are mutually exclusive")
	case c.IsSet("group"):
		params.Profile = profile.GroupContent()
		params.Fixed = strconv.FormatInt(c.Int64("group"), 10)
	case c.IsSet("owner"):
		params.Profile = profile.UserContent()
		params.Fixed = c.String("owner")
	}

	components, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer components.Close()

	payload, err := components.Search.Search(ctx, params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(toOutput(payload))
}

func toOutput(p searchuc.Payload) queryOutput {
	out := queryOutput{
		Query:      p.Query,
		NoQuery:    p.NoQuery,
		Total:      p.Total,
		Page:       p.Page,
		HasNext:    p.HasNext,
		Tainted:    p.Tainted,
		Suggestion: p.Suggestion,
		Hits:       make([]queryHit, 0, len(p.Hits)),
		Errors:     p.Errors,
	}
	for _, h := range p.Hits {
		out.Hits = append(out.Hits, queryHit{ID: h.ID(), Score: h.Score(), Fields: h.Fields()})
	}
	if len(p.Facets) > 0 {
		out.Facets = make(map[dimension.Dimension]map[string]int, len(p.Facets))
		for d, values := range p.Facets {
			counts := make(map[string]int, len(values))
			for _, v := range values {
				counts[v.Value] = v.Count
			}
			out.Facets[d] = counts
		}
	}
	return out
}
