// Package bootstrap is the composition root shared by the server and the
// indexer: it opens the index and the principal directory and wires the
// use case services over them.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/config"
	blevedb "github.com/kailas-cloud/djinnsearch/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/djinnsearch/internal/db/redis"
	domprincipal "github.com/kailas-cloud/djinnsearch/internal/domain/principal"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
	documentrepo "github.com/kailas-cloud/djinnsearch/internal/repository/document"
	principalrepo "github.com/kailas-cloud/djinnsearch/internal/repository/principal"
	searchrepo "github.com/kailas-cloud/djinnsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/djinnsearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/djinnsearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/djinnsearch/internal/usecase/search"
)

// Directory resolves principals and reports its own health.
type Directory interface {
	Lookup(ctx context.Context, username string) (domprincipal.Principal, error)
	Ping(ctx context.Context) error
}

// Components holds the wired services.
type Components struct {
	Engine    *blevedb.Engine
	Documents *documentrepo.Repo
	Directory Directory
	Search    *searchuc.Service
	Indexing  *indexinguc.Service
	Health    *healthuc.Service

	closers []func()
}

// Build opens the index and directory described by cfg and wires the services.
// The caller must Close the result.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{}

	engine, err := OpenEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	c.Engine = engine
	c.closers = append(c.closers, func() {
		if err := engine.Close(); err != nil {
			logger.Error("Failed to close index", zap.Error(err))
		}
	})
	logger.Info("Opened index",
		zap.String("path", cfg.Engine.IndexPath),
		zap.Bool("in_memory", cfg.Engine.IndexPath == ""),
	)

	dir, closeDir, err := OpenDirectory(ctx, cfg.Directory)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Directory = dir
	if closeDir != nil {
		c.closers = append(c.closers, closeDir)
	}
	logger.Info("Connected to principal directory", zap.String("driver", cfg.Directory.Driver))

	builder, err := NewBuilder(cfg.Engine)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Documents = documentrepo.New(engine)
	repo := searchrepo.New(engine, documentrepo.StoredFields(), cfg.Engine.FacetLimit)
	c.Search = searchuc.New(
		searchuc.NewInstrumentedEngine(repo, logger),
		dir,
		builder,
		query.Rules{
			ContentTypes: cfg.Search.ContentTypes,
			MaxLength:    cfg.Search.MaxQueryLength,
			MaxValues:    cfg.Search.MaxFilterValues,
		},
	)
	c.Indexing = indexinguc.New(c.Documents).WithBatchSize(cfg.Engine.IndexBatchSize)
	c.Health = healthuc.New(engine, dir)

	return c, nil
}

// Close releases everything Build opened, in reverse order.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// OpenEngine opens the content index.
func OpenEngine(cfg config.EngineConfig) (*blevedb.Engine, error) {
	engine, err := blevedb.Open(blevedb.Config{
		Path:            cfg.IndexPath,
		CreateIfMissing: cfg.CreateIfMissing,
		MaxEdits:        cfg.MaxEdits,
	}, documentrepo.Schema())
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return engine, nil
}

// OpenDirectory creates the principal directory for the configured driver.
// The returned close func is nil when there is nothing to release.
func OpenDirectory(ctx context.Context, cfg config.DirectoryConfig) (Directory, func(), error) {
	switch cfg.Driver {
	case "static":
		users := make(map[string]principalrepo.StaticUser, len(cfg.Users))
		for name, u := range cfg.Users {
			users[name] = principalrepo.StaticUser{Groups: u.Groups, Superuser: u.Superuser}
		}
		return principalrepo.NewStaticDirectory(users), nil, nil
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			CacheTTL: time.Duration(cfg.CacheTTLSec) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		return principalrepo.NewRedisDirectory(store, cfg.KeyPrefix), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown directory driver %q", cfg.Driver)
	}
}

// NewBuilder creates the query builder from engine settings.
func NewBuilder(cfg config.EngineConfig) (*searchuc.Builder, error) {
	op, err := predicate.ParseOperator(cfg.DefaultOperator)
	if err != nil {
		return nil, fmt.Errorf("engine.default_operator: %w", err)
	}
	perPage := cfg.ResultsPerPage
	if cfg.MaxResultsPerPage > 0 && perPage > cfg.MaxResultsPerPage {
		perPage = cfg.MaxResultsPerPage
	}
	return searchuc.NewBuilder(searchuc.BuilderConfig{
		DefaultOperator: op,
		Spelling:        cfg.IncludeSpelling,
		PerPage:         perPage,
	}), nil
}
