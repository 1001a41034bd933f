// Package app assembles the storage backend, catalog, metrics and logger
// that every command needs.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/config"
	"github.com/gilead/flashcards/internal/metrics"
	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/store"
	"github.com/gilead/flashcards/pkg/logger"
)

// ErrNoHistory is returned when the backend keeps no rating history.
var ErrNoHistory = errors.New("rating history requires the sqlite backend")

// Options holds everything Open needs beyond the config.
type Options struct {
	Config *config.Config

	// DBPath is the resolved SQLite path. Ignored by other backends.
	DBPath string

	// Clock overrides the wall clock. Nil uses time.Now.
	Clock spacedrep.Clock

	Log logger.Logger
}

// App holds the opened dependencies of one process.
type App struct {
	Config  *config.Config
	KV      store.KV
	Events  store.EventRepo
	Metrics *metrics.Recorder
	Log     logger.Logger

	clock   spacedrep.Clock
	catalog *catalog.Catalog
}

// Open connects to the configured backend.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	log := opts.Log
	if log == nil {
		log = logger.Get()
	}

	a := &App{
		Config:  cfg,
		Metrics: metrics.New(),
		Log:     log,
		clock:   opts.Clock,
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := store.Open(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.KV = st
		a.Events = st.EventRepo()
	case config.BackendNATS:
		kv, err := store.DialNATS(ctx, cfg.NATSURL, cfg.NATSBucket)
		if err != nil {
			return nil, err
		}
		a.KV = kv
	case config.BackendMemory:
		a.KV = store.NewMemoryKV()
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
	}

	log.Debug(ctx, "backend opened",
		logger.String("backend", cfg.Backend),
		logger.String("db_path", opts.DBPath))
	return a, nil
}

// Catalog loads the card catalog on first use.
func (a *App) Catalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	c, err := catalog.Load(a.Config.CatalogPath)
	if err != nil {
		return nil, err
	}
	a.catalog = c
	return c, nil
}

// NewSession starts a review session over the opened backend.
func (a *App) NewSession(ctx context.Context) *review.Session {
	opts := []review.Option{
		review.WithLogger(a.Log),
		review.WithMetrics(a.Metrics),
		review.WithClock(a.clock),
	}
	if a.Events != nil {
		opts = append(opts, review.WithEventRepo(a.Events))
	}
	return review.NewSession(ctx, a.KV, opts...)
}

// History returns the most recent rating events, newest first.
func (a *App) History(ctx context.Context, limit int) ([]store.RatingEventRecord, error) {
	if a.Events == nil {
		return nil, ErrNoHistory
	}
	return a.Events.QueryRatingEvents(ctx, store.QueryOpts{Limit: limit})
}

// Close releases the backend.
func (a *App) Close() error {
	if a.KV == nil {
		return nil
	}
	return a.KV.Close()
}
