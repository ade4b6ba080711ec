package recommender

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ozanguner/hybrid-recommender/internal/dataset"
	"github.com/ozanguner/hybrid-recommender/internal/matrix"
	"github.com/ozanguner/hybrid-recommender/internal/models"
	"github.com/ozanguner/hybrid-recommender/internal/rules"
	"github.com/ozanguner/hybrid-recommender/internal/storage"
)

// Context holds the derived artifacts every recommendation call reads:
// prepared events, catalog, the two interaction matrices and the ranked
// rule set. It is built once at startup and treated as immutable after.
type Context struct {
	Events  []models.Event
	Catalog *dataset.Catalog
	Binary  *matrix.Binary
	Counts  *matrix.Count
	Rules   []models.AssociationRule
}

// BuildOptions controls the load-or-recompute behavior of BuildContext.
type BuildOptions struct {
	// Upgrade forces every artifact to be recomputed from the event
	// source and written back to the cache. When false, cached artifacts
	// are loaded and only missing ones are built.
	Upgrade bool
	Rules   rules.Config
}

// BuildContext assembles the recommendation context, loading each derived
// artifact from the cache when present and rebuilding it from the event
// source otherwise. Mining is the expensive step, which is why the rule
// set is cached alongside the matrices.
func BuildContext(ctx context.Context, source storage.EventSource, cache storage.ArtifactCache, opts BuildOptions, logger *zap.Logger) (*Context, error) {
	var events []models.Event
	err := loadOrBuild(cache, storage.ArtifactPreparedEvents, opts.Upgrade, &events, func() error {
		raw, err := source.LoadEvents(ctx)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		events = dataset.Prepare(raw)
		logger.Info("Prepared events",
			zap.Int("raw", len(raw)),
			zap.Int("prepared", len(events)))
		return nil
	}, logger)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.New("prepared event table is empty")
	}

	var binary *matrix.Binary
	err = loadOrBuild(cache, storage.ArtifactBinaryMatrix, opts.Upgrade, &binary, func() error {
		binary = matrix.BuildBinary(events)
		logger.Info("Built binary interaction matrix",
			zap.Int("sessions", len(binary.Sessions)),
			zap.Int("products", len(binary.Products)))
		return nil
	}, logger)
	if err != nil {
		return nil, err
	}

	var counts *matrix.Count
	err = loadOrBuild(cache, storage.ArtifactCountMatrix, opts.Upgrade, &counts, func() error {
		counts = matrix.BuildCount(events)
		logger.Info("Built count interaction matrix",
			zap.Int("sessions", len(counts.Sessions)),
			zap.Int("products", len(counts.Products)))
		return nil
	}, logger)
	if err != nil {
		return nil, err
	}

	var ruleSet []models.AssociationRule
	err = loadOrBuild(cache, storage.ArtifactRules, opts.Upgrade, &ruleSet, func() error {
		ruleSet = rules.Mine(binary, opts.Rules)
		logger.Info("Mined association rules", zap.Int("rules", len(ruleSet)))
		return nil
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Context{
		Events:  events,
		Catalog: dataset.BuildCatalog(events),
		Binary:  binary,
		Counts:  counts,
		Rules:   ruleSet,
	}, nil
}

// loadOrBuild loads the named artifact into v unless upgrade is set or the
// cache misses, in which case build runs and the result is stored.
func loadOrBuild(cache storage.ArtifactCache, name string, upgrade bool, v any, build func() error, logger *zap.Logger) error {
	if !upgrade {
		err := cache.Load(name, v)
		if err == nil {
			logger.Info("Loaded artifact from cache", zap.String("artifact", name))
			return nil
		}
		if !errors.Is(err, storage.ErrCacheMiss) {
			return fmt.Errorf("failed to load artifact %q: %w", name, err)
		}
	}

	if err := build(); err != nil {
		return err
	}
	if err := cache.Store(name, v); err != nil {
		return fmt.Errorf("failed to store artifact %q: %w", name, err)
	}
	return nil
}
