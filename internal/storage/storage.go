package storage

import (
	"context"
	"errors"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// ErrCacheMiss means an artifact was requested in load mode but was never
// built; the caller must run the build/refresh path first.
var ErrCacheMiss = errors.New("artifact not found in cache")

// Names of the derived artifacts the engine caches between runs.
const (
	ArtifactPreparedEvents = "prepared_events"
	ArtifactBinaryMatrix   = "binary_matrix"
	ArtifactCountMatrix    = "count_matrix"
	ArtifactRules          = "rules"
)

// EventSource supplies the raw event table the engine derives everything
// from.
type EventSource interface {
	LoadEvents(ctx context.Context) ([]models.Event, error)
	Close() error
}

// ArtifactCache persists derived artifacts between runs, keyed by name.
// Artifacts are disposable caches, not a system of record.
type ArtifactCache interface {
	// Load decodes the named artifact into v, which must be a pointer to
	// the type that was stored. Returns ErrCacheMiss if never built.
	Load(name string, v any) error
	// Store encodes v and overwrites the named artifact.
	Store(name string, v any) error
}
