package storage

import (
	"context"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// MemoryEventSource serves a fixed event slice, mainly for tests.
type MemoryEventSource struct {
	events []models.Event
}

func NewMemoryEventSource(events []models.Event) *MemoryEventSource {
	return &MemoryEventSource{events: events}
}

func (s *MemoryEventSource) LoadEvents(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *MemoryEventSource) Close() error {
	return nil
}
