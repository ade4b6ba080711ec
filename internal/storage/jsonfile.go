package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// JSONEventSource reads the raw events.json and meta.json files the
// dataset ships as, left-merging product metadata onto events by product
// id. Events without a matching meta record keep empty attributes and are
// dropped later during preparation.
type JSONEventSource struct {
	eventsPath string
	metaPath   string
}

func NewJSONEventSource(eventsPath, metaPath string) *JSONEventSource {
	return &JSONEventSource{eventsPath: eventsPath, metaPath: metaPath}
}

type rawEvent struct {
	SessionID string `json:"sessionid"`
	ProductID string `json:"productid"`
	EventTime string `json:"eventtime"`
}

type rawMeta struct {
	ProductID string `json:"productid"`
	Brand     string `json:"brand"`
	Category  string `json:"category"`
	Name      string `json:"name"`
}

func (s *JSONEventSource) LoadEvents(ctx context.Context) ([]models.Event, error) {
	var eventsFile struct {
		Events []rawEvent `json:"events"`
	}
	if err := readJSON(s.eventsPath, &eventsFile); err != nil {
		return nil, fmt.Errorf("error reading events file: %w", err)
	}

	var metaFile struct {
		Meta []rawMeta `json:"meta"`
	}
	if err := readJSON(s.metaPath, &metaFile); err != nil {
		return nil, fmt.Errorf("error reading meta file: %w", err)
	}

	meta := make(map[string]rawMeta, len(metaFile.Meta))
	for _, m := range metaFile.Meta {
		if _, ok := meta[m.ProductID]; !ok {
			meta[m.ProductID] = m
		}
	}

	events := make([]models.Event, 0, len(eventsFile.Events))
	for _, raw := range eventsFile.Events {
		t, err := parseEventTime(raw.EventTime)
		if err != nil {
			continue
		}
		e := models.Event{
			SessionID: raw.SessionID,
			ProductID: raw.ProductID,
			EventTime: t,
		}
		if m, ok := meta[raw.ProductID]; ok {
			e.Brand = m.Brand
			e.Category = m.Category
			e.Name = m.Name
		}
		events = append(events, e)
	}

	return events, nil
}

func (s *JSONEventSource) Close() error {
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseEventTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range eventTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
