package storage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
	"github.com/ozanguner/hybrid-recommender/internal/models"
)

func TestGobCache(t *testing.T) {
	t.Run("load before build misses", func(t *testing.T) {
		cache := NewGobCache(t.TempDir())
		var events []models.Event
		if err := cache.Load(ArtifactPreparedEvents, &events); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("roundtrips a rule set", func(t *testing.T) {
		cache := NewGobCache(t.TempDir())
		in := []models.AssociationRule{{
			Antecedent: []string{"A"},
			Consequent: []string{"B"},
			Support:    1,
			Confidence: 1,
			Lift:       1,
		}}
		if err := cache.Store(ArtifactRules, &in); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
		var out []models.AssociationRule
		if err := cache.Load(ArtifactRules, &out); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("loaded %v, stored %v", out, in)
		}
	})

	t.Run("roundtrips a matrix", func(t *testing.T) {
		cache := NewGobCache(t.TempDir())
		in := matrix.BuildCount([]models.Event{
			{SessionID: "s1", ProductID: "p1"},
			{SessionID: "s1", ProductID: "p1"},
			{SessionID: "s2", ProductID: "p2"},
		})
		if err := cache.Store(ArtifactCountMatrix, &in); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
		var out *matrix.Count
		if err := cache.Load(ArtifactCountMatrix, &out); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("loaded %v, stored %v", out, in)
		}
	})

	t.Run("store overwrites", func(t *testing.T) {
		cache := NewGobCache(t.TempDir())
		first := []models.Event{{SessionID: "s1", ProductID: "p1"}}
		second := []models.Event{{SessionID: "s2", ProductID: "p2"}}
		if err := cache.Store(ArtifactPreparedEvents, &first); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
		if err := cache.Store(ArtifactPreparedEvents, &second); err != nil {
			t.Fatalf("Store() error: %v", err)
		}
		var out []models.Event
		if err := cache.Load(ArtifactPreparedEvents, &out); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if !reflect.DeepEqual(out, second) {
			t.Errorf("loaded %v, want %v", out, second)
		}
	})
}
