package similarity

import (
	"reflect"
	"testing"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
	"github.com/ozanguner/hybrid-recommender/internal/models"
)

func ev(session, product string) models.Event {
	return models.Event{SessionID: session, ProductID: product}
}

// S1={A,B}, S2={A,B,C,C}, S3={C}, with C purchased twice in S2 so
// frequency ordering is observable.
func userFixture() (*matrix.Binary, *matrix.Count) {
	events := []models.Event{
		ev("S1", "A"), ev("S1", "B"),
		ev("S2", "A"), ev("S2", "B"), ev("S2", "C"), ev("S2", "C"),
		ev("S3", "C"),
	}
	return matrix.BuildBinary(events), matrix.BuildCount(events)
}

func TestUserBasedRecommend(t *testing.T) {
	bin, counts := userFixture()
	engine := NewUserBased(bin, counts)

	t.Run("overlap tie picks the later session", func(t *testing.T) {
		// Cart {A} overlaps S1 and S2 equally; the scan runs in
		// descending session-id order, so S2 wins and contributes its
		// remaining products most-frequent first.
		got := engine.Recommend([]string{"A"}, 5)
		want := []string{"C", "B"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend([A]) = %v, want %v", got, want)
		}
	})

	t.Run("tie-break is stable across runs", func(t *testing.T) {
		first := engine.Recommend([]string{"A"}, 5)
		for i := 0; i < 10; i++ {
			if got := engine.Recommend([]string{"A"}, 5); !reflect.DeepEqual(got, first) {
				t.Fatalf("run %d returned %v, first run returned %v", i, got, first)
			}
		}
	})

	t.Run("cart products excluded", func(t *testing.T) {
		got := engine.Recommend([]string{"A", "B"}, 5)
		for _, p := range got {
			if p == "A" || p == "B" {
				t.Errorf("recommended cart product %q", p)
			}
		}
	})

	t.Run("duplicates in cart collapse", func(t *testing.T) {
		once := engine.Recommend([]string{"A"}, 5)
		twice := engine.Recommend([]string{"A", "A", "A"}, 5)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("duplicate cart entries changed the result: %v vs %v", once, twice)
		}
	})

	t.Run("rec count caps the list", func(t *testing.T) {
		if got := engine.Recommend([]string{"A"}, 1); len(got) != 1 {
			t.Errorf("got %d products, want 1", len(got))
		}
	})

	t.Run("no overlap contributes nothing", func(t *testing.T) {
		if got := engine.Recommend([]string{"Z"}, 5); got != nil {
			t.Errorf("unknown cart product produced %v", got)
		}
		if got := engine.Recommend(nil, 5); got != nil {
			t.Errorf("empty cart produced %v", got)
		}
	})

	t.Run("similar session fully in cart", func(t *testing.T) {
		// Cart {C} selects S3 (descending scan, score 1), whose only
		// product is already in the cart.
		if got := engine.Recommend([]string{"C"}, 5); len(got) != 0 {
			t.Errorf("got %v, want nothing", got)
		}
	})
}
