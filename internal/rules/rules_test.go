package rules

import (
	"reflect"
	"testing"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
	"github.com/ozanguner/hybrid-recommender/internal/models"
)

func ev(session, product string) models.Event {
	return models.Event{SessionID: session, ProductID: product}
}

// S1={A,B}, S2={A,B,C}, S3={C}. S3 has a single product and must not
// qualify for mining.
func scenarioMatrix() *matrix.Binary {
	return matrix.BuildBinary([]models.Event{
		ev("S1", "A"), ev("S1", "B"),
		ev("S2", "A"), ev("S2", "B"), ev("S2", "C"),
		ev("S3", "C"),
	})
}

func findRule(rules []models.AssociationRule, antecedent, consequent []string) (models.AssociationRule, bool) {
	for _, r := range rules {
		if reflect.DeepEqual(r.Antecedent, antecedent) && reflect.DeepEqual(r.Consequent, consequent) {
			return r, true
		}
	}
	return models.AssociationRule{}, false
}

func TestMine(t *testing.T) {
	mined := Mine(scenarioMatrix(), Config{MinSupport: 0.5, Metric: MetricSupport, MinThreshold: 0.5})

	t.Run("surfaces the co-purchase rule", func(t *testing.T) {
		r, ok := findRule(mined, []string{"A"}, []string{"B"})
		if !ok {
			t.Fatalf("rule {A}->{B} not mined; got %v", mined)
		}
		// Both qualifying sessions (S1, S2) contain A and B.
		if r.Support != 1.0 {
			t.Errorf("support = %v, want 1.0", r.Support)
		}
		if r.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", r.Confidence)
		}
		if r.Lift != 1.0 {
			t.Errorf("lift = %v, want 1.0", r.Lift)
		}

		if _, ok := findRule(mined, []string{"B"}, []string{"A"}); !ok {
			t.Error("mirror rule {B}->{A} not mined")
		}
	})

	t.Run("single-product sessions excluded", func(t *testing.T) {
		// C appears only in S2 among qualifying sessions, so every rule
		// involving C has support 0.5, never 2/3.
		for _, r := range mined {
			for _, id := range append(append([]string(nil), r.Antecedent...), r.Consequent...) {
				if id == "C" && r.Support != 0.5 {
					t.Errorf("rule %v/%v has support %v, want 0.5", r.Antecedent, r.Consequent, r.Support)
				}
			}
		}
	})

	t.Run("sorted descending by metric", func(t *testing.T) {
		for i := 1; i < len(mined); i++ {
			if mined[i].Support > mined[i-1].Support {
				t.Fatalf("rules not sorted: %v before %v", mined[i-1].Support, mined[i].Support)
			}
		}
	})

	t.Run("threshold filters", func(t *testing.T) {
		strict := Mine(scenarioMatrix(), Config{MinSupport: 0.5, Metric: MetricSupport, MinThreshold: 0.9})
		for _, r := range strict {
			if r.Support < 0.9 {
				t.Errorf("rule %v/%v below threshold: %v", r.Antecedent, r.Consequent, r.Support)
			}
		}
		if _, ok := findRule(strict, []string{"A"}, []string{"B"}); !ok {
			t.Error("rule {A}->{B} should survive the 0.9 threshold")
		}
	})

	t.Run("empty matrix", func(t *testing.T) {
		if got := Mine(matrix.BuildBinary(nil), DefaultConfig()); len(got) != 0 {
			t.Errorf("mined %d rules from nothing", len(got))
		}
	})
}

func TestRecommendByRules(t *testing.T) {
	mined := Mine(scenarioMatrix(), Config{MinSupport: 0.5, Metric: MetricSupport, MinThreshold: 0.5})

	t.Run("recommends consequents", func(t *testing.T) {
		got := RecommendByRules(mined, "A", 5)
		if len(got) == 0 {
			t.Fatal("no recommendations for A")
		}
		seen := make(map[string]bool)
		for _, p := range got {
			if p == "A" {
				t.Error("recommended the queried product itself")
			}
			if seen[p] {
				t.Errorf("duplicate recommendation %q", p)
			}
			seen[p] = true
			// Every recommendation must lead some consequent of a rule
			// whose antecedent contains A.
			found := false
			for _, r := range mined {
				if r.HasAntecedent("A") && r.Consequent[0] == p {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%q is not a consequent head of any matching rule", p)
			}
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		if got := RecommendByRules(mined, "A", 1); len(got) > 1 {
			t.Errorf("got %d recommendations, limit was 1", len(got))
		}
	})

	t.Run("no matching rule is not an error", func(t *testing.T) {
		if got := RecommendByRules(mined, "unknown", 5); len(got) != 0 {
			t.Errorf("got %v for a product with no rules", got)
		}
		if got := RecommendByRules(nil, "A", 5); len(got) != 0 {
			t.Errorf("got %v from an empty rule set", got)
		}
	})
}
