// Package rules mines association rules from the binary interaction matrix
// and answers rule-based recommendation queries against the ranked result.
package rules

import (
	"sort"
	"strings"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// Metric selects which rule statistic is used for filtering and ranking.
type Metric string

const (
	MetricSupport    Metric = "support"
	MetricConfidence Metric = "confidence"
	MetricLift       Metric = "lift"
)

// Config carries the mining thresholds.
type Config struct {
	MinSupport   float64
	Metric       Metric
	MinThreshold float64
}

// DefaultConfig returns the tuning the engine ships with.
func DefaultConfig() Config {
	return Config{
		MinSupport:   0.002,
		Metric:       MetricSupport,
		MinThreshold: 0.002,
	}
}

// Mine runs frequent-itemset mining over the binary matrix and generates
// every antecedent/consequent split whose chosen metric clears the
// threshold. The result is sorted descending by that metric; ties are
// broken by the rule's product ids so the ordering is reproducible.
func Mine(bin *matrix.Binary, cfg Config) []models.AssociationRule {
	if cfg.Metric == "" {
		cfg.Metric = MetricSupport
	}
	frequent, total := mineFrequent(bin, cfg.MinSupport)
	if total == 0 {
		return nil
	}

	support := make(map[string]float64, len(frequent))
	for _, fs := range frequent {
		support[key(fs.items)] = float64(len(fs.tids)) / float64(total)
	}

	var out []models.AssociationRule
	for _, fs := range frequent {
		if len(fs.items) < 2 {
			continue
		}
		full := support[key(fs.items)]
		// Every non-empty proper subset is a candidate antecedent.
		for mask := 1; mask < (1<<len(fs.items))-1; mask++ {
			var antecedent, consequent []string
			for i, item := range fs.items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}
			confidence := full / support[key(antecedent)]
			lift := confidence / support[key(consequent)]
			rule := models.AssociationRule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    full,
				Confidence: confidence,
				Lift:       lift,
			}
			if metricValue(rule, cfg.Metric) >= cfg.MinThreshold {
				out = append(out, rule)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		vi, vj := metricValue(out[i], cfg.Metric), metricValue(out[j], cfg.Metric)
		if vi != vj {
			return vi > vj
		}
		ki, kj := key(out[i].Antecedent), key(out[j].Antecedent)
		if ki != kj {
			return ki < kj
		}
		return key(out[i].Consequent) < key(out[j].Consequent)
	})
	return out
}

// RecommendByRules scans the pre-sorted rules for antecedents containing
// productID and collects the leading consequent product of the first 20
// matches, deduplicated, capped at limit. No matching rule is a normal
// outcome and yields an empty list.
func RecommendByRules(sorted []models.AssociationRule, productID string, limit int) []string {
	matched := 0
	seen := make(map[string]bool)
	var out []string
	for _, rule := range sorted {
		if matched >= 20 || len(out) >= limit {
			break
		}
		if !rule.HasAntecedent(productID) {
			continue
		}
		matched++
		product := rule.Consequent[0]
		if seen[product] {
			continue
		}
		seen[product] = true
		out = append(out, product)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func metricValue(r models.AssociationRule, m Metric) float64 {
	switch m {
	case MetricConfidence:
		return r.Confidence
	case MetricLift:
		return r.Lift
	default:
		return r.Support
	}
}

func key(items []string) string {
	return strings.Join(items, "\x1f")
}
