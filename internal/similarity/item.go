package similarity

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
)

// maxItemCandidates caps how many correlated products are considered
// before sampling.
const maxItemCandidates = 5

// ItemBased recommends products whose purchase-count pattern across
// sessions correlates with the target product's pattern.
type ItemBased struct {
	counts    *matrix.Count
	columns   map[string]map[string]int
	threshold float64
	rng       *rand.Rand
}

// NewItemBased precomputes the per-product count columns once; the count
// matrix is read-mostly state shared by every recommendation call. The
// random source drives candidate sampling and is injected so tests can
// fix the seed.
func NewItemBased(counts *matrix.Count, threshold float64, rng *rand.Rand) *ItemBased {
	columns := make(map[string]map[string]int, len(counts.Products))
	for _, product := range counts.Products {
		columns[product] = counts.Column(product)
	}
	return &ItemBased{counts: counts, columns: columns, threshold: threshold, rng: rng}
}

// Recommend correlates every other product with the target, keeps those
// above the threshold, and samples up to recCount of the top candidates
// without replacement. Fewer passing candidates than requested degrades
// to a shorter list instead of failing.
func (e *ItemBased) Recommend(productID string, recCount int) []string {
	target, ok := e.columns[productID]
	if !ok {
		return nil
	}

	type candidate struct {
		product string
		corr    float64
	}
	var candidates []candidate
	for _, product := range e.counts.Products {
		if product == productID {
			continue
		}
		corr := pearson(target, e.columns[product])
		if math.IsNaN(corr) || corr <= e.threshold {
			continue
		}
		candidates = append(candidates, candidate{product: product, corr: corr})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].corr != candidates[j].corr {
			return candidates[i].corr > candidates[j].corr
		}
		return candidates[i].product < candidates[j].product
	})
	if len(candidates) > maxItemCandidates {
		candidates = candidates[:maxItemCandidates]
	}

	n := recCount
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, 0, n)
	for _, idx := range e.rng.Perm(len(candidates))[:n] {
		out = append(out, candidates[idx].product)
	}
	return out
}

// pearson computes the correlation of two sparse count columns over the
// sessions where both products have recorded entries. Absent entries are
// not imputed as zero; fewer than two shared sessions or a zero-variance
// overlap yields NaN.
func pearson(a, b map[string]int) float64 {
	var n int
	var sumA, sumB, sumAA, sumBB, sumAB float64
	for session, va := range a {
		vb, ok := b[session]
		if !ok {
			continue
		}
		x, y := float64(va), float64(vb)
		n++
		sumA += x
		sumB += y
		sumAA += x * x
		sumBB += y * y
		sumAB += x * y
	}
	if n < 2 {
		return math.NaN()
	}
	fn := float64(n)
	cov := sumAB - sumA*sumB/fn
	varA := sumAA - sumA*sumA/fn
	varB := sumBB - sumB*sumB/fn
	if varA <= 0 || varB <= 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varA*varB)
}
