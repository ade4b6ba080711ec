// Package similarity implements the two collaborative-filtering strategies:
// user-based session overlap and item-based purchase-count correlation.
package similarity

import (
	"sort"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
)

// UserBased finds the historical session whose product set most overlaps
// the current cart and recommends that session's other purchases.
type UserBased struct {
	binary *matrix.Binary
	counts *matrix.Count
}

// NewUserBased builds the engine over the two interaction matrices. The
// binary matrix drives session selection, the count matrix orders the
// selected session's products by purchase frequency.
func NewUserBased(binary *matrix.Binary, counts *matrix.Count) *UserBased {
	return &UserBased{binary: binary, counts: counts}
}

// Recommend scores every historical session by how many distinct cart
// products it contains and surfaces the winner's other products,
// most-frequent first, capped at recCount.
//
// Sessions are scanned in descending session-id order and the first
// maximum wins, so repeated calls with the same cart pick the same
// session. A cart with no usable overlap (no cart product is a known
// column, or no session shares a product) contributes nothing rather than
// an arbitrary session.
func (u *UserBased) Recommend(cart []string, recCount int) []string {
	inCart := make(map[string]bool)
	var usable []string
	for _, p := range cart {
		if inCart[p] {
			continue
		}
		inCart[p] = true
		if u.binary.HasProduct(p) {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	bestSession := ""
	bestScore := 0
	for i := len(u.binary.Sessions) - 1; i >= 0; i-- {
		session := u.binary.Sessions[i]
		row := u.binary.Rows[session]
		score := 0
		for _, p := range usable {
			if row[p] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestSession = session
		}
	}
	if bestScore == 0 {
		return nil
	}

	type freq struct {
		product string
		count   int
	}
	var products []freq
	for product, count := range u.counts.Rows[bestSession] {
		if inCart[product] {
			continue
		}
		products = append(products, freq{product: product, count: count})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].count != products[j].count {
			return products[i].count > products[j].count
		}
		return products[i].product < products[j].product
	})

	out := make([]string, 0, recCount)
	for i, f := range products {
		if i >= recCount {
			break
		}
		out = append(out, f.product)
	}
	return out
}
