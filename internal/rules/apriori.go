package rules

import (
	"sort"

	"github.com/ozanguner/hybrid-recommender/internal/matrix"
)

// itemset is a frequent set of product ids together with the qualifying
// sessions that contain all of them. Items are kept sorted, tids are the
// sorted indexes of those sessions.
type itemset struct {
	items []string
	tids  []int
}

// mineFrequent enumerates every itemset whose support over the qualifying
// sessions is at least minSupport. Qualifying sessions are those with at
// least two distinct products; a rule needs co-occurrence to exist.
//
// Candidates are grown level-wise and counted by intersecting the session
// lists of their generators, so support is anti-monotone by construction:
// a level-k candidate can never exceed the support of the level-(k-1)
// itemsets it was joined from, and infrequent prefixes are never extended.
func mineFrequent(bin *matrix.Binary, minSupport float64) ([]itemset, int) {
	var qualifying []string
	for _, session := range bin.Sessions {
		if len(bin.Rows[session]) > 1 {
			qualifying = append(qualifying, session)
		}
	}
	total := len(qualifying)
	if total == 0 {
		return nil, 0
	}
	minCount := minSupport * float64(total)

	// Level 1: per-item session lists.
	tidsets := make(map[string][]int)
	for tid, session := range qualifying {
		for product := range bin.Rows[session] {
			tidsets[product] = append(tidsets[product], tid)
		}
	}

	var level []itemset
	for _, product := range bin.Products {
		tids := tidsets[product]
		if float64(len(tids)) >= minCount {
			sort.Ints(tids)
			level = append(level, itemset{items: []string{product}, tids: tids})
		}
	}
	sort.Slice(level, func(i, j int) bool { return level[i].items[0] < level[j].items[0] })

	frequent := append([]itemset(nil), level...)

	// Level k: join itemsets sharing their first k-1 items.
	for len(level) > 1 {
		var next []itemset
		for i := 0; i < len(level); i++ {
			for j := i + 1; j < len(level); j++ {
				a, b := level[i], level[j]
				if !samePrefix(a.items, b.items) {
					break
				}
				tids := intersect(a.tids, b.tids)
				if float64(len(tids)) < minCount {
					continue
				}
				items := make([]string, 0, len(a.items)+1)
				items = append(items, a.items...)
				items = append(items, b.items[len(b.items)-1])
				next = append(next, itemset{items: items, tids: tids})
			}
		}
		frequent = append(frequent, next...)
		level = next
	}

	return frequent, total
}

// samePrefix reports whether two equal-length sorted itemsets agree on all
// but their last item, the classic apriori join condition.
func samePrefix(a, b []string) bool {
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
