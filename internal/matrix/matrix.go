// Package matrix builds the session-product interaction matrices the
// collaborative strategies work on. Both matrices are sparse: a missing
// entry means the session never interacted with the product, which is
// distinct from an explicit zero when computing correlations.
package matrix

import (
	"sort"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// Binary is the presence matrix: session -> set of products it interacted
// with at least once.
type Binary struct {
	Rows     map[string]map[string]bool
	Sessions []string
	Products []string
}

// Count is the frequency matrix: session -> product -> number of
// interactions. Pairs that never interacted are absent, never stored as 0.
type Count struct {
	Rows     map[string]map[string]int
	Sessions []string
	Products []string
}

// BuildBinary derives the presence matrix from the prepared events.
// Rebuilding from the same events yields an identical matrix.
func BuildBinary(events []models.Event) *Binary {
	rows := make(map[string]map[string]bool)
	products := make(map[string]bool)
	for _, e := range events {
		row, ok := rows[e.SessionID]
		if !ok {
			row = make(map[string]bool)
			rows[e.SessionID] = row
		}
		row[e.ProductID] = true
		products[e.ProductID] = true
	}
	return &Binary{
		Rows:     rows,
		Sessions: sortedKeys(rows),
		Products: sortedSet(products),
	}
}

// BuildCount derives the frequency matrix from the prepared events.
func BuildCount(events []models.Event) *Count {
	rows := make(map[string]map[string]int)
	products := make(map[string]bool)
	for _, e := range events {
		row, ok := rows[e.SessionID]
		if !ok {
			row = make(map[string]int)
			rows[e.SessionID] = row
		}
		row[e.ProductID]++
		products[e.ProductID] = true
	}
	return &Count{
		Rows:     rows,
		Sessions: sortedCountKeys(rows),
		Products: sortedSet(products),
	}
}

// Column returns the product's counts across sessions; only sessions with a
// recorded interaction appear.
func (c *Count) Column(productID string) map[string]int {
	col := make(map[string]int)
	for session, row := range c.Rows {
		if n, ok := row[productID]; ok {
			col[session] = n
		}
	}
	return col
}

// HasProduct reports whether the product appears as a column.
func (c *Count) HasProduct(productID string) bool {
	i := sort.SearchStrings(c.Products, productID)
	return i < len(c.Products) && c.Products[i] == productID
}

// HasProduct reports whether any session ever interacted with the product.
func (b *Binary) HasProduct(productID string) bool {
	i := sort.SearchStrings(b.Products, productID)
	return i < len(b.Products) && b.Products[i] == productID
}

func sortedKeys(m map[string]map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCountKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
