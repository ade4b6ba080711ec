package dataset

import (
	"sort"
	"strings"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// Catalog is the distinct product set of the prepared event table, used to
// validate incoming product ids and to render display labels.
type Catalog struct {
	products map[string]models.Product
	ids      []string
}

// BuildCatalog collects the distinct products of the prepared events. The
// first event seen for a product supplies its attributes.
func BuildCatalog(events []models.Event) *Catalog {
	c := &Catalog{products: make(map[string]models.Product)}
	for _, e := range events {
		if _, ok := c.products[e.ProductID]; ok {
			continue
		}
		c.products[e.ProductID] = models.Product{
			ID:       e.ProductID,
			Brand:    e.Brand,
			Category: e.Category,
			Name:     e.Name,
		}
		c.ids = append(c.ids, e.ProductID)
	}
	sort.Strings(c.ids)
	return c
}

// Has reports whether the product id exists in the historical catalog.
func (c *Catalog) Has(productID string) bool {
	_, ok := c.products[productID]
	return ok
}

// Len returns the number of distinct products.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Product returns the catalog entry for a product id.
func (c *Catalog) Product(productID string) (models.Product, bool) {
	p, ok := c.products[productID]
	return p, ok
}

// Label renders the human-readable product label: "brand, category, name, id",
// falling back to "category, name, id" when the brand is unknown. Unknown
// product ids are returned as-is.
func (c *Catalog) Label(productID string) string {
	p, ok := c.products[productID]
	if !ok {
		return productID
	}
	if p.Brand == NoBrand {
		return strings.Join([]string{p.Category, p.Name, p.ID}, ", ")
	}
	return strings.Join([]string{p.Brand, p.Category, p.Name, p.ID}, ", ")
}
