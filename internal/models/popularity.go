package models

// PopularityRecord is one row of the aggregated sales table: how many times
// a product was interacted with in a given day-time bucket and category.
type PopularityRecord struct {
	DayTime   string `json:"day_time"`
	Category  string `json:"category"`
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}
