package models

import "time"

// Event is one interaction (view or purchase) between a session and a product.
// Multiplicity matters: a session that bought a product twice has two events.
type Event struct {
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	EventTime time.Time `json:"event_time"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	Name      string    `json:"name"`

	// Derived time features, filled in by dataset preparation.
	Hour      int    `json:"hour"`
	Weekday   string `json:"weekday"`
	HourRange string `json:"hour_range"`
	DayTime   string `json:"day_time"`
}

// Product holds the catalog attributes of a single product.
type Product struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Name     string `json:"name"`
}
