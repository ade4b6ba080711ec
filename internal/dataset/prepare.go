package dataset

import (
	"strings"
	"time"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// NoBrand marks a product whose brand is unknown in the source data.
const NoBrand = "None"

// HourRange maps an hour of day onto one of six fixed four-hour bands.
// Every hour in [0,23] maps to exactly one band; out-of-range hours
// return the empty string.
func HourRange(hour int) string {
	switch {
	case hour >= 0 && hour <= 3:
		return "0_3"
	case hour >= 4 && hour <= 7:
		return "4_7"
	case hour >= 8 && hour <= 11:
		return "8_11"
	case hour >= 12 && hour <= 15:
		return "12_15"
	case hour >= 16 && hour <= 19:
		return "16_19"
	case hour >= 20 && hour <= 23:
		return "20_23"
	default:
		return ""
	}
}

// WeekdayName returns the uppercase weekday name used in bucket labels.
func WeekdayName(t time.Time) string {
	return strings.ToUpper(t.Weekday().String())
}

// BucketLabel joins a weekday name and an hour band into a day-time bucket,
// e.g. "MONDAY_8_11".
func BucketLabel(weekday, hourRange string) string {
	return weekday + "_" + hourRange
}

// Prepare normalizes raw events and derives their time features. Rows
// missing a session, product, category, name or timestamp are dropped;
// a missing brand is filled with NoBrand rather than dropping the row,
// since brand is absent for a large share of the source data.
func Prepare(raw []models.Event) []models.Event {
	prepared := make([]models.Event, 0, len(raw))
	for _, e := range raw {
		e.SessionID = strings.TrimSpace(e.SessionID)
		e.ProductID = strings.TrimSpace(e.ProductID)
		if e.SessionID == "" || e.ProductID == "" || e.EventTime.IsZero() {
			continue
		}
		if e.Category == "" || e.Name == "" {
			continue
		}
		if e.Brand == "" {
			e.Brand = NoBrand
		}

		e.Hour = e.EventTime.Hour()
		e.Weekday = WeekdayName(e.EventTime)
		e.HourRange = HourRange(e.Hour)
		e.DayTime = BucketLabel(e.Weekday, e.HourRange)
		prepared = append(prepared, e)
	}
	return prepared
}
