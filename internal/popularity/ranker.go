// Package popularity recommends bestsellers conditioned on the day-time
// bucket the shopper is in right now.
package popularity

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ozanguner/hybrid-recommender/internal/dataset"
	"github.com/ozanguner/hybrid-recommender/internal/models"
)

// ErrDataCompleteness means the current wall-clock hour has no historical
// observations, so no day-time bucket can be resolved for it.
var ErrDataCompleteness = errors.New("no historical data for current hour")

// Ranker holds the aggregated (bucket, category, product) sales table.
type Ranker struct {
	records    []models.PopularityRecord
	hourRanges map[int]string
	now        func() time.Time
}

// NewRanker aggregates the prepared events into the popularity table.
// The clock is injected so callers and tests control what "now" means;
// a nil clock defaults to time.Now.
func NewRanker(events []models.Event, now func() time.Time) *Ranker {
	if now == nil {
		now = time.Now
	}

	type group struct {
		dayTime, category, product string
	}
	counts := make(map[group]int)
	hourRanges := make(map[int]string)
	for _, e := range events {
		counts[group{e.DayTime, e.Category, e.ProductID}]++
		hourRanges[e.Hour] = e.HourRange
	}

	records := make([]models.PopularityRecord, 0, len(counts))
	for g, n := range counts {
		records = append(records, models.PopularityRecord{
			DayTime:   g.dayTime,
			Category:  g.category,
			ProductID: g.product,
			Count:     n,
		})
	}
	// Within a bucket and category the best seller comes first.
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.DayTime != b.DayTime {
			return a.DayTime < b.DayTime
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ProductID < b.ProductID
	})

	return &Ranker{records: records, hourRanges: hourRanges, now: now}
}

// Records exposes the aggregated table in its sorted order.
func (r *Ranker) Records() []models.PopularityRecord {
	return r.records
}

// CurrentBucket resolves the active day-time bucket from the wall clock
// and the hour bands observed in the historical data.
func (r *Ranker) CurrentBucket() (string, error) {
	t := r.now()
	band, ok := r.hourRanges[t.Hour()]
	if !ok {
		return "", fmt.Errorf("hour %d: %w", t.Hour(), ErrDataCompleteness)
	}
	return dataset.BucketLabel(dataset.WeekdayName(t), band), nil
}

// Bestsellers recommends up to diffCatCount top products from other
// categories and up to sameCatCount further products from the purchased
// product's own category, all within the active bucket. The
// different-category block comes first; the aggregator downstream dedups
// and shuffles, so the order only matters for truncation.
func (r *Ranker) Bestsellers(productID string, diffCatCount, sameCatCount int) ([]string, error) {
	bucket, err := r.CurrentBucket()
	if err != nil {
		return nil, err
	}

	category, err := r.productCategory(productID)
	if err != nil {
		return nil, err
	}

	type top struct {
		product string
		count   int
	}
	var diff []top
	seenCategory := make(map[string]bool)
	var same []string
	seenSame := make(map[string]bool)

	for _, rec := range r.records {
		if rec.DayTime != bucket {
			continue
		}
		if rec.Category == category {
			if rec.ProductID == productID || seenSame[rec.ProductID] {
				continue
			}
			seenSame[rec.ProductID] = true
			same = append(same, rec.ProductID)
			continue
		}
		// Records are count-sorted within each category, so the first row
		// of a category is its bestseller.
		if seenCategory[rec.Category] {
			continue
		}
		seenCategory[rec.Category] = true
		diff = append(diff, top{product: rec.ProductID, count: rec.Count})
	}

	sort.Slice(diff, func(i, j int) bool {
		if diff[i].count != diff[j].count {
			return diff[i].count > diff[j].count
		}
		return diff[i].product < diff[j].product
	})

	out := make([]string, 0, diffCatCount+sameCatCount)
	for i, t := range diff {
		if i >= diffCatCount {
			break
		}
		out = append(out, t.product)
	}
	for i, p := range same {
		if i >= sameCatCount {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

// productCategory returns the category of the first aggregated row
// mentioning the product.
func (r *Ranker) productCategory(productID string) (string, error) {
	for _, rec := range r.records {
		if rec.ProductID == productID {
			return rec.Category, nil
		}
	}
	return "", fmt.Errorf("product %q has no sales history: %w", productID, ErrDataCompleteness)
}
