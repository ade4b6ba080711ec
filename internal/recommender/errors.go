package recommender

import "errors"

var (
	// ErrInvalidProduct means the product id does not exist in the
	// historical catalog; no recommendation is attempted.
	ErrInvalidProduct = errors.New("product not found in catalog")

	// ErrInsufficientCandidates means fewer distinct products survived
	// aggregation than the final recommendation count requires.
	ErrInsufficientCandidates = errors.New("not enough candidates to recommend")
)
