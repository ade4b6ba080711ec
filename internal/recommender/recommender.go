// Package recommender aggregates the four recommendation strategies into
// the final bounded product list served to the shopper.
package recommender

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ozanguner/hybrid-recommender/internal/models"
	"github.com/ozanguner/hybrid-recommender/internal/popularity"
	"github.com/ozanguner/hybrid-recommender/internal/rules"
	"github.com/ozanguner/hybrid-recommender/internal/similarity"
)

// Config carries the aggregation tuning: per-engine contribution caps,
// the final list size and the sampling seed.
type Config struct {
	FinalCount           int
	RuleCount            int
	UserCount            int
	ItemCount            int
	DiffCategoryCount    int
	SameCategoryCount    int
	CorrelationThreshold float64
	Seed                 int64
}

// DefaultConfig mirrors the counts the engine was tuned with.
func DefaultConfig() Config {
	return Config{
		FinalCount:           10,
		RuleCount:            5,
		UserCount:            5,
		ItemCount:            4,
		DiffCategoryCount:    5,
		SameCategoryCount:    3,
		CorrelationThreshold: 0.5,
	}
}

// Engine fans a product-in-cart out to the four strategies and merges
// their candidates. The context is read-only, so one engine serves every
// caller; the cart is the only per-caller state.
type Engine struct {
	ctx        *Context
	popularity *popularity.Ranker
	userBased  *similarity.UserBased
	itemBased  *similarity.ItemBased
	cfg        Config
	rng        *rand.Rand
	logger     *zap.Logger
	now        func() time.Time
}

// New builds the engine over an already-constructed context. A zero seed
// seeds the sampler from the clock; tests pass a fixed seed for
// reproducible output.
func New(ctx *Context, cfg Config, logger *zap.Logger) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		ctx:       ctx,
		userBased: similarity.NewUserBased(ctx.Binary, ctx.Counts),
		itemBased: similarity.NewItemBased(ctx.Counts, cfg.CorrelationThreshold, rng),
		cfg:       cfg,
		rng:       rng,
		logger:    logger,
		now:       time.Now,
	}
	// Indirect through e.now so tests can pin the clock after construction.
	e.popularity = popularity.NewRanker(ctx.Events, func() time.Time { return e.now() })
	return e
}

// ValidProduct reports whether the product id exists in the catalog.
func (e *Engine) ValidProduct(productID string) bool {
	return e.ctx.Catalog.Has(productID)
}

// ProductLabel renders the display label for a product id.
func (e *Engine) ProductLabel(productID string) string {
	return e.ctx.Catalog.Label(productID)
}

// Recommend validates the product, adds it to the cart and returns exactly
// FinalCount distinct products sampled from the union of the four
// strategies' candidates.
//
// A failing popularity lookup degrades to an empty contribution; the two
// terminal conditions are an unknown product id (the cart is left
// untouched) and a deduplicated union smaller than FinalCount.
func (e *Engine) Recommend(productID string, cart *models.Cart) ([]string, error) {
	if !e.ctx.Catalog.Has(productID) {
		return nil, fmt.Errorf("%q: %w", productID, ErrInvalidProduct)
	}
	cart.Add(productID)

	bestsellers, err := e.popularity.Bestsellers(productID, e.cfg.DiffCategoryCount, e.cfg.SameCategoryCount)
	if err != nil {
		e.logger.Warn("Popularity ranker contributed nothing",
			zap.Error(err),
			zap.String("product_id", productID))
		bestsellers = nil
	}

	ruleRecs := rules.RecommendByRules(e.ctx.Rules, productID, e.cfg.RuleCount)
	userRecs := e.userBased.Recommend(cart.View(), e.cfg.UserCount)
	itemRecs := e.itemBased.Recommend(productID, e.cfg.ItemCount)

	seen := make(map[string]bool)
	var union []string
	for _, list := range [][]string{bestsellers, ruleRecs, userRecs, itemRecs} {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			union = append(union, p)
		}
	}

	e.logger.Debug("Merged strategy candidates",
		zap.String("product_id", productID),
		zap.Int("popularity", len(bestsellers)),
		zap.Int("rules", len(ruleRecs)),
		zap.Int("user_based", len(userRecs)),
		zap.Int("item_based", len(itemRecs)),
		zap.Int("distinct", len(union)))

	if len(union) < e.cfg.FinalCount {
		return nil, fmt.Errorf("%d of %d candidates: %w",
			len(union), e.cfg.FinalCount, ErrInsufficientCandidates)
	}

	out := make([]string, 0, e.cfg.FinalCount)
	for _, idx := range e.rng.Perm(len(union))[:e.cfg.FinalCount] {
		out = append(out, union[idx])
	}
	return out, nil
}
