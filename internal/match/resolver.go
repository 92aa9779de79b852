package match

import (
	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
)

// DefaultThreshold is the minimum score a catalog entry must reach to be
// considered a match.
const DefaultThreshold = 0.3

// Resolver finds the best catalog entry for a query.
type Resolver struct {
	store     *knowledge.Store
	threshold float64
	logger    *zap.Logger
}

// NewResolver builds a resolver over the catalog. A threshold of 0 selects
// DefaultThreshold.
func NewResolver(store *knowledge.Store, threshold float64, logger *zap.Logger) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, threshold: threshold, logger: logger}
}

// FindBestMatch scores the query against every entry's candidates for the
// given language and returns the highest scorer at or above the threshold,
// or nil if none qualifies. Ties go to the entry earliest in catalog order.
func (r *Resolver) FindBestMatch(query string, language lang.Language) (*knowledge.Entry, float64) {
	var best *knowledge.Entry
	var bestScore float64

	for _, entry := range r.store.Entries() {
		score := Score(query, entry.MatchCandidates(language))
		if score >= r.threshold && score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if best != nil {
		r.logger.Debug("query matched",
			zap.String("entry_id", best.ID),
			zap.String("incident", best.Incident),
			zap.Float64("score", bestScore))
	} else {
		r.logger.Debug("query matched nothing", zap.String("language", string(language)))
	}

	return best, bestScore
}

// Threshold reports the configured minimum score.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}
