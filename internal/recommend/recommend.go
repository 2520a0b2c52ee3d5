package recommend

import (
	"math/rand"
	"sort"

	"gig-discovery/internal/common/metrics"
	"gig-discovery/internal/models"
)

// RecommendForUser builds a recommendation slate of at most the configured
// size: highly rated active gigs first (rating, then impressions),
// backfilled from the lower-rated pool by impressions when the catalog has
// too few. The slate is shuffled before returning, so order varies across
// calls even on an unchanged catalog. That shuffle is the only
// nondeterministic operation the index performs.
func (idx *Index) RecommendForUser(userID string) []models.GigRecord {
	size := idx.cfg.RecommendationSize
	if size <= 0 {
		size = 10
	}
	minRating := idx.cfg.MinRecommendRating

	idx.mu.RLock()
	pool := make([]models.GigRecord, len(idx.current.active))
	copy(pool, idx.current.active)
	idx.mu.RUnlock()

	highRated := make([]models.GigRecord, 0, len(pool))
	rest := make([]models.GigRecord, 0, len(pool))
	for _, gig := range pool {
		if gig.Rating >= minRating {
			highRated = append(highRated, gig)
		} else {
			rest = append(rest, gig)
		}
	}

	sort.SliceStable(highRated, func(i, j int) bool {
		if highRated[i].Rating != highRated[j].Rating {
			return highRated[i].Rating > highRated[j].Rating
		}
		return highRated[i].Impressions > highRated[j].Impressions
	})
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Impressions > rest[j].Impressions
	})

	slate := highRated
	if len(slate) > size {
		slate = slate[:size]
	}
	for _, gig := range rest {
		if len(slate) >= size {
			break
		}
		slate = append(slate, gig)
	}

	rand.Shuffle(len(slate), func(i, j int) {
		slate[i], slate[j] = slate[j], slate[i]
	})

	metrics.RecommendationsServed.Inc()
	idx.log.Debug("recommendation slate built", map[string]interface{}{
		"user_id": userID,
		"size":    len(slate),
	})
	return slate
}
