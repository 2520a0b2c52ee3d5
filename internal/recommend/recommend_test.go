package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/models"
)

func slateIDs(gigs []models.GigRecord) []string {
	ids := make([]string, len(gigs))
	for i, g := range gigs {
		ids[i] = g.ID
	}
	return ids
}

func TestRecommendHighRatedAlwaysPresent(t *testing.T) {
	// 3 gigs rated ≥ 4.0 and 20 below: the slate is exactly 10 gigs and the
	// high-rated three appear in every one of them
	idx := newTestIndex(t)

	catalog := []models.GigRecord{
		activeGig("top1", 50, 5, 4.8),
		activeGig("top2", 30, 3, 4.5),
		activeGig("top3", 10, 1, 4.0),
	}
	for i := 0; i < 20; i++ {
		catalog = append(catalog, activeGig(fmt.Sprintf("filler%d", i), i*10, i, 3.0))
	}
	idx.Rebuild(catalog)

	for call := 0; call < 10; call++ {
		slate := idx.RecommendForUser("alice")
		require.Len(t, slate, 10)

		ids := slateIDs(slate)
		assert.Contains(t, ids, "top1")
		assert.Contains(t, ids, "top2")
		assert.Contains(t, ids, "top3")
	}
}

func TestRecommendBackfillPrefersImpressions(t *testing.T) {
	idx := newTestIndex(t)

	catalog := []models.GigRecord{activeGig("starred", 5, 1, 4.9)}
	for i := 0; i < 30; i++ {
		catalog = append(catalog, activeGig(fmt.Sprintf("low%d", i), i, 0, 2.0))
	}
	idx.Rebuild(catalog)

	slate := idx.RecommendForUser("alice")
	require.Len(t, slate, 10)

	ids := slateIDs(slate)
	assert.Contains(t, ids, "starred")
	// backfill takes the nine most-impressed low-rated gigs (low29..low21)
	for i := 29; i > 20; i-- {
		assert.Contains(t, ids, fmt.Sprintf("low%d", i))
	}
	assert.NotContains(t, ids, "low0")
}

func TestRecommendSmallCatalogReturnsEverything(t *testing.T) {
	idx := newTestIndex(t)
	idx.Rebuild([]models.GigRecord{
		activeGig("a", 10, 1, 4.5),
		activeGig("b", 10, 1, 2.0),
	})

	slate := idx.RecommendForUser("alice")
	assert.ElementsMatch(t, []string{"a", "b"}, slateIDs(slate))
}

func TestRecommendCapsAtConfiguredSize(t *testing.T) {
	cfg := testDiscoveryConfig()
	cfg.RecommendationSize = 3
	idx := NewIndex(cfg, logger.NewTestLogger(t))

	catalog := make([]models.GigRecord, 0, 8)
	for i := 0; i < 8; i++ {
		catalog = append(catalog, activeGig(fmt.Sprintf("g%d", i), i, i, 4.5))
	}
	idx.Rebuild(catalog)

	assert.Len(t, idx.RecommendForUser("alice"), 3)
}

func TestRecommendOrderVariesAcrossCalls(t *testing.T) {
	idx := newTestIndex(t)
	catalog := make([]models.GigRecord, 0, 10)
	for i := 0; i < 10; i++ {
		catalog = append(catalog, activeGig(fmt.Sprintf("g%d", i), i*5, i, 4.5))
	}
	idx.Rebuild(catalog)

	first := slateIDs(idx.RecommendForUser("alice"))
	varied := false
	for call := 0; call < 50 && !varied; call++ {
		next := slateIDs(idx.RecommendForUser("alice"))
		assert.ElementsMatch(t, first, next, "membership must not vary")
		if !equalOrder(first, next) {
			varied = true
		}
	}
	assert.True(t, varied, "shuffle should produce a different order within 50 calls")
}

func TestRecommendEmptyIndex(t *testing.T) {
	idx := newTestIndex(t)

	assert.Empty(t, idx.RecommendForUser("alice"))
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
