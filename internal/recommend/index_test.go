package recommend

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-discovery/internal/common/config"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/models"
)

func testDiscoveryConfig() config.DiscoveryConfig {
	return config.DiscoveryConfig{
		SimilarityThreshold: 0.25,
		RecommendationSize:  10,
		MinRecommendRating:  4.0,
		CacheCapacity:       100,
		TrendingLimit:       20,
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	return NewIndex(testDiscoveryConfig(), logger.NewTestLogger(t))
}

func activeGig(id string, impressions, clicks int, rating float64) models.GigRecord {
	return models.GigRecord{
		ID:          id,
		SellerID:    "seller-" + id,
		Title:       "Gig " + id,
		Category:    "design",
		Status:      models.StatusActive,
		Impressions: impressions,
		Clicks:      clicks,
		Rating:      rating,
	}
}

func TestRankingScoreFormula(t *testing.T) {
	gig := activeGig("g1", 100, 20, 4.5)

	// 100×0.5 + 20×1.5 + 4.5×10
	assert.InDelta(t, 125.0, RankingScore(gig), 1e-9)
}

func TestRebuildRanksBestFirst(t *testing.T) {
	idx := newTestIndex(t)
	idx.Rebuild([]models.GigRecord{
		activeGig("low", 10, 1, 3.0),   // 5 + 1.5 + 30 = 36.5
		activeGig("high", 200, 50, 5.0), // 100 + 75 + 50 = 225
		activeGig("mid", 40, 10, 4.0),  // 20 + 15 + 40 = 75
	})

	ranked := idx.RankedGigs()
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "low", ranked[2].ID)
}

func TestRebuildSkipsMalformedAndInactive(t *testing.T) {
	idx := newTestIndex(t)

	paused := activeGig("paused", 10, 1, 4.0)
	paused.Status = models.StatusPaused
	broken := activeGig("", 10, 1, 4.0) // missing id

	idx.Rebuild([]models.GigRecord{activeGig("ok", 10, 1, 4.0), paused, broken})

	ranked := idx.RankedGigs()
	require.Len(t, ranked, 1)
	assert.Equal(t, "ok", ranked[0].ID)
}

func TestRebuildReplacesPreviousSnapshot(t *testing.T) {
	idx := newTestIndex(t)
	idx.Rebuild([]models.GigRecord{activeGig("old", 10, 1, 4.0)})
	idx.Rebuild([]models.GigRecord{activeGig("new", 10, 1, 4.0)})

	ranked := idx.RankedGigs()
	require.Len(t, ranked, 1)
	assert.Equal(t, "new", ranked[0].ID)
}

func TestTrendingTopOrdersByTrendingScore(t *testing.T) {
	idx := newTestIndex(t)
	// trending score favors click-through, so the small gig with perfect
	// conversion should lead
	idx.Rebuild([]models.GigRecord{
		activeGig("quiet", 1000, 10, 3.0),
		activeGig("hot", 100, 80, 4.5),
	})

	top := idx.TrendingTop(2)
	require.Len(t, top, 2)
	assert.Equal(t, "hot", top[0].ID)
}

func TestSearchPrefixFindsTitleWords(t *testing.T) {
	idx := newTestIndex(t)
	logo := activeGig("g1", 10, 1, 4.0)
	logo.Title = "Professional Logo Design"
	web := activeGig("g2", 10, 1, 4.0)
	web.Title = "Website Development"
	idx.Rebuild([]models.GigRecord{logo, web})

	assert.Contains(t, idx.SearchPrefix("log"), "logo")
	assert.Contains(t, idx.SearchPrefix("web"), "website")
	assert.Empty(t, idx.SearchPrefix("xyz"))
	assert.Empty(t, idx.SearchPrefix(""))
}

func TestSearchPrefixMemoizesUntilRebuild(t *testing.T) {
	idx := newTestIndex(t)
	gig := activeGig("g1", 10, 1, 4.0)
	gig.Title = "Logo Design"
	idx.Rebuild([]models.GigRecord{gig})

	first := idx.SearchPrefix("lo")
	second := idx.SearchPrefix("lo")
	assert.Equal(t, first, second)

	other := activeGig("g2", 10, 1, 4.0)
	other.Title = "Local SEO"
	idx.Rebuild([]models.GigRecord{gig, other})

	assert.ElementsMatch(t, []string{"logo", "local"}, idx.SearchPrefix("lo"))
}

func TestInsertTitleVisibleBeforeNextRebuild(t *testing.T) {
	idx := newTestIndex(t)
	idx.Rebuild(nil)

	idx.SearchPrefix("vo") // prime the memo with a miss
	idx.InsertTitle("Voiceover Recording")

	assert.Contains(t, idx.SearchPrefix("vo"), "voiceover")
}

func interactionWith(userID string, gig models.GigRecord) models.UserInteraction {
	return models.UserInteraction{
		UserID:     userID,
		GigID:      gig.ID,
		Category:   gig.Category,
		SellerID:   gig.SellerID,
		OccurredAt: time.Now(),
	}
}

func TestSimilarUsersThroughInteractions(t *testing.T) {
	idx := newTestIndex(t)
	design := activeGig("g1", 10, 1, 4.0)
	music := activeGig("g2", 10, 1, 4.0)
	music.Category = "music"
	music.SellerID = "seller-m"

	idx.RecordInteraction(interactionWith("alice", design))
	idx.RecordInteraction(interactionWith("bob", design))
	idx.RecordInteraction(interactionWith("carol", music))

	similar := idx.SimilarUsers("alice")
	require.Len(t, similar, 1)
	assert.Equal(t, "bob", similar[0].UserID)
}

func TestGraphSurvivesRebuild(t *testing.T) {
	idx := newTestIndex(t)
	gig := activeGig("g1", 10, 1, 4.0)
	idx.RecordInteraction(interactionWith("alice", gig))
	idx.RecordInteraction(interactionWith("bob", gig))

	idx.Rebuild([]models.GigRecord{gig})

	assert.Len(t, idx.SimilarUsers("alice"), 1)
}

func TestConcurrentRebuildAndRead(t *testing.T) {
	idx := newTestIndex(t)
	idx.Rebuild([]models.GigRecord{activeGig("seed", 10, 1, 4.0)})

	var wg sync.WaitGroup
	stop := time.After(100 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		n := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			gigs := make([]models.GigRecord, 0, 5)
			for i := 0; i < 5; i++ {
				gigs = append(gigs, activeGig(fmt.Sprintf("r%d-%d", n, i), i*10, i, 4.0))
			}
			idx.Rebuild(gigs)
			n++
		}
	}()

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				ranked := idx.RankedGigs()
				// every published snapshot is complete, never partial
				assert.True(t, len(ranked) == 1 || len(ranked) == 5)
				idx.TrendingTop(3)
				idx.SearchPrefix("gig")
				idx.RecommendForUser("u")
			}
		}()
	}

	wg.Wait()
}
