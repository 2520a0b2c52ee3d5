// Package recommend maintains the in-memory discovery index: ranked and
// trending views over the gig catalog, prefix suggestions, and the
// user-interaction graph behind collaborative recommendations. The catalog
// store stays the source of truth; everything here is disposable and
// rebuilt from snapshots.
package recommend

import (
	"strings"
	"sync"

	"gig-discovery/internal/common/config"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/common/metrics"
	"gig-discovery/internal/index"
	"gig-discovery/internal/models"
)

// snapshot bundles the structures rebuilt together from one catalog read.
// A snapshot is immutable once published.
type snapshot struct {
	ranked   *index.AVLTree
	trending *index.TrendingList
	titles   *index.Trie
	active   []models.GigRecord
}

// Index owns the discovery structures. Rebuild assembles a fresh snapshot
// off to the side and publishes it under the write lock, so readers never
// observe a half-built tree.
type Index struct {
	cfg config.DiscoveryConfig
	log logger.Logger

	mu          sync.RWMutex
	current     *snapshot
	graph       *index.UserGigGraph
	suggestions *index.LRUCache
}

// NewIndex creates an empty index. It serves zero results until the first
// Rebuild.
func NewIndex(cfg config.DiscoveryConfig, log logger.Logger) *Index {
	return &Index{
		cfg: cfg,
		log: log,
		current: &snapshot{
			ranked:   index.NewAVLTree(),
			trending: index.NewTrendingList(),
			titles:   index.NewTrie(),
			active:   []models.GigRecord{},
		},
		graph:       index.NewUserGigGraph(),
		suggestions: index.NewLRUCache(cfg.CacheCapacity),
	}
}

// RankingScore is the ordering key for the ranked gig view.
func RankingScore(gig models.GigRecord) float64 {
	return float64(gig.Impressions)*0.5 + float64(gig.Clicks)*1.5 + gig.Rating*10
}

// Rebuild replaces the ranked, trending and suggestion structures from a
// full catalog snapshot. Malformed records are logged and skipped, never
// fatal. The interaction graph survives rebuilds.
func (idx *Index) Rebuild(gigs []models.GigRecord) {
	next := &snapshot{
		ranked:   index.NewAVLTree(),
		trending: index.NewTrendingList(),
		titles:   index.NewTrie(),
		active:   make([]models.GigRecord, 0, len(gigs)),
	}

	skipped := 0
	for _, gig := range gigs {
		gig.Normalize()
		if reason := gig.Malformed(); reason != "" {
			skipped++
			idx.log.Warn("skipping malformed gig during rebuild", map[string]interface{}{
				"gig_id": gig.ID,
				"reason": reason,
			})
			continue
		}
		if gig.Status != models.StatusActive {
			continue
		}

		next.active = append(next.active, gig)
		next.ranked.Insert(RankingScore(gig), gig)
		next.trending.Insert(gig)
		indexTitle(next.titles, gig.Title)
	}

	idx.mu.Lock()
	idx.current = next
	idx.suggestions = index.NewLRUCache(idx.cfg.CacheCapacity)
	idx.mu.Unlock()

	metrics.IndexRebuilds.Inc()
	metrics.IndexedGigs.Set(float64(len(next.active)))
	idx.log.Info("discovery index rebuilt", map[string]interface{}{
		"indexed": len(next.active),
		"skipped": skipped,
	})
}

// RankedGigs returns every indexed gig best-first by ranking score.
func (idx *Index) RankedGigs() []models.GigRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.current.ranked.InOrderDescending()
}

// TrendingTop returns the n highest-scoring gigs by trending score.
func (idx *Index) TrendingTop(n int) []models.GigRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.current.trending.Top(n)
}

// ActiveGigs returns the active gigs of the current snapshot.
func (idx *Index) ActiveGigs() []models.GigRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]models.GigRecord, len(idx.current.active))
	copy(out, idx.current.active)
	return out
}

// SearchPrefix returns title-word completions for prefix. Recent lookups
// are memoized until the next rebuild.
func (idx *Index) SearchPrefix(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []string{}
	}

	// LRU reads promote the entry, so the memo needs the write lock.
	idx.mu.Lock()
	if cached, ok := idx.suggestions.Get(prefix); ok {
		idx.mu.Unlock()
		metrics.ResultCacheHits.WithLabelValues("suggestions").Inc()
		return cached.([]string)
	}
	completions := idx.current.titles.Search(prefix)
	idx.suggestions.Set(prefix, completions)
	idx.mu.Unlock()

	metrics.ResultCacheMisses.WithLabelValues("suggestions").Inc()
	return completions
}

// InsertTitle adds a title's words to the suggestion trie without waiting
// for the next rebuild, for gigs published between rebuild ticks.
func (idx *Index) InsertTitle(title string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	indexTitle(idx.current.titles, title)
	idx.suggestions = index.NewLRUCache(idx.cfg.CacheCapacity)
}

// RecordInteraction registers a user's engagement with a gig in the
// similarity graph.
func (idx *Index) RecordInteraction(evt models.UserInteraction) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.graph.AddInteraction(evt.UserID, evt.Category, evt.SellerID)
}

// SimilarUsers returns users ranked by interaction overlap with userID.
func (idx *Index) SimilarUsers(userID string) []index.UserScore {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.graph.SimilarUsers(userID)
}

func indexTitle(trie *index.Trie, title string) {
	for _, word := range strings.Fields(title) {
		if len(word) > 1 {
			trie.Insert(word)
		}
	}
}
