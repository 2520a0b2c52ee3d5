package ranking

import (
	"sort"
	"strings"
	"time"

	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/common/metrics"
	"gig-discovery/internal/models"
	"gig-discovery/internal/textproc"
)

// DefaultThreshold is the minimum similarity a candidate must reach to
// survive the semantic pass.
const DefaultThreshold = 0.25

// ScoredGig attaches a transient similarity score to a candidate for one
// ranking operation.
type ScoredGig struct {
	Gig   models.GigRecord `json:"gig"`
	Score float64          `json:"score"`
}

// Ranker orders candidate sets. Per-call state is local, so one Ranker
// serves concurrent requests without locking.
type Ranker struct {
	proc      *textproc.Processor
	scorer    *Scorer
	logger    logger.Logger
	threshold float64

	// fallback is swappable for tests that assert it is (not) reached.
	fallback func(query string, gigs []models.GigRecord) []ScoredGig
}

// NewRanker creates a ranker with the given threshold; pass 0 to use
// DefaultThreshold.
func NewRanker(proc *textproc.Processor, log logger.Logger, threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Ranker{
		proc:      proc,
		scorer:    NewScorer(proc),
		logger:    log.WithFields(map[string]interface{}{"component": "ranker"}),
		threshold: threshold,
	}
	r.fallback = r.keywordSearch
	return r
}

// Rank orders gigs by relevance to query and returns the records only.
func (r *Ranker) Rank(query string, gigs []models.GigRecord) []models.GigRecord {
	scored := r.RankScored(query, gigs)
	out := make([]models.GigRecord, len(scored))
	for i, sg := range scored {
		out[i] = sg.Gig
	}
	return out
}

// RankScored orders gigs by relevance to query, keeping the scores.
//
// An empty or meaningless query passes the candidates through untouched
// (score 0, original order). When the semantic pass leaves nothing at or
// above the threshold, the literal keyword fallback runs; the fallback may
// legitimately return an empty slice, which callers must read as "no
// relevant results", not as pass-through.
func (r *Ranker) RankScored(query string, gigs []models.GigRecord) []ScoredGig {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		metrics.SearchQueries.WithLabelValues("passthrough").Inc()
		return passThrough(gigs)
	}

	meaningful := r.proc.MeaningfulTerms(query)
	if len(meaningful) == 0 {
		metrics.SearchQueries.WithLabelValues("passthrough").Inc()
		return passThrough(gigs)
	}
	meaningfulQuery := strings.Join(meaningful, " ")

	matched := make([]ScoredGig, 0, len(gigs))
	for _, gig := range gigs {
		score := r.scoreCandidate(meaningfulQuery, gig)
		if score >= r.threshold {
			matched = append(matched, ScoredGig{Gig: gig, Score: score})
		}
	}

	// Stable: candidates with equal scores keep their original order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if len(matched) > 0 {
		metrics.SearchQueries.WithLabelValues("semantic").Inc()
		metrics.SearchDuration.WithLabelValues("semantic").Observe(time.Since(start).Seconds())
		return matched
	}

	result := r.fallback(query, gigs)
	metrics.SearchQueries.WithLabelValues("fallback").Inc()
	metrics.SearchDuration.WithLabelValues("fallback").Observe(time.Since(start).Seconds())
	return result
}

// scoreCandidate isolates per-record failures: a malformed record or a
// panicking scorer costs that candidate its score, never the batch.
func (r *Ranker) scoreCandidate(query string, gig models.GigRecord) (score float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("candidate scoring panicked", map[string]interface{}{
				"gigId": gig.ID,
				"panic": rec,
			})
			score = 0
		}
	}()

	if reason := gig.Malformed(); reason != "" {
		r.logger.Warn("skipping malformed gig record", map[string]interface{}{
			"gigId":  gig.ID,
			"reason": reason,
		})
		return 0
	}

	return r.scorer.Similarity(query, gig.SearchText())
}

// keywordSearch is the safety net: split the query on whitespace (stop
// words and single characters excluded), score each gig by the fraction of
// terms found as a literal substring of title+description+category, and
// keep positive scores only. The whitespace-only tokenization deliberately
// differs from the semantic path.
func (r *Ranker) keywordSearch(query string, gigs []models.GigRecord) []ScoredGig {
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if len(term) <= 1 || r.proc.Vocabulary().IsStopWord(term) {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return []ScoredGig{}
	}

	matched := []ScoredGig{}
	for _, gig := range gigs {
		haystack := strings.ToLower(gig.Title + " " + gig.Description + " " + gig.Category)
		found := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				found++
			}
		}
		if found > 0 {
			matched = append(matched, ScoredGig{
				Gig:   gig,
				Score: float64(found) / float64(len(terms)),
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})
	return matched
}

func passThrough(gigs []models.GigRecord) []ScoredGig {
	out := make([]ScoredGig, len(gigs))
	for i, gig := range gigs {
		out[i] = ScoredGig{Gig: gig}
	}
	return out
}
