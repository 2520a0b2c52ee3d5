package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gig-discovery/internal/textproc"
)

func newTestScorer() *Scorer {
	return NewScorer(textproc.NewProcessor(nil))
}

func TestSimilarityEmptyQuery(t *testing.T) {
	s := newTestScorer()

	assert.Zero(t, s.Similarity("", "I build websites"))
	// a query of nothing but stop words tokenizes to zero terms
	assert.Zero(t, s.Similarity("the and of", "I build websites"))
}

func TestSimilarityRange(t *testing.T) {
	s := newTestScorer()

	score := s.Similarity("logo design", "Professional logo design for your brand, logo design done fast")
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.Greater(t, score, 0.5, "exact double match should clear the token weight")
}

func TestSimilarityShortCircuitWithoutExactOrExpandedMatch(t *testing.T) {
	s := newTestScorer()

	// "running" stems to "run", matching the stem of "runs", but there is no
	// exact or expanded token match, so stems alone must not score.
	score := s.Similarity("running", "He runs daily")
	assert.Zero(t, score)
}

func TestSimilaritySynonymExpansion(t *testing.T) {
	s := newTestScorer()

	// "web" never appears literally, but the synonym table links it to
	// "website" in both directions.
	score := s.Similarity("web", "Website design services")
	assert.Greater(t, score, 0.0)
}

func TestSimilarityDeterministic(t *testing.T) {
	s := newTestScorer()

	query := "experienced web developer"
	text := "I am an experienced developer building fast websites"
	first := s.Similarity(query, text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Similarity(query, text))
	}
}

func TestSimilarityUnrelatedTextScoresZero(t *testing.T) {
	s := newTestScorer()

	assert.Zero(t, s.Similarity("logo design", "French cooking lessons"))
}

func TestAdjectiveWeightStaysZero(t *testing.T) {
	// The adjective channel is computed but intentionally disabled; the
	// remaining weights sum to 1.0 on their own.
	assert.Equal(t, 0.0, weightAdjective)
	assert.InDelta(t, 1.0, weightToken+weightStem+weightExpanded+weightNoun+weightTFIDF, 1e-9)
}
