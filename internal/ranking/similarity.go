// Package ranking orders gig candidates by relevance to a free-text query.
// The semantic path scores linguistic overlap between query and gig text;
// a literal keyword pass backstops it when nothing clears the threshold.
package ranking

import (
	"math"

	"gig-discovery/internal/textproc"
)

// Component weights of the similarity score. They sum to 1.0 excluding the
// adjective weight, which is intentionally zero: adjectives are computed but
// do not contribute until product decides otherwise.
const (
	weightToken     = 0.50
	weightStem      = 0.10
	weightExpanded  = 0.20
	weightNoun      = 0.15
	weightAdjective = 0.00
	weightTFIDF     = 0.05
)

// Scorer computes query/text similarity in [0,1]. It is stateless per call
// and safe for concurrent use.
type Scorer struct {
	proc *textproc.Processor
}

// NewScorer creates a scorer over the given text processor.
func NewScorer(proc *textproc.Processor) *Scorer {
	return &Scorer{proc: proc}
}

// Similarity scores how well text matches query. A query with no tokens
// after stop-word filtering scores 0, as does any text with neither an
// exact nor a synonym-expanded token match. Deterministic for fixed inputs.
func (s *Scorer) Similarity(query, text string) float64 {
	q := s.proc.Process(query)
	if len(q.Tokens) == 0 {
		return 0
	}
	d := s.proc.Process(text)

	textTokens := toSet(d.Tokens)
	textExpanded := toSet(d.Expanded)

	exactMatches := 0
	expandedMatches := 0
	for _, tok := range q.Tokens {
		if textTokens[tok] {
			exactMatches++
		}
		if s.expandedMatch(tok, textTokens, textExpanded) {
			expandedMatches++
		}
	}

	// Without a single exact or expanded hit, stems and TF-IDF alone would
	// award meaningless partial credit.
	if exactMatches == 0 && expandedMatches == 0 {
		return 0
	}

	textStems := toSet(d.Stems)
	stemMatches := 0
	for _, stem := range q.Stems {
		if textStems[stem] {
			stemMatches++
		}
	}

	n := float64(len(q.Tokens))
	score := weightToken*(float64(exactMatches)/n) +
		weightStem*(float64(stemMatches)/n) +
		weightExpanded*(float64(expandedMatches)/n) +
		weightNoun*overlap(q.Nouns, d.Nouns) +
		weightAdjective*overlap(q.Adjectives, d.Adjectives) +
		weightTFIDF*s.tfidf(q.Tokens, d.Tokens)

	return math.Min(math.Max(score, 0), 1)
}

// expandedMatch checks the synonym table in both directions: the query
// token appearing in the text's expanded set, or any expansion of the query
// token appearing literally in the text.
func (s *Scorer) expandedMatch(token string, textTokens, textExpanded map[string]bool) bool {
	if textExpanded[token] {
		return true
	}
	for _, syn := range s.proc.Vocabulary().Expand(token) {
		if textTokens[syn] {
			return true
		}
	}
	return false
}

// tfidf scores the query terms against the single candidate document and
// normalizes by query length. With one document the IDF term is the
// constant 1+ln(1/2); the value mostly rewards repeated term occurrences.
func (s *Scorer) tfidf(queryTokens, textTokens []string) float64 {
	if len(textTokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(textTokens))
	for _, tok := range textTokens {
		counts[tok]++
	}

	idf := 1 + math.Log(1.0/2.0)
	sum := 0.0
	for _, tok := range queryTokens {
		if tf := counts[tok]; tf > 0 {
			sum += float64(tf) * idf
		}
	}

	return math.Min(sum/float64(len(queryTokens)), 1)
}

func overlap(query, text []string) float64 {
	if len(query) == 0 {
		return 0
	}
	textSet := toSet(text)
	matches := 0
	for _, w := range query {
		if textSet[w] {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
