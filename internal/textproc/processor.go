// Package textproc turns raw marketplace text into normalized, comparable
// linguistic features: filtered tokens, Porter stems, tagged nouns and
// adjectives, and a synonym-expanded term set.
package textproc

import (
	"regexp"
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	prose "github.com/jdkato/prose/v2"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Features is the ephemeral output of one Process call. It is never
// persisted; scoring recomputes it per query.
type Features struct {
	Tokens     []string
	Stems      []string
	Nouns      []string
	Adjectives []string
	Expanded   []string
}

// Processor derives Features using a fixed vocabulary.
type Processor struct {
	vocab *Vocabulary
}

// NewProcessor creates a processor over the given vocabulary. A nil
// vocabulary falls back to the built-in default.
func NewProcessor(vocab *Vocabulary) *Processor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Processor{vocab: vocab}
}

// Vocabulary exposes the underlying vocabulary for direction-aware synonym
// checks in the scorer.
func (p *Processor) Vocabulary() *Vocabulary {
	return p.vocab
}

// Process lowercases and tokenizes text, removes stop words, stems the
// remainder, tags nouns/adjectives, and expands domain synonyms. Empty or
// blank input yields empty (non-nil) fields.
func (p *Processor) Process(text string) Features {
	f := Features{
		Tokens:     []string{},
		Stems:      []string{},
		Nouns:      []string{},
		Adjectives: []string{},
		Expanded:   []string{},
	}
	if strings.TrimSpace(text) == "" {
		return f
	}

	lowered := strings.ToLower(text)
	for _, tok := range wordPattern.FindAllString(lowered, -1) {
		if p.vocab.IsStopWord(tok) {
			continue
		}
		f.Tokens = append(f.Tokens, tok)
		f.Stems = append(f.Stems, porterstemmer.StemString(tok))
	}

	f.Nouns, f.Adjectives = p.tagPartsOfSpeech(text)
	f.Expanded = p.expandTokens(f.Tokens)
	return f
}

// MeaningfulTerms strips stop words and single-character tokens from a raw
// query. The ranker treats a query with no meaningful terms as pass-through.
func (p *Processor) MeaningfulTerms(query string) []string {
	terms := []string{}
	for _, tok := range wordPattern.FindAllString(strings.ToLower(query), -1) {
		if len(tok) <= 1 || p.vocab.IsStopWord(tok) {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// tagPartsOfSpeech runs the POS tagger over the raw text and returns
// lowercased nouns and adjectives that survive the stop-word filter.
// Tagging failures degrade to empty lists; scoring still works off tokens.
func (p *Processor) tagPartsOfSpeech(text string) (nouns, adjectives []string) {
	nouns, adjectives = []string{}, []string{}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nouns, adjectives
	}

	seenNoun := make(map[string]bool)
	seenAdj := make(map[string]bool)
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if !wordPattern.MatchString(word) || p.vocab.IsStopWord(word) {
			continue
		}
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			if !seenNoun[word] {
				seenNoun[word] = true
				nouns = append(nouns, word)
			}
		case strings.HasPrefix(tok.Tag, "JJ"):
			if !seenAdj[word] {
				seenAdj[word] = true
				adjectives = append(adjectives, word)
			}
		}
	}
	return nouns, adjectives
}

// expandTokens collects the deduplicated synonym groups for every token.
func (p *Processor) expandTokens(tokens []string) []string {
	expanded := []string{}
	seen := make(map[string]bool)
	for _, tok := range tokens {
		for _, term := range p.vocab.Expand(tok) {
			if !seen[term] {
				seen[term] = true
				expanded = append(expanded, term)
			}
		}
	}
	return expanded
}
