package textproc

import (
	"strings"

	"github.com/spf13/viper"

	apperrors "gig-discovery/internal/common/errors"
)

// Vocabulary holds the hand-curated language assets the processor depends
// on: the stop-word list and the domain synonym table. Both are data, not
// code, so deployments can evolve the marketplace vocabulary without a
// rebuild.
type Vocabulary struct {
	stopWords map[string]bool
	synonyms  map[string][]string
}

// NewVocabulary builds a vocabulary from explicit word lists. Keys and
// entries are lowercased; callers own deduplication of the inputs.
func NewVocabulary(stopWords []string, synonyms map[string][]string) *Vocabulary {
	v := &Vocabulary{
		stopWords: make(map[string]bool, len(stopWords)),
		synonyms:  make(map[string][]string, len(synonyms)),
	}
	for _, w := range stopWords {
		v.stopWords[strings.ToLower(w)] = true
	}
	for key, values := range synonyms {
		lowered := make([]string, 0, len(values))
		for _, s := range values {
			lowered = append(lowered, strings.ToLower(s))
		}
		v.synonyms[strings.ToLower(key)] = lowered
	}
	return v
}

// LoadVocabulary reads the vocabulary asset (YAML) from path. The file uses
// two keys: stop_words (list) and synonyms (map of key to list).
func LoadVocabulary(path string) (*Vocabulary, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.NewVocabularyLoadError(path, err)
	}

	stopWords := v.GetStringSlice("stop_words")
	synonyms := v.GetStringMapStringSlice("synonyms")
	return NewVocabulary(stopWords, synonyms), nil
}

// IsStopWord reports whether the (lowercased) word is filtered out.
func (v *Vocabulary) IsStopWord(word string) bool {
	return v.stopWords[word]
}

// Expand returns the synonym group for a token: if the token is a table key
// or appears in any key's synonym list, the key and its full list are
// returned. Matching runs in both directions so "website" reaches "web"
// just like "web" reaches "website".
func (v *Vocabulary) Expand(token string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(w string) {
		if w != token && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	if values, ok := v.synonyms[token]; ok {
		for _, s := range values {
			add(s)
		}
	}
	for key, values := range v.synonyms {
		for _, s := range values {
			if s == token {
				add(key)
				for _, other := range values {
					add(other)
				}
				break
			}
		}
	}
	return out
}

// DefaultVocabulary is the built-in fallback used when no asset file is
// configured. The stop words cover articles, pronouns and auxiliaries plus
// marketplace filler; the synonym table carries the gig domain groups.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultStopWords, defaultSynonyms)
}

var defaultStopWords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else",
	"i", "me", "my", "we", "our", "you", "your", "he", "him", "his",
	"she", "her", "it", "its", "they", "them", "their", "this", "that",
	"these", "those", "is", "am", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "do", "does", "did", "will", "would",
	"can", "could", "shall", "should", "may", "might", "must",
	"to", "of", "in", "on", "at", "for", "with", "by", "from", "about",
	"as", "into", "so", "than", "too", "very", "just", "not", "no",
	// marketplace filler
	"need", "needed", "looking", "want", "someone", "please", "help",
}

var defaultSynonyms = map[string][]string{
	"web":         {"website", "websites", "webpage", "html", "css", "frontend", "backend", "fullstack"},
	"developer":   {"development", "programming", "programmer", "coding", "coder", "software", "engineer"},
	"design":      {"designer", "graphic", "graphics", "illustration", "illustrator", "logo", "branding"},
	"write":       {"writing", "writer", "content", "copywriting", "blog", "article", "articles"},
	"video":       {"videos", "editing", "animation", "animator", "film", "youtube"},
	"marketing":   {"seo", "ads", "advertising", "promotion", "social", "media"},
	"app":         {"apps", "mobile", "android", "ios", "application"},
	"translate":   {"translation", "translator", "language", "localization"},
	"data":        {"database", "analytics", "analysis", "excel", "scraping"},
	"music":       {"audio", "voice", "voiceover", "song", "mixing", "mastering"},
	"photo":       {"photography", "photographer", "photoshop", "retouching"},
	"business":    {"consulting", "consultant", "plan", "finance", "accounting"},
}
