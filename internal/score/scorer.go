// Package score implements the deterministic keyword-signal scorer for
// call transcripts. It matches curated English, Hindi, and Kannada
// (transliterated and Unicode) keyword sets against free text and reduces
// the matches to a bounded 0-100 threat score.
package score

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"

	"github.com/kavach-labs/kavach/internal/lexicon"
	"github.com/kavach-labs/kavach/internal/model"
)

// Per-category score weight. Each category contributes up to its weight,
// capped at two distinct matches.
const categoryWeight = 25

// Bonus points added when two or more categories trigger.
const multiCategoryBonus = 10

// Points per high-severity phrase hit, capped at two hits.
const highSeverityBonus = 15

// languageTag matches the optional "[Language: xx]" prefix a transcriber
// prepends. It carries no signal and is stripped before matching.
var languageTag = regexp.MustCompile(`\[Language:.*?\]`)

// Scorer matches the lexicon against text and computes the threat score.
// It owns no mutable state and is safe for concurrent use.
type Scorer struct {
	categories map[model.Category][]string
	matcher    *ahocorasick.Matcher
}

// NewScorer builds a scorer over the compiled-in lexicon. The
// high-severity phrase set is compiled into an Aho-Corasick automaton so
// the whole set is matched in one pass over the text.
func NewScorer() *Scorer {
	categories := make(map[model.Category][]string, len(model.Categories))
	for _, c := range model.Categories {
		categories[c] = lexicon.CategoryKeywords(c)
	}

	phrases := lexicon.HighSeverityPhrases()
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}

	return &Scorer{
		categories: categories,
		matcher:    ahocorasick.NewStringMatcher(lowered),
	}
}

// Score analyses transcript text and returns the per-category evidence and
// the aggregate threat score. Empty input yields the zero result. The
// function is pure: identical input always produces an identical result.
func (s *Scorer) Score(text string) model.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return model.AnalysisResult{}
	}

	clean := strings.TrimSpace(languageTag.ReplaceAllString(text, ""))
	textLower := strings.ToLower(clean)

	result := model.AnalysisResult{
		FearIndicators:         findMatches(textLower, s.categories[model.CategoryFear]),
		AuthorityImpersonation: findMatches(textLower, s.categories[model.CategoryAuthority]),
		UrgencySignals:         findMatches(textLower, s.categories[model.CategoryUrgency]),
		FinancialPressure:      findMatches(textLower, s.categories[model.CategoryFinancial]),
		HighSeverityCount:      s.countHighSeverity(textLower),
	}
	result.ThreatScore = computeScore(result)
	return result
}

// computeScore reduces the evidence to the 0-100 threat score: each
// category contributes weight * min(hits,2)/2, two or more triggered
// categories add a flat bonus, and the first two high-severity hits add
// fifteen points each. The result is truncated and clamped to [0,100].
func computeScore(r model.AnalysisResult) int {
	score := 0.0
	for _, c := range model.Categories {
		hits := len(r.Indicators(c))
		if hits > 2 {
			hits = 2
		}
		score += float64(hits) / 2 * categoryWeight
	}

	if r.TriggeredCategories() >= 2 {
		score += multiCategoryBonus
	}

	highSev := r.HighSeverityCount
	if highSev > 2 {
		highSev = 2
	}
	score += float64(highSev * highSeverityBonus)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// countHighSeverity returns the number of distinct high-severity phrases
// present in the lowercased text.
func (s *Scorer) countHighSeverity(textLower string) int {
	hits := s.matcher.Match([]byte(textLower))
	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		seen[h] = true
	}
	return len(seen)
}

// findMatches returns the canonical keywords present in the lowercased
// text, deduplicated, in lexicon order. Keywords of five runes or fewer
// must appear at word boundaries so a short token cannot match inside an
// unrelated word; longer phrases match as plain substrings.
func findMatches(textLower string, keywords []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)

		var hit bool
		if utf8.RuneCountInString(kwLower) <= 5 {
			hit = containsWord(textLower, kwLower)
		} else {
			hit = strings.Contains(textLower, kwLower)
		}

		if hit && !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// containsWord reports whether word occurs in text delimited by non-word
// runes (or the text edges). A rune scan is used instead of regexp \b,
// which is ASCII-only and mishandles the Kannada Unicode keys.
func containsWord(text, word string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		i = start + 1
	}
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	// Combining marks count as word runes so Indic conjuncts do not split
	// into spurious boundaries.
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}
