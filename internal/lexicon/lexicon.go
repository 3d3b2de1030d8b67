// Package lexicon holds the static multilingual keyword sets used by the
// signal scorer. Sets are grouped by category (fear, authority, urgency,
// financial) and language variant, loaded once at process start and never
// mutated.
package lexicon

import "github.com/kavach-labs/kavach/internal/model"

// KeywordSet is the ordered keyword/phrase list for one category in one
// language variant. Entries are canonical: matching is case-insensitive,
// but evidence reports these exact strings.
type KeywordSet struct {
	Category model.Category
	Language string
	Keywords []string
}

// CategoryKeywords returns the union of all language-variant sets for a
// category, in declaration order.
func CategoryKeywords(c model.Category) []string {
	var out []string
	for _, set := range allSets {
		if set.Category == c {
			out = append(out, set.Keywords...)
		}
	}
	return out
}

// HighSeverityPhrases returns the fixed list of phrases whose presence
// alone strongly indicates a scam pattern.
func HighSeverityPhrases() []string {
	return highSeverityPhrases
}

var allSets = []KeywordSet{
	{model.CategoryFear, "en", fearEN},
	{model.CategoryFear, "hi", fearHI},
	{model.CategoryFear, "kn", fearKN},
	{model.CategoryFear, "kn-unicode", fearKNUnicode},
	{model.CategoryAuthority, "en", authorityEN},
	{model.CategoryAuthority, "hi", authorityHI},
	{model.CategoryAuthority, "kn", authorityKN},
	{model.CategoryAuthority, "kn-unicode", authorityKNUnicode},
	{model.CategoryUrgency, "en", urgencyEN},
	{model.CategoryUrgency, "hi", urgencyHI},
	{model.CategoryUrgency, "kn", urgencyKN},
	{model.CategoryUrgency, "kn-unicode", urgencyKNUnicode},
	{model.CategoryFinancial, "en", financialEN},
	{model.CategoryFinancial, "hi", financialHI},
	{model.CategoryFinancial, "kn", financialKN},
	{model.CategoryFinancial, "kn-unicode", financialKNUnicode},
}

// High-severity phrases. Longer, compound phrasings only; any single match
// adds a major score bonus.
var highSeverityPhrases = []string{
	"digital arrest",
	"under digital arrest",
	"you are under arrest",
	"warrant has been issued",
	"arrested for money laundering",
	"drug trafficking",
	"aadhaar has been used",
	"aadhaar linked to",
	"illegal use of aadhaar",
	"remain on this call",
	"do not disconnect",
	"do not hang up",
	"immediate legal action",
}
