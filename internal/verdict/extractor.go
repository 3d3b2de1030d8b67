// Package verdict parses the decision stage's free text into a structured
// verdict. The upstream format is a best-effort text protocol, not a wire
// format: language models decorate it with markdown and vary the casing,
// so every field is matched tolerantly and missing fields keep their
// defaults. Extraction never fails.
package verdict

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kavach-labs/kavach/internal/model"
)

const (
	// OpenMarker introduces the verdict block in the decision stage output
	OpenMarker = "FINAL_VERDICT"
	// EndMarker terminates the verdict block
	EndMarker = "DECISION_DONE"
)

var (
	blockRe = regexp.MustCompile(`(?is)FINAL_VERDICT[:\s]*(.*?)(?:DECISION_DONE|$)`)

	// Labeled level, tolerant of markdown bold, underscores, and the
	// "HIGH RISK" spelling.
	levelLabeledRe = regexp.MustCompile(`(?i)Threat\s*Level[:\s*_]+(SAFE|SUSPICIOUS|HIGH[_\s]RISK|CRITICAL)`)

	scoreLabeledRe = regexp.MustCompile(`(?i)Threat\s*Score[:\s*_]+(\d+)`)
	scoreBareRe    = regexp.MustCompile(`(?i)score[:\s]+(\d+)\s*(?:/\s*100)?`)

	// Next bulleted field: newline, optional indent, bullet, then the
	// field label (possibly opening with markdown emphasis).
	nextBulletRe = regexp.MustCompile(`\n\s*[-*•]\s+[\w*_]`)

	decorRe = regexp.MustCompile("[*_`#]+")
)

// Fallback scan order: most severe first, so a casually mentioned milder
// level never wins over a severe one.
var levelScanOrder = []string{"CRITICAL", "HIGH_RISK", "HIGH RISK", "SUSPICIOUS", "SAFE"}

// Extractor derives a Verdict from an aggregated stage log
type Extractor struct {
	logger *zap.Logger

	levelStrategies []func(block string) (model.ThreatLevel, bool)
	scoreStrategies []func(block string) (int, bool)
}

// NewExtractor creates an extractor. The logger is used to flag
// unparseable blocks for observability; nil disables that.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{logger: logger}
	e.levelStrategies = []func(string) (model.ThreatLevel, bool){labeledLevel, scannedLevel}
	e.scoreStrategies = []func(string) (int, bool){labeledScore, bareScore}
	return e
}

// Extract parses the terminal stage's content into a Verdict. It prefers
// the decision stage entry when present and falls back to the whole
// combined log. Fields that cannot be located keep their defaults.
func (e *Extractor) Extract(log model.StageLog) model.Verdict {
	text := log.Combined()
	if entry, ok := log.Stage(model.StageDecision); ok {
		text = entry.Content
	}
	return e.ExtractText(text)
}

// ExtractText parses raw text into a Verdict
func (e *Extractor) ExtractText(text string) model.Verdict {
	result := model.DefaultVerdict()

	block := text
	if m := blockRe.FindStringSubmatch(text); m != nil {
		block = m[1]
	}

	for _, strategy := range e.levelStrategies {
		if level, ok := strategy(block); ok {
			result.Level = level
			break
		}
	}
	if result.Level == model.LevelUnknown {
		e.logger.Warn("no threat level found in verdict block",
			zap.String("snippet", snippet(block, 200)))
	}

	for _, strategy := range e.scoreStrategies {
		if n, ok := strategy(block); ok {
			result.Score = n
			break
		}
	}

	if v, ok := labeledField(block, "Summary"); ok {
		result.Summary = v
	}
	if v, ok := labeledField(block, "Caller Type"); ok {
		result.CallerType = v
	}
	if v, ok := labeledField(block, "Recommendation"); ok {
		result.Recommendation = v
	}

	return result
}

func labeledLevel(block string) (model.ThreatLevel, bool) {
	m := levelLabeledRe.FindStringSubmatch(block)
	if m == nil {
		return model.LevelUnknown, false
	}
	// The capture is one of the known spellings; only the "HIGH RISK"
	// variant needs normalizing. stripDecor would eat the underscore.
	raw := strings.ToUpper(strings.TrimSpace(m[1]))
	return model.ThreatLevel(strings.ReplaceAll(raw, " ", "_")), true
}

func scannedLevel(block string) (model.ThreatLevel, bool) {
	lower := strings.ToLower(block)
	for _, name := range levelScanOrder {
		if strings.Contains(lower, strings.ToLower(name)) {
			return model.ThreatLevel(strings.ReplaceAll(name, " ", "_")), true
		}
	}
	return model.LevelUnknown, false
}

func labeledScore(block string) (int, bool) {
	return parseScoreMatch(scoreLabeledRe.FindStringSubmatch(block))
}

func bareScore(block string) (int, bool) {
	return parseScoreMatch(scoreBareRe.FindStringSubmatch(block))
}

func parseScoreMatch(m []string) (int, bool) {
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// labeledField captures the text following "<label>:" up to the next
// bulleted field, the end marker, or end of text, with decorative
// punctuation stripped.
func labeledField(block, label string) (string, bool) {
	labelRe := regexp.MustCompile(`(?i)` + strings.ReplaceAll(regexp.QuoteMeta(label), ` `, `\s*`) + `[:\s*_]+`)
	loc := labelRe.FindStringIndex(block)
	if loc == nil {
		return "", false
	}

	rest := block[loc[1]:]
	end := len(rest)
	if m := nextBulletRe.FindStringIndex(rest); m != nil && m[0] < end {
		end = m[0]
	}
	if i := strings.Index(strings.ToUpper(rest), EndMarker); i >= 0 && i < end {
		end = i
	}

	value := stripDecor(rest[:end])
	if value == "" {
		return "", false
	}
	return value, true
}

func stripDecor(s string) string {
	return strings.TrimSpace(decorRe.ReplaceAllString(s, ""))
}

func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
