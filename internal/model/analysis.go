package model

// Category identifies one semantic bucket of scam-framing keywords
type Category string

const (
	CategoryFear      Category = "fear"      // Arrest/prosecution/consequence framing
	CategoryAuthority Category = "authority" // Impersonation of police, agencies, courts
	CategoryUrgency   Category = "urgency"   // Time pressure, do-not-disconnect framing
	CategoryFinancial Category = "financial" // Payment demands, account freeze threats
)

// Categories lists all scoring categories in their canonical order
var Categories = []Category{CategoryFear, CategoryAuthority, CategoryUrgency, CategoryFinancial}

// AnalysisResult is the immutable output of one scoring call.
// ThreatScore is always reproducible from the evidence fields; it is
// computed by the scorer, never set independently.
type AnalysisResult struct {
	FearIndicators         []string `json:"fear_indicators"`
	AuthorityImpersonation []string `json:"authority_impersonation"`
	UrgencySignals         []string `json:"urgency_signals"`
	FinancialPressure      []string `json:"financial_pressure"`
	ThreatScore            int      `json:"threat_score"`
	HighSeverityCount      int      `json:"high_severity_count"`
}

// Indicators returns the evidence list for the given category
func (r AnalysisResult) Indicators(c Category) []string {
	switch c {
	case CategoryFear:
		return r.FearIndicators
	case CategoryAuthority:
		return r.AuthorityImpersonation
	case CategoryUrgency:
		return r.UrgencySignals
	case CategoryFinancial:
		return r.FinancialPressure
	default:
		return nil
	}
}

// TriggeredCategories counts categories with at least one match
func (r AnalysisResult) TriggeredCategories() int {
	n := 0
	for _, c := range Categories {
		if len(r.Indicators(c)) > 0 {
			n++
		}
	}
	return n
}

// ThreatLevel is the ordinal verdict band derived from a threat score
type ThreatLevel string

const (
	LevelSafe       ThreatLevel = "SAFE"
	LevelSuspicious ThreatLevel = "SUSPICIOUS"
	LevelHighRisk   ThreatLevel = "HIGH_RISK"
	LevelCritical   ThreatLevel = "CRITICAL"

	// LevelUnknown is the extractor's default when no level could be parsed.
	// The dispatcher treats it as SUSPICIOUS.
	LevelUnknown ThreatLevel = "UNKNOWN"
)

// Rank returns the ordinal position of the level (SAFE < SUSPICIOUS <
// HIGH_RISK < CRITICAL). Unknown ranks below SAFE.
func (l ThreatLevel) Rank() int {
	switch l {
	case LevelSafe:
		return 1
	case LevelSuspicious:
		return 2
	case LevelHighRisk:
		return 3
	case LevelCritical:
		return 4
	default:
		return 0
	}
}

// Recognized reports whether the level is one of the four verdict bands
func (l ThreatLevel) Recognized() bool {
	return l.Rank() > 0
}
