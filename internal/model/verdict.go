package model

import "time"

// Verdict is the structured judgment extracted from the decision stage's
// free text. Fields that could not be parsed keep their defaults
// (UNKNOWN / 0 / empty).
type Verdict struct {
	Level          ThreatLevel `json:"threat_level"`
	Score          int         `json:"threat_score"`
	Summary        string      `json:"summary"`
	CallerType     string      `json:"caller_type"`
	Recommendation string      `json:"recommendation"`
}

// DefaultVerdict returns the all-defaults verdict the extractor starts from
func DefaultVerdict() Verdict {
	return Verdict{
		Level:      LevelUnknown,
		CallerType: "Unknown",
	}
}

// CallRecord is the complete archived result of one pipeline run
type CallRecord struct {
	Transcript string         `json:"transcript"`
	Language   string         `json:"language,omitempty"`
	Analysis   AnalysisResult `json:"analysis"`
	Verdict    Verdict        `json:"verdict"`
	ActionLog  string         `json:"action_log,omitempty"`
	AlertSent  bool           `json:"alert_sent"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}
