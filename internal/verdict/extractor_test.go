package verdict

import (
	"testing"

	"github.com/kavach-labs/kavach/internal/model"
)

func TestExtractor_WellFormedBlock(t *testing.T) {
	e := NewExtractor(nil)

	text := "FINAL_VERDICT:\n" +
		"- Threat Level: **HIGH_RISK**\n" +
		"- Threat Score: 62\n" +
		"- Summary: Likely scam.\n" +
		"- Caller Type: Scammer\n" +
		"- Recommendation: Hang up.\n" +
		"DECISION_DONE"

	v := e.ExtractText(text)

	if v.Level != model.LevelHighRisk {
		t.Errorf("Level = %s, want HIGH_RISK", v.Level)
	}
	if v.Score != 62 {
		t.Errorf("Score = %d, want 62", v.Score)
	}
	if v.Summary != "Likely scam." {
		t.Errorf("Summary = %q", v.Summary)
	}
	if v.CallerType != "Scammer" {
		t.Errorf("CallerType = %q", v.CallerType)
	}
	if v.Recommendation != "Hang up." {
		t.Errorf("Recommendation = %q", v.Recommendation)
	}
}

func TestExtractor_SpaceSpelledLevel(t *testing.T) {
	e := NewExtractor(nil)

	v := e.ExtractText("FINAL_VERDICT:\n- Threat Level: high risk\n- Threat Score: 55\nDECISION_DONE")
	if v.Level != model.LevelHighRisk {
		t.Errorf("Level = %s, want HIGH_RISK", v.Level)
	}
}

func TestExtractor_NoBlockFallsBackToFullText(t *testing.T) {
	e := NewExtractor(nil)

	v := e.ExtractText("The call was judged CRITICAL with score: 88/100. Hang up now.")
	if v.Level != model.LevelCritical {
		t.Errorf("Level = %s, want CRITICAL", v.Level)
	}
	if v.Score != 88 {
		t.Errorf("Score = %d, want 88", v.Score)
	}
}

func TestExtractor_SeverityOrderedFallback(t *testing.T) {
	e := NewExtractor(nil)

	// "safe" appears first in the text; the severe keyword must still win.
	v := e.ExtractText("It is not safe to continue; this is a CRITICAL scam call.")
	if v.Level != model.LevelCritical {
		t.Errorf("Level = %s, want CRITICAL", v.Level)
	}
}

func TestExtractor_MalformedBlockKeepsDefaults(t *testing.T) {
	e := NewExtractor(nil)

	v := e.ExtractText("FINAL_VERDICT:\ngarbled output with no recognizable fields whatsoever\nDECISION_DONE")

	if v.Level != model.LevelUnknown {
		t.Errorf("Level = %s, want UNKNOWN", v.Level)
	}
	if v.Score != 0 {
		t.Errorf("Score = %d, want 0", v.Score)
	}
	if v.Summary != "" || v.Recommendation != "" {
		t.Errorf("Expected empty free-text fields, got %+v", v)
	}
	if v.CallerType != "Unknown" {
		t.Errorf("CallerType = %q, want Unknown", v.CallerType)
	}
}

func TestExtractor_EmptyText(t *testing.T) {
	e := NewExtractor(nil)

	v := e.ExtractText("")
	if v.Level != model.LevelUnknown || v.Score != 0 {
		t.Errorf("Expected defaults for empty text, got %+v", v)
	}
}

func TestExtractor_PartialFields(t *testing.T) {
	e := NewExtractor(nil)

	v := e.ExtractText("FINAL_VERDICT:\n- Threat Level: SUSPICIOUS\n- Summary: Possibly a phishing attempt over OTP.\nDECISION_DONE")

	if v.Level != model.LevelSuspicious {
		t.Errorf("Level = %s, want SUSPICIOUS", v.Level)
	}
	if v.Score != 0 {
		t.Errorf("Score = %d, want default 0", v.Score)
	}
	if v.Summary != "Possibly a phishing attempt over OTP." {
		t.Errorf("Summary = %q", v.Summary)
	}
}

func TestExtractor_MarkdownDecoratedFields(t *testing.T) {
	e := NewExtractor(nil)

	text := "FINAL_VERDICT:\n" +
		"- **Threat Level**: **CRITICAL**\n" +
		"- **Threat Score**: **95**\n" +
		"- **Summary**: _Digital arrest scam in progress._\n" +
		"- **Caller Type**: `Scammer`\n" +
		"- **Recommendation**: Hang up **immediately** and call family.\n" +
		"DECISION_DONE"

	v := e.ExtractText(text)

	if v.Level != model.LevelCritical {
		t.Errorf("Level = %s, want CRITICAL", v.Level)
	}
	if v.Score != 95 {
		t.Errorf("Score = %d, want 95", v.Score)
	}
	if v.Summary != "Digital arrest scam in progress." {
		t.Errorf("Summary = %q", v.Summary)
	}
	if v.CallerType != "Scammer" {
		t.Errorf("CallerType = %q", v.CallerType)
	}
	if v.Recommendation != "Hang up immediately and call family." {
		t.Errorf("Recommendation = %q", v.Recommendation)
	}
}

func TestExtractor_PrefersDecisionStageEntry(t *testing.T) {
	e := NewExtractor(nil)

	log := model.StageLog{Entries: []model.StageEntry{
		{StageID: model.StageReasoning, Content: "threat_score: 10, looks SAFE so far"},
		{StageID: model.StageDecision, Content: "FINAL_VERDICT:\n- Threat Level: HIGH_RISK\n- Threat Score: 60\nDECISION_DONE"},
	}}

	v := e.Extract(log)
	if v.Level != model.LevelHighRisk || v.Score != 60 {
		t.Errorf("Expected the decision stage to be authoritative, got %+v", v)
	}
}
