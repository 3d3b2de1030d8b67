package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kavach-labs/kavach/internal/alert"
	"github.com/kavach-labs/kavach/internal/llm"
	"github.com/kavach-labs/kavach/internal/model"
	"github.com/kavach-labs/kavach/internal/score"
	"github.com/kavach-labs/kavach/internal/verdict"
)

// CompletionToken is emitted by the action stage when triage is done. The
// scheduler halts the round-robin on it.
const CompletionToken = "TRIAGE_COMPLETE"

// runState is the per-run working memory shared by the four stages. A run
// owns its stage set, so no locking is needed.
type runState struct {
	transcript string
	analysis   model.AnalysisResult
	level      model.ThreatLevel
	verdict    model.Verdict
	actionLog  string
	alertSent  bool
}

// speechStage relays the transcript into the shared log. Transcription
// itself happens before the run; this stage gives downstream stages a
// uniform place to read the call text from.
type speechStage struct {
	state *runState
}

func (s *speechStage) ID() model.StageID { return model.StageSpeech }

func (s *speechStage) Run(ctx context.Context, log model.StageLog) (string, error) {
	return "Call transcript:\n" + s.state.transcript, nil
}

// reasoningStage scores the transcript against the keyword lexicon. When
// an LLM provider is configured it layers a model-written assessment on
// top; the keyword score always stands, with or without the model.
type reasoningStage struct {
	state    *runState
	scorer   *score.Scorer
	provider llm.Provider
	logger   *zap.Logger
}

func (s *reasoningStage) ID() model.StageID { return model.StageReasoning }

func (s *reasoningStage) Run(ctx context.Context, log model.StageLog) (string, error) {
	s.state.analysis = s.scorer.Score(s.state.transcript)
	s.state.level = score.Classify(s.state.analysis.ThreatScore)

	report := formatAnalysis(s.state.analysis, s.state.level)

	if s.provider == nil {
		return report, nil
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: "You are the reasoning stage of a scam-call triage pipeline protecting senior citizens in India. " +
			"Assess the transcript for scam patterns (digital arrest, customs parcel, KYC fraud, lottery). " +
			"Keep the keyword analysis verdict; add context, do not override the score.",
		Prompt: log.Combined() + "\n\nKeyword analysis:\n" + report + "\n\nGive a short assessment.",
	})
	if err != nil {
		// LLM trouble never blocks triage; the keyword score carries the run.
		s.logger.Warn("reasoning model unavailable, using keyword analysis only", zap.Error(err))
		return report, nil
	}

	return report + "\n\nModel assessment:\n" + resp.Text, nil
}

// decisionStage renders the verdict block the extractor parses. With a
// provider configured the model writes the block (instructed to use the
// exact markers); otherwise it is templated from the keyword analysis.
type decisionStage struct {
	state    *runState
	provider llm.Provider
	logger   *zap.Logger
}

func (s *decisionStage) ID() model.StageID { return model.StageDecision }

func (s *decisionStage) Run(ctx context.Context, log model.StageLog) (string, error) {
	templated := formatVerdictBlock(s.state.analysis, s.state.level)

	if s.provider == nil {
		return templated, nil
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: "You are the decision stage of a scam-call triage pipeline. " +
			"Render the final verdict exactly in this format, ending with " + verdict.EndMarker + ":\n" +
			verdict.OpenMarker + ":\n- Threat Level: <SAFE|SUSPICIOUS|HIGH_RISK|CRITICAL>\n" +
			"- Threat Score: <0-100>\n- Summary: <one line>\n- Caller Type: <short label>\n" +
			"- Recommendation: <one line>\n" + verdict.EndMarker,
		Prompt: log.Combined() + "\n\nRender the verdict.",
	})
	if err != nil {
		s.logger.Warn("decision model unavailable, using templated verdict", zap.Error(err))
		return templated, nil
	}
	if !strings.Contains(resp.Text, verdict.OpenMarker) {
		// A verdict the extractor cannot anchor on is worse than the template.
		s.logger.Warn("decision model omitted the verdict block, using templated verdict")
		return templated, nil
	}

	return resp.Text, nil
}

// actionStage extracts the structured verdict from the decision output,
// triggers escalation, and signals completion.
type actionStage struct {
	state      *runState
	extractor  *verdict.Extractor
	dispatcher *alert.Dispatcher
}

func (s *actionStage) ID() model.StageID { return model.StageAction }

func (s *actionStage) Run(ctx context.Context, log model.StageLog) (string, error) {
	v := s.extractor.Extract(log)
	if !v.Level.Recognized() {
		// Parse failure falls back to the keyword classification so the
		// escalation still reflects what the scorer saw.
		v.Level = s.state.level
		v.Score = s.state.analysis.ThreatScore
	}
	s.state.verdict = v

	rule := alert.RuleFor(v.Level)
	s.state.alertSent = rule.NotifyFamily || rule.NotifyPolice

	report := s.dispatcher.Escalate(v.Level, v.Summary)
	s.state.actionLog = report

	return report + "\n" + CompletionToken, nil
}

// formatAnalysis renders the keyword analysis as the reasoning stage's
// log entry
func formatAnalysis(a model.AnalysisResult, level model.ThreatLevel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "threat_score: %d\n", a.ThreatScore)
	fmt.Fprintf(&b, "threat_level: %s\n", level)
	fmt.Fprintf(&b, "high_severity_matches: %d\n", a.HighSeverityCount)
	for _, c := range model.Categories {
		if hits := a.Indicators(c); len(hits) > 0 {
			fmt.Fprintf(&b, "%s: %s\n", c, strings.Join(hits, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatVerdictBlock renders the deterministic verdict block
func formatVerdictBlock(a model.AnalysisResult, level model.ThreatLevel) string {
	return fmt.Sprintf("%s:\n- Threat Level: %s\n- Threat Score: %d\n- Summary: %s\n- Caller Type: %s\n- Recommendation: %s\n%s",
		verdict.OpenMarker,
		level,
		a.ThreatScore,
		summaryFor(a, level),
		callerTypeFor(level),
		recommendationFor(level),
		verdict.EndMarker)
}

func summaryFor(a model.AnalysisResult, level model.ThreatLevel) string {
	if level == model.LevelSafe {
		return "No scam indicators matched in the transcript."
	}
	total := 0
	for _, c := range model.Categories {
		total += len(a.Indicators(c))
	}
	return fmt.Sprintf("Keyword analysis matched %d indicator(s) across %d categor(ies); %d high-severity phrase(s).",
		total, a.TriggeredCategories(), a.HighSeverityCount)
}

func callerTypeFor(level model.ThreatLevel) string {
	switch level {
	case model.LevelCritical, model.LevelHighRisk:
		return "Scammer"
	case model.LevelSuspicious:
		return "Possible scammer"
	default:
		return "Legitimate caller"
	}
}

func recommendationFor(level model.ThreatLevel) string {
	switch level {
	case model.LevelCritical:
		return "Hang up immediately. Do not share any information. Family and police are being alerted."
	case model.LevelHighRisk:
		return "End the call and consult a family member before taking any action."
	case model.LevelSuspicious:
		return "Do not share personal or financial details. Verify the caller independently."
	default:
		return "No action required."
	}
}
