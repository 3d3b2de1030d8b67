// Package pipeline orchestrates one call triage run: transcript in,
// archived call record out. The four stages run round-robin over a shared
// event log; the keyword scorer keeps the run deterministic even when the
// optional LLM stages are enabled.
package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kavach-labs/kavach/internal/alert"
	"github.com/kavach-labs/kavach/internal/llm"
	"github.com/kavach-labs/kavach/internal/model"
	"github.com/kavach-labs/kavach/internal/score"
	"github.com/kavach-labs/kavach/internal/store"
	"github.com/kavach-labs/kavach/internal/stream"
	"github.com/kavach-labs/kavach/internal/transcribe"
	"github.com/kavach-labs/kavach/internal/verdict"
)

var languageTagRe = regexp.MustCompile(`^\[Language:\s*(.*?)\]`)

// Pipeline orchestrates the complete triage process
type Pipeline struct {
	scorer      *score.Scorer
	extractor   *verdict.Extractor
	dispatcher  *alert.Dispatcher
	provider    llm.Provider // nil when LLM stages are disabled
	transcriber transcribe.Transcriber
	records     store.Store // nil when archiving is disabled
	config      *model.Config
	logger      *zap.Logger
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("initialize LLM provider: %w", err)
		}
		provider = p
	}

	var records store.Store
	if cfg.Store.Enabled {
		if cfg.Store.Dir != "" {
			records = store.NewDiskStore(cfg.Store.Dir, cfg.Store.DedupTTL)
		} else {
			records = store.NewMemoryStore(cfg.Store.DedupTTL, 10*time.Minute)
		}
	}

	dispatcher := alert.NewDispatcher(
		&alert.ConsoleFamilyNotifier{
			Contact:    cfg.Alert.FamilyContact,
			SeniorName: cfg.Alert.SeniorName,
			Logger:     logger,
		},
		&alert.ConsolePoliceNotifier{
			Station: cfg.Alert.PoliceStation,
			Logger:  logger,
		},
		logger,
	)

	return &Pipeline{
		scorer:     score.NewScorer(),
		extractor:  verdict.NewExtractor(logger),
		dispatcher: dispatcher,
		provider:   provider,
		records:    records,
		config:     cfg,
		logger:     logger,
	}, nil
}

// SetTranscriber installs the audio transcriber. Without one, only text
// transcripts can be analyzed.
func (p *Pipeline) SetTranscriber(t transcribe.Transcriber) {
	p.transcriber = t
}

// Analyze triages one transcript and returns the archived record.
// Identical transcripts within the dedup window return the archived
// result without re-running the stages.
func (p *Pipeline) Analyze(ctx context.Context, transcript string) (*model.CallRecord, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" || transcript == transcribe.NoSpeechToken {
		return nil, fmt.Errorf("no speech to analyze")
	}

	key := store.RecordKey(transcript)
	if p.records != nil {
		if rec, found := p.records.Get(key); found {
			p.logger.Info("returning archived result for repeated transcript",
				zap.String("key", key))
			return rec, nil
		}
	}

	if p.config.Pipeline.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Pipeline.Timeout)
		defer cancel()
	}

	state := &runState{transcript: transcript}
	stages := []stream.Stage{
		&speechStage{state: state},
		&reasoningStage{state: state, scorer: p.scorer, provider: p.provider, logger: p.logger},
		&decisionStage{state: state, provider: p.provider, logger: p.logger},
		&actionStage{state: state, extractor: p.extractor, dispatcher: p.dispatcher},
	}

	agg := stream.NewAggregator(model.StageSequence)
	sched := stream.NewScheduler(stages, p.config.Pipeline.MaxTurns, CompletionToken)

	if err := sched.Run(ctx, agg); err != nil {
		return nil, fmt.Errorf("triage run: %w", err)
	}
	if err := agg.Close(); err != nil {
		return nil, fmt.Errorf("triage run: %w", err)
	}

	// Replay the end-of-run records as final so stale partials from any
	// later inspection of the aggregator cannot shadow them.
	for _, entry := range agg.Snapshot().Entries {
		agg.Ingest(model.StageEvent{StageID: entry.StageID, Content: entry.Content, IsFinal: true})
	}

	record := &model.CallRecord{
		Transcript: transcript,
		Language:   parseLanguage(transcript),
		Analysis:   state.analysis,
		Verdict:    state.verdict,
		ActionLog:  state.actionLog,
		AlertSent:  state.alertSent,
		AnalyzedAt: time.Now().UTC(),
	}

	p.logger.Info("triage complete",
		zap.String("threat_level", string(record.Verdict.Level)),
		zap.Int("threat_score", record.Verdict.Score),
		zap.Bool("alert_sent", record.AlertSent),
		zap.Int("events", agg.EventCount()))

	if p.records != nil {
		if err := p.records.Put(key, record); err != nil {
			p.logger.Warn("failed to archive record", zap.Error(err))
		}
	}

	return record, nil
}

// AnalyzeAudio transcribes a recorded call and triages the transcript
func (p *Pipeline) AnalyzeAudio(ctx context.Context, audioPath string) (*model.CallRecord, error) {
	if p.transcriber == nil {
		return nil, fmt.Errorf("no transcriber configured (set an API key to enable audio input)")
	}

	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", audioPath, err)
	}
	if transcript == transcribe.NoSpeechToken {
		return nil, fmt.Errorf("no speech found in %s", audioPath)
	}

	return p.Analyze(ctx, transcript)
}

// parseLanguage reads the transcriber's language tag, if present
func parseLanguage(transcript string) string {
	if m := languageTagRe.FindStringSubmatch(transcript); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
