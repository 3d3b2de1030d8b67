package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/kavach-labs/kavach/internal/model"
)

// Stage is one step of the analysis pipeline. Run receives the current
// aggregated log and returns the stage's free-text output for this turn.
type Stage interface {
	ID() model.StageID
	Run(ctx context.Context, log model.StageLog) (string, error)
}

// Scheduler advances a fixed stage sequence round-robin, feeding each
// stage's output into the aggregator. It halts when a stage emits the
// completion token or when the turn ceiling is reached, whichever comes
// first.
type Scheduler struct {
	stages          []Stage
	maxTurns        int
	completionToken string
}

// NewScheduler creates a scheduler over the given stage sequence
func NewScheduler(stages []Stage, maxTurns int, completionToken string) *Scheduler {
	if maxTurns <= 0 {
		maxTurns = len(stages)
	}
	return &Scheduler{
		stages:          stages,
		maxTurns:        maxTurns,
		completionToken: completionToken,
	}
}

// Run executes the stage sequence against the aggregator. Stage errors
// abort the run; the events ingested so far stay in the aggregator so the
// caller can still inspect the partial log.
func (s *Scheduler) Run(ctx context.Context, agg *Aggregator) error {
	turns := 0
	for {
		for _, stage := range s.stages {
			if turns >= s.maxTurns {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := stage.Run(ctx, agg.Snapshot())
			if err != nil {
				return fmt.Errorf("stage %s: %w", stage.ID(), err)
			}

			agg.Ingest(model.StageEvent{StageID: stage.ID(), Content: content})
			turns++

			if s.completionToken != "" && strings.Contains(content, s.completionToken) {
				return nil
			}
		}
	}
}
