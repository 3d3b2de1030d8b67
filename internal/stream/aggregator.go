// Package stream reduces the noisy per-stage event stream of one pipeline
// run to a stable combined log. Stages emit free text repeatedly; the
// aggregator keeps the latest emission per stage, in first-emission order,
// and lets an authoritative end-of-run record override stale partials.
package stream

import (
	"errors"

	"github.com/kavach-labs/kavach/internal/model"
)

// ErrNoEvents reports a run whose stream closed without a single ingested
// event. Callers must surface this as a run failure; it usually means an
// upstream rate limit or timeout, not a safe call.
var ErrNoEvents = errors.New("no stage events received")

// Aggregator maintains the latest-message projection for one pipeline run.
// It is fed by exactly one producer sequence; concurrent runs must each
// own their own instance.
type Aggregator struct {
	recognized map[model.StageID]bool
	latest     map[model.StageID]string
	order      []model.StageID
	finalized  map[model.StageID]bool
	ingested   int
}

// NewAggregator creates an aggregator that accepts events from the given
// stage set. Events from any other stage are discarded.
func NewAggregator(stages []model.StageID) *Aggregator {
	recognized := make(map[model.StageID]bool, len(stages))
	for _, id := range stages {
		recognized[id] = true
	}
	return &Aggregator{
		recognized: recognized,
		latest:     make(map[model.StageID]string),
		finalized:  make(map[model.StageID]bool),
	}
}

// Ingest consumes one stage event. Events from unrecognized stages and
// events with empty content are dropped. A non-final event replaces the
// stage's recorded content (latest wins); a final event replaces it and
// pins it, so stale partials arriving afterwards cannot shadow it.
func (a *Aggregator) Ingest(ev model.StageEvent) {
	if !a.recognized[ev.StageID] || ev.Content == "" {
		return
	}

	a.ingested++

	if a.finalized[ev.StageID] && !ev.IsFinal {
		return
	}

	if _, seen := a.latest[ev.StageID]; !seen {
		a.order = append(a.order, ev.StageID)
	}
	a.latest[ev.StageID] = ev.Content
	if ev.IsFinal {
		a.finalized[ev.StageID] = true
	}
}

// Snapshot returns the current projection: one entry per stage that has
// emitted, in first-emission order. It never mutates state and may be
// called at any time.
func (a *Aggregator) Snapshot() model.StageLog {
	entries := make([]model.StageEntry, 0, len(a.order))
	for _, id := range a.order {
		entries = append(entries, model.StageEntry{StageID: id, Content: a.latest[id]})
	}
	return model.StageLog{Entries: entries}
}

// EventCount returns the number of accepted events this run
func (a *Aggregator) EventCount() int {
	return a.ingested
}

// Close validates the completed stream. It returns ErrNoEvents when
// nothing was ever ingested, so the caller can distinguish a dead upstream
// from a genuinely safe verdict.
func (a *Aggregator) Close() error {
	if a.ingested == 0 {
		return ErrNoEvents
	}
	return nil
}
