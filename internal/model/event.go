package model

// StageID names one step of the analysis pipeline
type StageID string

const (
	StageSpeech    StageID = "Speech_Agent"
	StageReasoning StageID = "Reasoning_Agent"
	StageDecision  StageID = "Decision_Agent"
	StageAction    StageID = "Action_Agent"
)

// StageSequence is the fixed round-robin order of pipeline stages
var StageSequence = []StageID{StageSpeech, StageReasoning, StageDecision, StageAction}

// StageEvent is one emission from an upstream stage. Stages may emit
// several times; later emissions supersede earlier ones. IsFinal marks
// entries of the authoritative end-of-run record.
type StageEvent struct {
	StageID StageID `json:"stage_id"`
	Content string  `json:"content"`
	IsFinal bool    `json:"is_final"`
}

// StageEntry is one line of the aggregated log: the latest content
// recorded for a stage.
type StageEntry struct {
	StageID StageID `json:"stage_id"`
	Content string  `json:"content"`
}

// StageLog is the aggregator's projection: one entry per stage that has
// emitted, in first-emission order, each holding that stage's latest
// content.
type StageLog struct {
	Entries []StageEntry `json:"entries"`
}

// Stage returns the entry for the given stage, if present
func (l StageLog) Stage(id StageID) (StageEntry, bool) {
	for _, e := range l.Entries {
		if e.StageID == id {
			return e, true
		}
	}
	return StageEntry{}, false
}

// Combined concatenates all entries into one log text, each prefixed
// with its stage id, mirroring the upstream free-text protocol.
func (l StageLog) Combined() string {
	var b []byte
	for _, e := range l.Entries {
		b = append(b, '[')
		b = append(b, e.StageID...)
		b = append(b, "] "...)
		b = append(b, e.Content...)
		b = append(b, '\n')
	}
	return string(b)
}
