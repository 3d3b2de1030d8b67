package score

import (
	"testing"

	"github.com/kavach-labs/kavach/internal/model"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  model.ThreatLevel
	}{
		{0, model.LevelSafe},
		{24, model.LevelSafe},
		{25, model.LevelSuspicious},
		{49, model.LevelSuspicious},
		{50, model.LevelHighRisk},
		{74, model.LevelHighRisk},
		{75, model.LevelCritical},
		{100, model.LevelCritical},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestClassify_OutOfRange(t *testing.T) {
	if got := Classify(-10); got != model.LevelSafe {
		t.Errorf("Classify(-10) = %s, want SAFE", got)
	}
	if got := Classify(250); got != model.LevelCritical {
		t.Errorf("Classify(250) = %s, want CRITICAL", got)
	}
}

func TestThreatLevel_Ordering(t *testing.T) {
	order := []model.ThreatLevel{model.LevelSafe, model.LevelSuspicious, model.LevelHighRisk, model.LevelCritical}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Expected %s < %s", order[i-1], order[i])
		}
	}
	if model.LevelUnknown.Recognized() {
		t.Error("UNKNOWN must not be a recognized verdict band")
	}
}
