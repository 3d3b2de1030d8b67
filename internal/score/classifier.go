package score

import "github.com/kavach-labs/kavach/internal/model"

// Classify maps a threat score to its verdict band. Thresholds are closed
// on the lower bound; the mapping is total over all integers, so
// out-of-range scores clamp into the nearest band.
func Classify(threatScore int) model.ThreatLevel {
	switch {
	case threatScore >= 75:
		return model.LevelCritical
	case threatScore >= 50:
		return model.LevelHighRisk
	case threatScore >= 25:
		return model.LevelSuspicious
	default:
		return model.LevelSafe
	}
}
