package score

import (
	"reflect"
	"testing"

	"github.com/kavach-labs/kavach/internal/model"
)

func TestScorer_Score_SafeTranscript(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Score("Hi, calling to remind about doctor appointment tomorrow at 3 PM.")

	if result.ThreatScore != 0 {
		t.Errorf("Expected score 0 for benign transcript, got %d", result.ThreatScore)
	}
	if result.TriggeredCategories() != 0 {
		t.Errorf("Expected no triggered categories, got %d", result.TriggeredCategories())
	}
	if Classify(result.ThreatScore) != model.LevelSafe {
		t.Errorf("Expected SAFE, got %s", Classify(result.ThreatScore))
	}
}

func TestScorer_Score_DigitalArrestTranscript(t *testing.T) {
	scorer := NewScorer()

	text := "CBI officer here. You are under arrest. Send 50000 rupees immediately or your account will be frozen!"
	result := scorer.Score(text)

	if len(result.AuthorityImpersonation) == 0 {
		t.Error("Expected authority matches")
	}
	if len(result.FearIndicators) == 0 {
		t.Error("Expected fear matches")
	}
	if len(result.FinancialPressure) == 0 {
		t.Error("Expected financial matches")
	}
	if result.HighSeverityCount < 1 {
		t.Errorf("Expected 'you are under arrest' as a high-severity hit, got count %d", result.HighSeverityCount)
	}
	if result.ThreatScore < 50 {
		t.Errorf("Expected score >= 50, got %d", result.ThreatScore)
	}

	level := Classify(result.ThreatScore)
	if level != model.LevelHighRisk && level != model.LevelCritical {
		t.Errorf("Expected HIGH_RISK or CRITICAL, got %s", level)
	}
}

func TestScorer_Score_HighSeverityReachesCritical(t *testing.T) {
	scorer := NewScorer()

	// Two high-severity phrases plus authority and urgency signals must
	// land in the CRITICAL band.
	text := "This is the Cyber Crime Unit. You are under digital arrest. Remain on this call immediately."
	result := scorer.Score(text)

	if result.HighSeverityCount < 2 {
		t.Fatalf("Expected at least 2 high-severity hits, got %d", result.HighSeverityCount)
	}
	if result.ThreatScore < 75 {
		t.Errorf("Expected score >= 75, got %d", result.ThreatScore)
	}
	if Classify(result.ThreatScore) != model.LevelCritical {
		t.Errorf("Expected CRITICAL, got %s", Classify(result.ThreatScore))
	}
}

func TestScorer_Score_Deterministic(t *testing.T) {
	scorer := NewScorer()

	text := "Inspector Rao from the cyber crime unit. Pay the fine immediately or face legal action."
	first := scorer.Score(text)
	second := scorer.Score(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for identical input:\n%+v\n%+v", first, second)
	}
}

func TestScorer_Score_EmptyInput(t *testing.T) {
	scorer := NewScorer()

	for _, text := range []string{"", "   ", "\n\t"} {
		result := scorer.Score(text)
		if result.ThreatScore != 0 || result.HighSeverityCount != 0 {
			t.Errorf("Expected zero result for %q, got %+v", text, result)
		}
		if len(result.FearIndicators) != 0 || len(result.AuthorityImpersonation) != 0 ||
			len(result.UrgencySignals) != 0 || len(result.FinancialPressure) != 0 {
			t.Errorf("Expected empty evidence for %q, got %+v", text, result)
		}
	}
}

func TestScorer_Score_LanguageTagStripped(t *testing.T) {
	scorer := NewScorer()

	tagged := scorer.Score("[Language: hi]\ngiraftari ka warrant hai, turant fine bharo")
	plain := scorer.Score("giraftari ka warrant hai, turant fine bharo")

	if tagged.ThreatScore != plain.ThreatScore {
		t.Errorf("Language tag changed the score: %d vs %d", tagged.ThreatScore, plain.ThreatScore)
	}
	if tagged.ThreatScore == 0 {
		t.Error("Expected Hindi keywords to score")
	}
}

func TestScorer_Score_ShortTokenWordBoundary(t *testing.T) {
	scorer := NewScorer()

	// "fir" must not match inside an unrelated word.
	inside := scorer.Score("The firmware was confirmed by the first technician.")
	if len(inside.FearIndicators) != 0 {
		t.Errorf("Short token matched inside a word: %v", inside.FearIndicators)
	}

	// But it must match as a standalone word.
	standalone := scorer.Score("An FIR has been registered against you.")
	found := false
	for _, kw := range standalone.FearIndicators {
		if kw == "fir" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected standalone 'fir' to match, got %v", standalone.FearIndicators)
	}
}

func TestScorer_Score_RepeatedKeywordDoesNotChangeScore(t *testing.T) {
	scorer := NewScorer()

	once := scorer.Score("you will be detained")
	thrice := scorer.Score("detained detained detained")

	if once.ThreatScore != thrice.ThreatScore {
		t.Errorf("Repeated occurrences changed the score: %d vs %d", once.ThreatScore, thrice.ThreatScore)
	}
	if len(thrice.FearIndicators) != 1 {
		t.Errorf("Expected deduplicated evidence, got %v", thrice.FearIndicators)
	}
}

func TestScorer_Score_CategoryCapAtTwoHits(t *testing.T) {
	scorer := NewScorer()

	two := scorer.Score("you will be detained and seized")
	four := scorer.Score("you will be detained and seized, this is illegal criminal conduct")

	if len(four.FearIndicators) < 3 {
		t.Fatalf("Expected more than two fear matches, got %v", four.FearIndicators)
	}
	if two.ThreatScore != four.ThreatScore {
		t.Errorf("Hits beyond two changed the category contribution: %d vs %d", two.ThreatScore, four.ThreatScore)
	}
}

func TestScorer_Score_KannadaUnicode(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Score("ನೀವು ಡಿಜಿಟಲ್ ಬಂಧನ ದಲ್ಲಿದ್ದೀರಿ, ತಕ್ಷಣ ಪಾವತಿ ಮಾಡಿ")

	if len(result.FearIndicators) == 0 {
		t.Error("Expected Kannada fear keywords to match")
	}
	if result.ThreatScore == 0 {
		t.Error("Expected non-zero score for Kannada scam phrasing")
	}
}

func TestScorer_Score_MultiCategoryBonus(t *testing.T) {
	scorer := NewScorer()

	// One fear hit only: 12 points (12.5 truncated).
	single := scorer.Score("you will be detained")
	if single.ThreatScore != 12 {
		t.Errorf("Expected 12 for one fear hit, got %d", single.ThreatScore)
	}

	// One fear hit and one financial hit: 12.5 + 12.5 + 10 = 35.
	double := scorer.Score("you will be detained unless you pay in bitcoin")
	if double.ThreatScore != 35 {
		t.Errorf("Expected 35 for two categories, got %d", double.ThreatScore)
	}
}
