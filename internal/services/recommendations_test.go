package services

import (
	"testing"

	"github.com/benjihealth/sanctuary/internal/models"
)

func TestRecommendationsForPhase(t *testing.T) {
	for _, phase := range []string{
		models.PhaseMenstrual,
		models.PhaseFollicular,
		models.PhaseOvulation,
		models.PhaseLuteal,
	} {
		recs := RecommendationsForPhase(phase)
		if len(recs) != 4 {
			t.Errorf("%s: got %d cards, want 4", phase, len(recs))
		}
		for _, rec := range recs {
			if rec.Icon == "" || rec.Title == "" || rec.Text == "" {
				t.Errorf("%s: incomplete card %+v", phase, rec)
			}
		}
	}
}

func TestRecommendationsForUnknownPhase(t *testing.T) {
	if recs := RecommendationsForPhase("Waxing Gibbous"); recs != nil {
		t.Errorf("unknown phase should return nil, got %d cards", len(recs))
	}
}

func TestRecommendationsReturnsCopies(t *testing.T) {
	first := RecommendationsForPhase(models.PhaseMenstrual)
	first[0].Title = "changed"

	second := RecommendationsForPhase(models.PhaseMenstrual)
	if second[0].Title == "changed" {
		t.Error("callers should not be able to mutate the shared cards")
	}
}
