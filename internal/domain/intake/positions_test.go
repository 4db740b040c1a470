package intake_test

import (
	"testing"

	"clubdesk/internal/domain/intake"
)

// TestApplyPositionEligibility tests the goalkeeper rule in both directions.
func TestApplyPositionEligibility(t *testing.T) {
	t.Run("goalkeeper clears offensive positions", func(t *testing.T) {
		doc := intake.FormDocument{
			Athlete: &intake.Athlete{
				MainDefensivePositionID:      intake.PositionGoalkeeper,
				MainOffensivePositionID:      "pivo",
				SecondaryOffensivePositionID: "ala",
			},
		}
		out := intake.ApplyPositionEligibility(doc)
		if out.Athlete.MainOffensivePositionID != "" {
			t.Errorf("main offensive position = %q, want cleared", out.Athlete.MainOffensivePositionID)
		}
		if out.Athlete.SecondaryOffensivePositionID != "" {
			t.Errorf("secondary offensive position = %q, want cleared", out.Athlete.SecondaryOffensivePositionID)
		}
		if intake.OffensivePositionsRequired(&out) {
			t.Error("offensive positions must not be required for a goalkeeper")
		}
		// Input document is untouched.
		if doc.Athlete.MainOffensivePositionID != "pivo" {
			t.Error("ApplyPositionEligibility mutated its input")
		}
	})

	t.Run("other defensive position keeps offensive positions", func(t *testing.T) {
		doc := intake.FormDocument{
			Athlete: &intake.Athlete{
				MainDefensivePositionID: "zagueiro",
				MainOffensivePositionID: "pivo",
			},
		}
		out := intake.ApplyPositionEligibility(doc)
		if out.Athlete.MainOffensivePositionID != "pivo" {
			t.Errorf("main offensive position = %q, want %q", out.Athlete.MainOffensivePositionID, "pivo")
		}
		if !intake.OffensivePositionsRequired(&out) {
			t.Error("offensive positions must be required for a non-goalkeeper")
		}
	})

	t.Run("no athlete section is a no-op", func(t *testing.T) {
		out := intake.ApplyPositionEligibility(intake.FormDocument{FlowType: intake.FlowStaff})
		if out.Athlete != nil {
			t.Error("rule must not engage the athlete section")
		}
	})
}
