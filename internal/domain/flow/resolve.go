package flow

import "clubdesk/internal/domain/intake"

// Variant step sequences, keyed by discriminator values. The legacy list is
// the backward-compatible default shown when no flow type is chosen yet.
var (
	legacySteps = []string{
		StepFlowChooser,
		StepRole,
		StepAffiliation,
		StepPersonalData,
		StepAthlete,
		StepAccount,
		StepReview,
	}
	staffChoiceSteps = []string{
		StepFlowChooser,
		StepStaffChoice,
	}
	staffEntitySteps = map[string][]string{
		intake.StaffChoiceSeason:       {StepFlowChooser, StepStaffChoice, StepSeason, StepReview},
		intake.StaffChoiceOrganization: {StepFlowChooser, StepStaffChoice, StepOrganization, StepReview},
		intake.StaffChoiceTeam:         {StepFlowChooser, StepStaffChoice, StepTeam, StepReview},
	}
	userSteps = []string{
		StepFlowChooser,
		StepRole,
		StepAffiliation,
		StepPersonalData,
		StepAccount,
		StepReview,
	}
	userAthleteSteps = []string{
		StepFlowChooser,
		StepRole,
		StepAffiliation,
		StepPersonalData,
		StepAthlete,
		StepAccount,
		StepReview,
	}
)

// Resolve returns the active ordered step list for the document's current
// discriminator values. Pure function of the snapshot; the returned slice
// and its descriptors are copies.
// PRE: doc discriminators hold known values or ""
// POST: Result is non-empty, deterministic, and has no duplicate step ids
func Resolve(doc *intake.FormDocument) []StepDescriptor {
	switch doc.FlowType {
	case intake.FlowStaff:
		if ids, ok := staffEntitySteps[doc.StaffChoice]; ok {
			return describe(ids)
		}
		return describe(staffChoiceSteps)
	case intake.FlowUser:
		if doc.UserRole == intake.RoleAthlete {
			return describe(userAthleteSteps)
		}
		return describe(userSteps)
	default:
		// Unset or unrecognized flow type falls back to the legacy full list.
		return describe(legacySteps)
	}
}

func describe(ids []string) []StepDescriptor {
	out := make([]StepDescriptor, 0, len(ids))
	for _, id := range ids {
		s := stepCatalog[id]
		fields := make([]string, len(s.Fields))
		copy(fields, s.Fields)
		s.Fields = fields
		out = append(out, s)
	}
	return out
}
