package intake

// PositionGoalkeeper is the backend catalog identifier for the goalkeeper
// defensive position.
const PositionGoalkeeper = "goleiro"

// ApplyPositionEligibility enforces the goalkeeper rule on a document copy:
// a goalkeeper carries no offensive positions, so both offensive fields are
// cleared; any other defensive position leaves them untouched.
// PRE: doc may lack an athlete section
// POST: Returned document satisfies OffensivePositionsRequired consistency
func ApplyPositionEligibility(doc FormDocument) FormDocument {
	out := doc.Clone()
	if out.Athlete == nil {
		return out
	}
	if out.Athlete.MainDefensivePositionID == PositionGoalkeeper {
		out.Athlete.MainOffensivePositionID = ""
		out.Athlete.SecondaryOffensivePositionID = ""
	}
	return out
}

// OffensivePositionsRequired reports whether the primary offensive position
// must be filled for the current defensive position.
func OffensivePositionsRequired(doc *FormDocument) bool {
	if doc.Athlete == nil {
		return true
	}
	return doc.Athlete.MainDefensivePositionID != PositionGoalkeeper
}
