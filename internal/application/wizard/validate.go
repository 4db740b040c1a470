package wizard

import (
	"strings"
	"time"

	"clubdesk/internal/domain/brdoc"
	"clubdesk/internal/domain/flow"
	"clubdesk/internal/domain/intake"
)

// Paths that may stay empty even when their step declares them.
var optionalPaths = map[string]bool{
	"athlete.secondary_offensive_position_id": true,
	"athlete.jersey_number":                   true,
	"person.address.number":                   true,
	"person.address.neighborhood":             true,
	"person.media.profile_photo_url":          true,
	"organization.media.logo_url":             true,
	"team.gender":                             true,
	"team.organization_id":                    true,
}

const minPasswordLength = 8

// ValidateStep validates only the paths the step declares.
// PRE: step comes from flow.Resolve on the same document
// POST: Empty result means the step may be advanced past
func ValidateStep(doc *intake.FormDocument, step flow.StepDescriptor) FieldErrors {
	errs := FieldErrors{}
	for _, path := range step.Fields {
		if msg := validateField(doc, path); msg != "" {
			errs[path] = msg
		}
	}
	return errs
}

// ValidateDocument validates every field of the active flow variant plus
// cross-field invariants. Used by Submit and DryRun.
func ValidateDocument(doc *intake.FormDocument) FieldErrors {
	errs := FieldErrors{}
	if err := doc.Validate(); err != nil {
		errs[RootField] = err.Error()
	}
	for _, step := range flow.Resolve(doc) {
		for _, path := range step.Fields {
			if msg := validateField(doc, path); msg != "" {
				errs[path] = msg
			}
		}
	}
	if doc.Registration != nil && len(doc.Registration.Focus) > 0 {
		if err := intake.ValidateFocus(doc.Registration.Focus); err != nil {
			errs["registration.focus"] = err.Error()
		}
	}
	return errs
}

// validateField applies the required rule and the per-path format rule.
// Returns "" when the field is acceptable.
func validateField(doc *intake.FormDocument, path string) string {
	value, err := doc.Field(path)
	if err != nil {
		return "unknown field"
	}
	value = strings.TrimSpace(value)

	if value == "" {
		if fieldRequired(doc, path) {
			return "required"
		}
		return ""
	}

	switch path {
	case "person.cpf":
		if !brdoc.ValidCPF(value) {
			return "invalid CPF"
		}
	case "person.email", "user.email":
		if !strings.Contains(value, "@") {
			return "invalid email"
		}
	case "person.address.cep":
		if !brdoc.ValidCEP(value) {
			return "invalid CEP"
		}
	case "person.phone":
		if !brdoc.ValidPhone(value) {
			return "invalid phone"
		}
	case "person.birth_date", "season.start_date", "season.end_date":
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "invalid date, use YYYY-MM-DD"
		}
	case "user.password":
		if len(value) < minPasswordLength {
			return "password too short"
		}
	}
	return ""
}

// fieldRequired reports whether an empty value fails the path. The athlete
// primary offensive position tracks the goalkeeper eligibility rule.
func fieldRequired(doc *intake.FormDocument, path string) bool {
	if path == "athlete.main_offensive_position_id" {
		return intake.OffensivePositionsRequired(doc)
	}
	return !optionalPaths[path]
}
