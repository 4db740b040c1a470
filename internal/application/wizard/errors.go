package wizard

import "errors"

// RootField is the pseudo-path carrying form-level errors that belong to no
// single field.
const RootField = "_root"

// Controller errors.
var (
	ErrStepInvalid        = errors.New("active step has invalid fields")
	ErrDocumentInvalid    = errors.New("document has invalid fields")
	ErrForwardJump        = errors.New("cannot jump ahead of the current step")
	ErrPersonRequired     = errors.New("person section is required")
	ErrFlowNotImplemented = errors.New("flow is not implemented yet")
)

// FieldErrors maps dotted field paths (or RootField) to messages. A field's
// entry is cleared when the field is edited or revalidates successfully.
type FieldErrors map[string]string

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge copies all entries of other into e.
func (e FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		e[k] = v
	}
}
