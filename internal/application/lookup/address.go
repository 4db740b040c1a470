package lookup

import (
	"context"
	"log/slog"

	"clubdesk/internal/adapters/cep"
)

// AddressLookup resolves a postal code into a full address.
type AddressLookup interface {
	Lookup(ctx context.Context, code string) (cep.Address, error)
}

// FieldSetter writes one dotted document path (the wizard controller's
// SetField matches it).
type FieldSetter func(path, value string) error

// AutofillerDeps holds dependencies for an Autofiller.
type AutofillerDeps struct {
	Lookup AddressLookup
	Set    FieldSetter
	Logger *slog.Logger
}

// Autofiller fills the address block from a postal code. Lookup failures
// only log; the person keeps typing the address by hand.
type Autofiller struct {
	deps AutofillerDeps
}

// NewAutofiller creates an Autofiller.
func NewAutofiller(deps AutofillerDeps) *Autofiller {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Autofiller{deps: deps}
}

// Apply looks up the code and writes street, neighborhood, city and state.
// The house number is never touched; only the person knows it.
// POST: On lookup failure no field is modified
func (a *Autofiller) Apply(ctx context.Context, code string) {
	addr, err := a.deps.Lookup.Lookup(ctx, code)
	if err != nil {
		a.deps.Logger.Warn("cep_autofill_failed", "cep", code, "error", err)
		return
	}
	fields := []struct{ path, value string }{
		{"person.address.street", addr.Street},
		{"person.address.neighborhood", addr.Neighborhood},
		{"person.address.city", addr.City},
		{"person.address.state", addr.State},
	}
	for _, f := range fields {
		if err := a.deps.Set(f.path, f.value); err != nil {
			a.deps.Logger.Warn("cep_autofill_set_failed", "path", f.path, "error", err)
		}
	}
	a.deps.Logger.Info("cep_autofilled", "cep", code, "city", addr.City)
}
