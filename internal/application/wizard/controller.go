package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/domain/flow"
	"clubdesk/internal/domain/intake"
)

// Defaults for draft persistence.
const (
	DefaultDraftName     = "intake_wizard_draft"
	DefaultAutosaveDelay = time.Second
)

// DraftStore persists the whole document as one blob under a fixed name.
type DraftStore interface {
	Load(ctx context.Context, name string) (intake.FormDocument, bool, error)
	Save(ctx context.Context, name string, doc intake.FormDocument) error
	Clear(ctx context.Context, name string) error
}

// Backend is the club API surface the submission pipeline needs.
type Backend interface {
	SubmitIntake(ctx context.Context, doc intake.FormDocument, idempotencyKey string, validateOnly bool) (intake.Receipt, error)
	CreateTeam(ctx context.Context, team intake.Team, idempotencyKey string) (intake.Receipt, error)
	RequestUploadTicket(ctx context.Context, kind string) (intake.UploadTicket, error)
}

// Uploader pushes one inline-encoded image to the media host and returns
// the permanent URL.
type Uploader interface {
	Upload(ctx context.Context, ticket intake.UploadTicket, dataURI string) (string, error)
}

// Deps holds dependencies for the Controller.
type Deps struct {
	Drafts   DraftStore
	Backend  Backend
	Uploader Uploader
	Email    email.Sender // optional; nil disables confirmation mail
	Logger   *slog.Logger

	DraftName     string
	AutosaveDelay time.Duration
}

// Controller owns WizardState: the current step index, the form document and
// the field errors. Hosts read snapshots and request mutations through its
// methods only.
type Controller struct {
	mu       sync.Mutex
	deps     Deps
	doc      intake.FormDocument
	stepIdx  int
	errs     FieldErrors
	idemKey  string
	autosave *debouncer
}

// New creates a Controller and rehydrates an existing draft, which replaces
// the empty initial document wholesale (last write wins, no merge).
// PRE: deps.Backend and deps.Uploader are set when Submit/DryRun will be used
// POST: Controller is at step 0 with a fresh idempotency key
func New(ctx context.Context, deps Deps) (*Controller, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.DraftName == "" {
		deps.DraftName = DefaultDraftName
	}
	if deps.AutosaveDelay <= 0 {
		deps.AutosaveDelay = DefaultAutosaveDelay
	}

	c := &Controller{
		deps:     deps,
		errs:     FieldErrors{},
		idemKey:  uuid.New().String(),
		autosave: newDebouncer(deps.AutosaveDelay),
	}

	if deps.Drafts != nil {
		stored, ok, err := deps.Drafts.Load(ctx, deps.DraftName)
		switch {
		case err != nil:
			// A broken draft must not block a fresh wizard.
			deps.Logger.Warn("draft_load_failed", "name", deps.DraftName, "error", err)
		case ok:
			c.doc = stored
			deps.Logger.Info("draft_restored", "name", deps.DraftName)
		}
	}
	return c, nil
}

// Close flushes nothing and stops the autosave timer.
func (c *Controller) Close() {
	c.autosave.Stop()
}

// Document returns a snapshot of the form document.
func (c *Controller) Document() intake.FormDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Steps returns the step list of the currently active flow variant.
func (c *Controller) Steps() []flow.StepDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flow.Resolve(&c.doc)
}

// StepIndex returns the current step index.
func (c *Controller) StepIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepIdx
}

// CurrentStep returns the active step descriptor.
func (c *Controller) CurrentStep() flow.StepDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flow.Resolve(&c.doc)[c.stepIdx]
}

// Errors returns a snapshot of the current field errors.
func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.Clone()
}

// SetField mutates one field, clears its error, re-applies the position
// eligibility rule and schedules a debounced draft save.
func (c *Controller) SetField(path, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.doc.SetField(path, value); err != nil {
		return err
	}
	delete(c.errs, path)
	delete(c.errs, RootField)
	c.doc = intake.ApplyPositionEligibility(c.doc)

	// Changing a discriminator can shrink the active variant.
	c.clampStepLocked()
	c.scheduleAutosaveLocked()
	return nil
}

// SeedFromQuery pre-selects the flow from deep-link query parameters
// (flowType, staffChoice, role). Unknown values are ignored.
func (c *Controller) SeedFromQuery(values url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch values.Get("flowType") {
	case intake.FlowStaff:
		c.doc.FlowType = intake.FlowStaff
	case intake.FlowUser:
		c.doc.FlowType = intake.FlowUser
	}
	switch values.Get("staffChoice") {
	case intake.StaffChoiceSeason, intake.StaffChoiceOrganization, intake.StaffChoiceTeam:
		c.doc.StaffChoice = values.Get("staffChoice")
	}
	switch values.Get("role") {
	case intake.RoleAthlete, intake.RoleCoach, intake.RoleCoordinator, intake.RoleDirector:
		c.doc.UserRole = values.Get("role")
	}
	c.clampStepLocked()
}

// Advance validates only the active step's declared fields. On failure the
// step index is unchanged and the errors are recorded for the host to show.
// Calling on the last step is a no-op.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := flow.Resolve(&c.doc)
	if c.stepIdx >= len(steps)-1 {
		return nil
	}

	step := steps[c.stepIdx]
	stepErrs := ValidateStep(&c.doc, step)
	if len(stepErrs) > 0 {
		c.errs.Merge(stepErrs)
		c.deps.Logger.Info("step_blocked", "step", step.ID, "invalid_fields", len(stepErrs))
		return fmt.Errorf("step %s: %w", step.ID, ErrStepInvalid)
	}
	for _, path := range step.Fields {
		delete(c.errs, path)
	}
	c.stepIdx++
	return nil
}

// Retreat moves one step back, floored at 0. No validation.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stepIdx > 0 {
		c.stepIdx--
	}
}

// GoTo jumps to an already-visited step. Forward jumps are rejected.
func (c *Controller) GoTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index > c.stepIdx {
		return fmt.Errorf("step %d: %w", index, ErrForwardJump)
	}
	c.stepIdx = index
	return nil
}

// Reset discards the document, errors and stored draft.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = intake.FormDocument{}
	c.stepIdx = 0
	c.errs = FieldErrors{}
	if c.deps.Drafts != nil {
		return c.deps.Drafts.Clear(ctx, c.deps.DraftName)
	}
	return nil
}

// FirstInvalidPath returns the first errored path in step/field order, so
// hosts can focus and scroll to it. Returns RootField for form-level errors
// and "" when there are none.
func (c *Controller) FirstInvalidPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.firstInvalidLocked()
}

func (c *Controller) firstInvalidLocked() string {
	for _, step := range flow.Resolve(&c.doc) {
		for _, path := range step.Fields {
			if _, ok := c.errs[path]; ok {
				return path
			}
		}
	}
	if _, ok := c.errs[RootField]; ok {
		return RootField
	}
	for path := range c.errs {
		return path
	}
	return ""
}

// clampStepLocked keeps the index inside the active variant.
func (c *Controller) clampStepLocked() {
	if n := len(flow.Resolve(&c.doc)); c.stepIdx >= n {
		c.stepIdx = n - 1
	}
}

// scheduleAutosaveLocked arms the debounced draft write with a snapshot of
// the current document. Re-triggering replaces the snapshot, so only the
// last state of a keystroke burst is written.
func (c *Controller) scheduleAutosaveLocked() {
	if c.deps.Drafts == nil {
		return
	}
	snapshot := c.doc.Clone()
	name := c.deps.DraftName
	store := c.deps.Drafts
	logger := c.deps.Logger
	c.autosave.Trigger(func() {
		if err := store.Save(context.Background(), name, snapshot); err != nil {
			logger.Warn("draft_save_failed", "name", name, "error", err)
		}
	})
}
