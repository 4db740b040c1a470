package wizard_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/application/wizard"
	"clubdesk/internal/domain/intake"
)

// fakeBackend records calls and delegates to overridable funcs.
type fakeBackend struct {
	mu          sync.Mutex
	submitKeys  []string
	submitDocs  []intake.FormDocument
	teamKeys    []string
	ticketKinds []string

	submitFn func(doc intake.FormDocument, validateOnly bool) (intake.Receipt, error)
	teamFn   func(team intake.Team) (intake.Receipt, error)
}

func (b *fakeBackend) SubmitIntake(ctx context.Context, doc intake.FormDocument, key string, validateOnly bool) (intake.Receipt, error) {
	b.mu.Lock()
	b.submitKeys = append(b.submitKeys, key)
	b.submitDocs = append(b.submitDocs, doc)
	b.mu.Unlock()
	if b.submitFn != nil {
		return b.submitFn(doc, validateOnly)
	}
	return intake.Receipt{ID: "rec-1", Status: "pending"}, nil
}

func (b *fakeBackend) CreateTeam(ctx context.Context, team intake.Team, key string) (intake.Receipt, error) {
	b.mu.Lock()
	b.teamKeys = append(b.teamKeys, key)
	b.mu.Unlock()
	if b.teamFn != nil {
		return b.teamFn(team)
	}
	return intake.Receipt{ID: "team-1", Status: "created"}, nil
}

func (b *fakeBackend) RequestUploadTicket(ctx context.Context, kind string) (intake.UploadTicket, error) {
	b.mu.Lock()
	b.ticketKinds = append(b.ticketKinds, kind)
	b.mu.Unlock()
	return intake.UploadTicket{UploadURL: "https://media.example/upload", Signature: "sig"}, nil
}

// fakeUploader returns a deterministic remote URL per upload.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (u *fakeUploader) Upload(ctx context.Context, ticket intake.UploadTicket, dataURI string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, dataURI)
	return fmt.Sprintf("https://media.example/asset-%d.png", len(u.uploads)), nil
}

// fakeSender records confirmation mails.
type fakeSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
}

func (s *fakeSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "msg-1"}, nil
}

// validCPF has correct check digits.
const validCPF = "529.982.247-25"

func fillAthleteDoc(t *testing.T, c *wizard.Controller) {
	t.Helper()
	fields := []struct{ path, value string }{
		{"flow_type", intake.FlowUser},
		{"user_role", intake.RoleAthlete},
		{"registration.season_id", "season-1"},
		{"registration.organization_id", "org-1"},
		{"person.full_name", "Ana Souza"},
		{"person.birth_date", "2001-03-14"},
		{"person.cpf", validCPF},
		{"person.rg", "12.345.678-9"},
		{"person.email", "ana@example.com"},
		{"person.phone", "(11) 98765-4321"},
		{"person.address.cep", "01310-100"},
		{"person.address.street", "Avenida Paulista"},
		{"person.address.city", "São Paulo"},
		{"person.address.state", "SP"},
		{"athlete.main_defensive_position_id", "fixo"},
		{"athlete.main_offensive_position_id", "pivô"},
		{"user.email", "ana@example.com"},
		{"user.password", "segredo-forte"},
	}
	for _, f := range fields {
		mustSet(t, c, f.path, f.value)
	}
}

// TestSubmitUserFlowUploadsAndResets covers the happy path: the inline photo
// is swapped for a remote URL before the single intake post, the draft is
// cleared, a confirmation mail goes out and the wizard resets.
func TestSubmitUserFlowUploadsAndResets(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	uploader := &fakeUploader{}
	sender := &fakeSender{}
	store := newMemDraftStore()

	c := newController(t, wizard.Deps{Drafts: store, Backend: backend, Uploader: uploader, Email: sender})
	fillAthleteDoc(t, c)
	mustSet(t, c, "person.media.profile_photo_url", "data:image/png;base64,aGVsbG8=")

	receipt, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if receipt.ID != "rec-1" {
		t.Errorf("receipt id = %q, want rec-1", receipt.ID)
	}

	if len(uploader.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(uploader.uploads))
	}
	if len(backend.ticketKinds) != 1 || backend.ticketKinds[0] != "profile_photo" {
		t.Errorf("ticket kinds = %v, want [profile_photo]", backend.ticketKinds)
	}
	if len(backend.submitDocs) != 1 {
		t.Fatalf("submits = %d, want 1", len(backend.submitDocs))
	}
	sent := backend.submitDocs[0]
	if got := sent.Person.Media.ProfilePhotoURL; !strings.HasPrefix(got, "https://") {
		t.Errorf("submitted photo url = %q, want a remote URL", got)
	}
	if backend.submitKeys[0] == "" {
		t.Error("idempotency key was empty")
	}

	if _, ok := store.stored(wizard.DefaultDraftName); ok {
		t.Error("draft not cleared after success")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("confirmation mails = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].To[0] != "ana@example.com" || sender.sent[0].Subject != "Cadastro recebido" {
		t.Errorf("confirmation mail = %+v", sender.sent[0])
	}

	if doc := c.Document(); doc.FlowType != "" || doc.Person != nil {
		t.Errorf("wizard not reset after success: %+v", doc)
	}
	if got := c.StepIndex(); got != 0 {
		t.Errorf("index after success = %d, want 0", got)
	}
}

// TestSubmitStaffTeamBypassesIntake verifies the team branch posts to the
// team endpoint and never to the generic one.
func TestSubmitStaffTeamBypassesIntake(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	c := newController(t, wizard.Deps{Backend: backend})

	mustSet(t, c, "flow_type", intake.FlowStaff)
	mustSet(t, c, "staff_choice", intake.StaffChoiceTeam)
	mustSet(t, c, "team.name", "Sub-17")
	mustSet(t, c, "team.category", "sub-17")

	receipt, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if receipt.ID != "team-1" {
		t.Errorf("receipt id = %q, want team-1", receipt.ID)
	}
	if len(backend.teamKeys) != 1 {
		t.Errorf("team creates = %d, want 1", len(backend.teamKeys))
	}
	if len(backend.submitKeys) != 0 {
		t.Errorf("generic intake was called %d times for a team flow", len(backend.submitKeys))
	}
}

// TestSubmitStaffSeasonNotImplemented verifies the unbuilt staff branches
// fail with a root error instead of posting anything.
func TestSubmitStaffSeasonNotImplemented(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	c := newController(t, wizard.Deps{Backend: backend})

	mustSet(t, c, "flow_type", intake.FlowStaff)
	mustSet(t, c, "staff_choice", intake.StaffChoiceSeason)
	mustSet(t, c, "season.name", "Temporada 2026")
	mustSet(t, c, "season.start_date", "2026-01-01")
	mustSet(t, c, "season.end_date", "2026-12-20")

	_, err := c.Submit(ctx)
	if !errors.Is(err, wizard.ErrFlowNotImplemented) {
		t.Fatalf("err = %v, want ErrFlowNotImplemented", err)
	}
	if msg := c.Errors()[wizard.RootField]; msg == "" {
		t.Error("no root error recorded")
	}
	if len(backend.submitKeys)+len(backend.teamKeys) != 0 {
		t.Error("backend was called for an unimplemented branch")
	}
}

// TestSubmitRetryReusesIdempotencyKey verifies a failed submit retried after
// the backend recovers carries the same key, so the backend can deduplicate.
func TestSubmitRetryReusesIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	calls := 0
	backend := &fakeBackend{}
	backend.submitFn = func(doc intake.FormDocument, validateOnly bool) (intake.Receipt, error) {
		calls++
		if calls == 1 {
			return intake.Receipt{}, errors.New("backend unavailable")
		}
		return intake.Receipt{ID: "rec-2"}, nil
	}
	c := newController(t, wizard.Deps{Backend: backend, Uploader: &fakeUploader{}})
	fillAthleteDoc(t, c)

	if _, err := c.Submit(ctx); err == nil {
		t.Fatal("first submit should have failed")
	}
	if doc := c.Document(); doc.Person == nil || doc.Person.FullName != "Ana Souza" {
		t.Fatal("entered values were lost on failure")
	}
	if _, err := c.Submit(ctx); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(backend.submitKeys) != 2 || backend.submitKeys[0] != backend.submitKeys[1] {
		t.Errorf("keys = %v, want the same key twice", backend.submitKeys)
	}
}

// TestSubmitConflictMapsToField verifies backend uniqueness conflicts land
// on the matching field and state is preserved.
func TestSubmitConflictMapsToField(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	backend.submitFn = func(doc intake.FormDocument, validateOnly bool) (intake.Receipt, error) {
		return intake.Receipt{}, errors.New(`club api: status=409 body={"errors":["RG já cadastrado"]}`)
	}
	c := newController(t, wizard.Deps{Backend: backend, Uploader: &fakeUploader{}})
	fillAthleteDoc(t, c)

	if _, err := c.Submit(ctx); err == nil {
		t.Fatal("submit should have failed")
	}
	if msg := c.Errors()["person.rg"]; !strings.Contains(msg, "já cadastrado") {
		t.Errorf("person.rg error = %q, want the backend message", msg)
	}
	if doc := c.Document(); doc.Person == nil {
		t.Error("document was reset on failure")
	}
}

// TestDryRunValidatesWithoutSideEffects verifies validate-only mode keeps
// the draft, skips uploads and flags the backend call.
func TestDryRunValidatesWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	var sawValidateOnly bool
	backend := &fakeBackend{}
	backend.submitFn = func(doc intake.FormDocument, validateOnly bool) (intake.Receipt, error) {
		sawValidateOnly = validateOnly
		return intake.Receipt{}, nil
	}
	uploader := &fakeUploader{}
	store := newMemDraftStore()
	store.docs[wizard.DefaultDraftName] = intake.FormDocument{FlowType: intake.FlowUser}

	c := newController(t, wizard.Deps{Drafts: store, Backend: backend, Uploader: uploader})
	fillAthleteDoc(t, c)
	mustSet(t, c, "person.media.profile_photo_url", "data:image/png;base64,aGVsbG8=")

	if err := c.DryRun(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !sawValidateOnly {
		t.Error("backend was not asked for validate-only")
	}
	if len(uploader.uploads) != 0 {
		t.Errorf("uploads = %d, want 0 in validate-only mode", len(uploader.uploads))
	}
	if _, ok := store.stored(wizard.DefaultDraftName); !ok {
		t.Error("dry run cleared the draft")
	}
	if doc := c.Document(); doc.Person == nil {
		t.Error("dry run reset the document")
	}
}

// TestSubmitGoalkeeperNeedsNoOffense pins the eligibility rule end to end:
// a goalkeeper submits with empty offensive positions, anyone else cannot.
func TestSubmitGoalkeeperNeedsNoOffense(t *testing.T) {
	ctx := context.Background()

	c := newController(t, wizard.Deps{Backend: &fakeBackend{}, Uploader: &fakeUploader{}})
	fillAthleteDoc(t, c)
	mustSet(t, c, "athlete.main_defensive_position_id", intake.PositionGoalkeeper)
	if _, err := c.Submit(ctx); err != nil {
		t.Fatalf("goalkeeper submit failed: %v", err)
	}

	c2 := newController(t, wizard.Deps{Backend: &fakeBackend{}, Uploader: &fakeUploader{}})
	fillAthleteDoc(t, c2)
	mustSet(t, c2, "athlete.main_offensive_position_id", "")
	_, err := c2.Submit(ctx)
	if !errors.Is(err, wizard.ErrDocumentInvalid) {
		t.Fatalf("err = %v, want ErrDocumentInvalid", err)
	}
	if msg := c2.Errors()["athlete.main_offensive_position_id"]; msg != "required" {
		t.Errorf("offensive position error = %q, want required", msg)
	}
}
