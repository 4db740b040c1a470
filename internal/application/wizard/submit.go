package wizard

import (
	"context"
	"fmt"

	"clubdesk/internal/adapters/email"
	"clubdesk/internal/domain/intake"
)

// Upload ticket kinds the backend recognizes.
const (
	uploadKindProfilePhoto = "profile_photo"
	uploadKindOrgLogo      = "organization_logo"
)

// Submit revalidates the whole document and runs the submission pipeline.
// On success the stored draft is cleared, a confirmation mail is attempted
// for the user flow and the wizard state is reset. On failure every entered
// value and the review position are kept, and backend errors are translated
// into field or root errors.
func (c *Controller) Submit(ctx context.Context) (intake.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if errs := ValidateDocument(&c.doc); len(errs) > 0 {
		c.errs = errs
		return intake.Receipt{}, fmt.Errorf("%w: first invalid field %s", ErrDocumentInvalid, c.firstInvalidLocked())
	}

	// Drain the pending autosave so the stored draft is current while the
	// request is in flight. An edit racing the request remains possible,
	// matching the source system.
	c.autosave.Flush()

	receipt, err := c.runPipelineLocked(ctx, false)
	if err != nil {
		c.errs.Merge(TranslateSubmitError(err))
		return intake.Receipt{}, err
	}

	if c.deps.Drafts != nil {
		if clearErr := c.deps.Drafts.Clear(ctx, c.deps.DraftName); clearErr != nil {
			c.deps.Logger.Warn("draft_clear_failed", "name", c.deps.DraftName, "error", clearErr)
		}
	}
	c.sendConfirmationLocked(ctx)
	c.deps.Logger.Info("intake_submitted", "receipt_id", receipt.ID, "flow", c.doc.FlowType)

	c.doc = intake.FormDocument{}
	c.stepIdx = 0
	c.errs = FieldErrors{}
	return receipt, nil
}

// DryRun follows the same validation path as Submit but asks the backend to
// validate only. The draft is never cleared and no side effects run.
func (c *Controller) DryRun(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if errs := ValidateDocument(&c.doc); len(errs) > 0 {
		c.errs = errs
		return fmt.Errorf("%w: first invalid field %s", ErrDocumentInvalid, c.firstInvalidLocked())
	}
	if _, err := c.runPipelineLocked(ctx, true); err != nil {
		c.errs.Merge(TranslateSubmitError(err))
		return err
	}
	return nil
}

// runPipelineLocked is the sequential, short-circuiting submission pipeline.
// Uploads are skipped in validate-only mode. There is no compensating
// rollback: an uploaded photo stays uploaded when a later step fails.
func (c *Controller) runPipelineLocked(ctx context.Context, validateOnly bool) (intake.Receipt, error) {
	isStaff := c.doc.FlowType == intake.FlowStaff

	// Flows that post the generic payload are person-centric.
	if !isStaff && c.doc.Person == nil {
		c.errs[RootField] = "personal data is missing"
		return intake.Receipt{}, ErrPersonRequired
	}

	if !validateOnly {
		if c.doc.Person != nil && intake.IsInlineImage(c.doc.Person.Media.ProfilePhotoURL) {
			url, err := c.uploadMediaLocked(ctx, uploadKindProfilePhoto, c.doc.Person.Media.ProfilePhotoURL)
			if err != nil {
				return intake.Receipt{}, err
			}
			c.doc.Person.Media.ProfilePhotoURL = url
		}
		if c.doc.Organization != nil && intake.IsInlineImage(c.doc.Organization.Media.LogoURL) {
			url, err := c.uploadMediaLocked(ctx, uploadKindOrgLogo, c.doc.Organization.Media.LogoURL)
			if err != nil {
				return intake.Receipt{}, err
			}
			c.doc.Organization.Media.LogoURL = url
		}
	}

	switch {
	case isStaff && c.doc.StaffChoice == intake.StaffChoiceTeam:
		// Team creation bypasses the generic intake endpoint.
		if validateOnly {
			return intake.Receipt{}, nil
		}
		return c.deps.Backend.CreateTeam(ctx, *c.doc.Team, c.idemKey)
	case isStaff:
		return intake.Receipt{}, fmt.Errorf("staff %s creation: %w", c.doc.StaffChoice, ErrFlowNotImplemented)
	default:
		return c.deps.Backend.SubmitIntake(ctx, c.doc.Clone(), c.idemKey, validateOnly)
	}
}

// uploadMediaLocked swaps one inline image for a remote URL via a signed
// upload ticket.
func (c *Controller) uploadMediaLocked(ctx context.Context, kind, dataURI string) (string, error) {
	ticket, err := c.deps.Backend.RequestUploadTicket(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("request %s upload ticket: %w", kind, err)
	}
	url, err := c.deps.Uploader.Upload(ctx, ticket, dataURI)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", kind, err)
	}
	c.deps.Logger.Info("media_uploaded", "kind", kind, "url", url)
	return url, nil
}

// sendConfirmationLocked mails the person after a successful user-flow
// submission. Failures only log; the submission already succeeded.
func (c *Controller) sendConfirmationLocked(ctx context.Context) {
	if c.deps.Email == nil || c.doc.FlowType != intake.FlowUser {
		return
	}
	if c.doc.Person == nil || c.doc.Person.Email == "" {
		return
	}
	req := email.SendRequest{
		To:      []string{c.doc.Person.Email},
		Subject: "Cadastro recebido",
		HTML: fmt.Sprintf("<p>Olá %s,</p><p>Recebemos seu cadastro e ele está em análise. Você receberá um aviso quando for aprovado.</p>",
			c.doc.Person.FullName),
	}
	if _, err := c.deps.Email.Send(ctx, req); err != nil {
		c.deps.Logger.Warn("confirmation_send_failed", "to", c.doc.Person.Email, "error", err)
	}
}
