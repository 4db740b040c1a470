package clubapi

import (
	"context"
	"net/http"

	"clubdesk/internal/domain/intake"
)

// SubmitIntake posts the composed form document to the generic intake
// endpoint. The idempotency key deduplicates retried submissions
// server-side; validateOnly asks the backend to check without persisting.
func (c *Client) SubmitIntake(ctx context.Context, doc intake.FormDocument, idempotencyKey string, validateOnly bool) (intake.Receipt, error) {
	endpoint := "api/intake"
	if validateOnly {
		endpoint += "?validate_only=true"
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	var receipt intake.Receipt
	err := c.do(ctx, http.MethodPost, endpoint, headers, doc, &receipt)
	return receipt, err
}

// CreateTeam creates a team directly, bypassing the generic intake endpoint.
func (c *Client) CreateTeam(ctx context.Context, team intake.Team, idempotencyKey string) (intake.Receipt, error) {
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	var receipt intake.Receipt
	err := c.do(ctx, http.MethodPost, "api/teams", headers, team, &receipt)
	return receipt, err
}

// RequestUploadTicket asks the backend to sign one direct upload to the
// media host. kind names the destination folder policy.
func (c *Client) RequestUploadTicket(ctx context.Context, kind string) (intake.UploadTicket, error) {
	var ticket intake.UploadTicket
	err := c.do(ctx, http.MethodPost, "api/media/upload-ticket", nil, map[string]string{"kind": kind}, &ticket)
	return ticket, err
}
