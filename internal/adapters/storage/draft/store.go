package draft

import (
	"context"

	"clubdesk/internal/domain/intake"
)

// Store persists wizard drafts: one whole document per fixed name.
type Store interface {
	Load(ctx context.Context, name string) (intake.FormDocument, bool, error)
	Save(ctx context.Context, name string, doc intake.FormDocument) error
	Clear(ctx context.Context, name string) error
}
