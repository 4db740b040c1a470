package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"clubdesk/internal/domain/intake"
)

// SQLiteStore implements Store over a local SQLite database. The document is
// stored as one JSON blob per draft name, overwritten on every save.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new draft store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the draft stored under name.
// PRE: name is non-empty
// POST: Returns (doc, true) when a draft exists; (zero, false) otherwise
func (s *SQLiteStore) Load(ctx context.Context, name string) (intake.FormDocument, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT document FROM draft WHERE name = ?", name)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return intake.FormDocument{}, false, nil
	}
	if err != nil {
		return intake.FormDocument{}, false, err
	}

	var doc intake.FormDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return intake.FormDocument{}, false, fmt.Errorf("draft %q is corrupt: %w", name, err)
	}
	return doc, true, nil
}

// Save upserts the draft under name, replacing any previous document.
// PRE: name is non-empty
// POST: A later Load returns an equivalent document
func (s *SQLiteStore) Save(ctx context.Context, name string, doc intake.FormDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode draft %q: %w", name, err)
	}

	query := `INSERT INTO draft (name, document, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at`
	_, err = s.db.ExecContext(ctx, query, name, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Clear removes the draft stored under name. Clearing a missing draft is not
// an error.
func (s *SQLiteStore) Clear(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM draft WHERE name = ?", name)
	return err
}
