package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Kingsheunn/Diary/internal/models"
)

// EntryRepo persists diary entries. Every read and write is filtered by the owning user,
// so an entry of another user behaves exactly like a missing one.
type EntryRepo struct {
	DB *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{DB: db}
}

const entryColumns = `id, user_id, title, content, created_at, updated_at`

func scanEntry(row scanner) (*models.Entry, error) {
	e := &models.Entry{}
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByUser returns the user's entries, newest first. Never returns a nil slice.
func (r *EntryRepo) ListByUser(ctx context.Context, userID int) ([]models.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetForUser returns ErrNotFound when the entry is missing or owned by someone else.
func (r *EntryRepo) GetForUser(ctx context.Context, userID, id int) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Create inserts an entry owned by userID.
func (r *EntryRepo) Create(ctx context.Context, userID int, title, content string) (*models.Entry, error) {
	query := `
		INSERT INTO entries (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + entryColumns

	return scanEntry(r.DB.QueryRowContext(ctx, query, userID, title, content))
}

// UpdateForUser replaces title and content of an owned entry.
func (r *EntryRepo) UpdateForUser(ctx context.Context, userID, id int, title, content string) (*models.Entry, error) {
	query := `
		UPDATE entries
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + entryColumns

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, title, content, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// DeleteForUser removes an owned entry and returns its last state.
func (r *EntryRepo) DeleteForUser(ctx context.Context, userID, id int) (*models.Entry, error) {
	query := `DELETE FROM entries WHERE id = $1 AND user_id = $2 RETURNING ` + entryColumns

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// CountSince counts the user's entries created at or after since.
func (r *EntryRepo) CountSince(ctx context.Context, userID int, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&n)
	return n, err
}
