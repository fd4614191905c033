package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kingsheunn/Diary/internal/models"
)

// UserRepo is the credential store: identities, password hashes and reminder preferences.
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, name, email, password_hash, daily_reminder, reminder_time, weekly_reminder, summary_day, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.DailyReminder, &u.ReminderTime, &u.WeeklyReminder, &u.SummaryDay,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user. The email must already be normalized.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, name, email, passwordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID returns ErrNotFound when no user has the id.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetByEmail returns ErrNotFound when no user has the email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// UpdateProfile sets name and email.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, name, email string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + userColumns

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, name, email, id))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, notFound(err)
	}
	return u, nil
}

// UpdateReminderSettings replaces all four reminder preferences.
func (r *UserRepo) UpdateReminderSettings(ctx context.Context, id int, s models.ReminderSettings) (*models.User, error) {
	query := `
		UPDATE users
		SET daily_reminder = $1, reminder_time = $2, weekly_reminder = $3, summary_day = $4, updated_at = now()
		WHERE id = $5
		RETURNING ` + userColumns

	u, err := scanUser(r.DB.QueryRowContext(ctx, query,
		s.DailyReminder, s.ReminderTime, s.WeeklyReminder, s.SummaryDay, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListWithReminders returns every user with at least one reminder kind enabled.
func (r *UserRepo) ListWithReminders(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE daily_reminder OR weekly_reminder
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
