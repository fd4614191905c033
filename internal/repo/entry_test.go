package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var entryCols = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}

func TestEntryRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, title, content, created_at, updated_at\s+FROM entries\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(2, 7, "Second day", "", now, now).
			AddRow(1, 7, "First day", "hello", now.Add(-time.Hour), now.Add(-time.Hour)))

	r := NewEntryRepo(db)
	list, err := r.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 || !list[1].CreatedAt.Before(list[0].CreatedAt) {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_ListByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM entries`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(entryCols))

	r := NewEntryRepo(db)
	list, err := r.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_GetForUser_ScopedByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Entry 5 exists but belongs to another user: the scoped query returns nothing.
	mock.ExpectQuery(`FROM entries WHERE id = \$1 AND user_id = \$2`).
		WithArgs(5, 2).
		WillReturnRows(sqlmock.NewRows(entryCols))

	r := NewEntryRepo(db)
	_, err = r.GetForUser(context.Background(), 2, 5)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO entries \(user_id, title, content\)`).
		WithArgs(3, "Dear diary", "today").
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(10, 3, "Dear diary", "today", now, now))

	r := NewEntryRepo(db)
	e, err := r.Create(context.Background(), 3, "Dear diary", "today")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 10 || e.UserID != 3 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_UpdateForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE entries\s+SET title = \$1, content = \$2, updated_at = now\(\)\s+WHERE id = \$3 AND user_id = \$4`).
		WithArgs("New title", "", 10, 3).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(10, 3, "New title", "", now, now))

	r := NewEntryRepo(db)
	e, err := r.UpdateForUser(context.Background(), 3, 10, "New title", "")
	if err != nil {
		t.Fatalf("UpdateForUser: %v", err)
	}
	if e.Title != "New title" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_DeleteForUser_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM entries WHERE id = \$1 AND user_id = \$2 RETURNING`).
		WithArgs(10, 4).
		WillReturnRows(sqlmock.NewRows(entryCols))

	r := NewEntryRepo(db)
	if _, err := r.DeleteForUser(context.Background(), 4, 10); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEntryRepo_CountSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	since := time.Now().Add(-7 * 24 * time.Hour)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM entries WHERE user_id = \$1 AND created_at >= \$2`).
		WithArgs(3, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	r := NewEntryRepo(db)
	n, err := r.CountSince(context.Background(), 3, since)
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
