package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/repo"
)

type memEntries struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]models.Entry
	err     error
}

func newMemEntries() *memEntries {
	return &memEntries{entries: make(map[int]models.Entry)}
}

func (m *memEntries) ListByUser(ctx context.Context, userID int) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Entry{}
	for id := m.nextID; id > 0; id-- {
		if e, ok := m.entries[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries) GetForUser(ctx context.Context, userID, id int) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (m *memEntries) Create(ctx context.Context, userID int, title, content string) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	now := time.Now()
	e := models.Entry{ID: m.nextID, UserID: userID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	m.entries[e.ID] = e
	return &e, nil
}

func (m *memEntries) UpdateForUser(ctx context.Context, userID, id int, title, content string) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	e.Title, e.Content, e.UpdatedAt = title, content, time.Now()
	m.entries[id] = e
	return &e, nil
}

func (m *memEntries) DeleteForUser(ctx context.Context, userID, id int) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repo.ErrNotFound
	}
	delete(m.entries, id)
	return &e, nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int
	users  map[int]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int]models.User)}
}

func (m *memUsers) Create(ctx context.Context, name, email, hash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, repo.ErrEmailTaken
		}
	}
	m.nextID++
	u := models.User{
		ID: m.nextID, Name: name, Email: email, PasswordHash: hash,
		ReminderSettings: models.ReminderSettings{
			ReminderTime: models.DefaultReminderTime, SummaryDay: models.DefaultSummaryDay,
		},
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdateProfile(ctx context.Context, id int, name, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != id && u.Email == email {
			return nil, repo.ErrEmailTaken
		}
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Name, u.Email = name, email
	m.users[id] = u
	return &u, nil
}

func (m *memUsers) UpdateReminderSettings(ctx context.Context, id int, s models.ReminderSettings) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.ReminderSettings = s
	m.users[id] = u
	return &u, nil
}

type stubTokens struct{ err error }

func (s stubTokens) Issue(userID int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + string(rune('0'+userID)), nil
}

type recordingSyncer struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (r *recordingSyncer) Sync(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, userID)
	return r.err
}

var errDB = errors.New("connection refused")
