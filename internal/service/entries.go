package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Kingsheunn/Diary/internal/apperr"
	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/Kingsheunn/Diary/internal/validate"
)

// EntryStore is the ownership-scoped entry store.
type EntryStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.Entry, error)
	GetForUser(ctx context.Context, userID, id int) (*models.Entry, error)
	Create(ctx context.Context, userID int, title, content string) (*models.Entry, error)
	UpdateForUser(ctx context.Context, userID, id int, title, content string) (*models.Entry, error)
	DeleteForUser(ctx context.Context, userID, id int) (*models.Entry, error)
}

// EntryInput is the request body for creating and replacing an entry.
// Any user_id sent by the client is not part of it and is ignored.
type EntryInput struct {
	Title   string  `json:"title" validate:"required,min=3,max=255"`
	Content *string `json:"content"`
}

const msgEntryNotFound = "Entry does not exist"

// EntryService runs entry operations on behalf of an authenticated user. Entries of
// other users are reported as missing, never as forbidden.
type EntryService struct {
	Store EntryStore
}

func NewEntryService(store EntryStore) *EntryService {
	return &EntryService{Store: store}
}

func (s *EntryService) List(ctx context.Context, userID int) ([]models.Entry, error) {
	entries, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err, "list entries")
	}
	return entries, nil
}

func (s *EntryService) Get(ctx context.Context, userID, id int) (*models.Entry, error) {
	e, err := s.Store.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, entryError(err, "get entry")
	}
	return e, nil
}

func (s *EntryService) Create(ctx context.Context, userID int, in EntryInput) (*models.Entry, error) {
	in.Title = strings.TrimSpace(in.Title)
	if res := validate.Struct(in); !res.OK() {
		return nil, apperr.NewValidation(res.First(), res.Fields)
	}
	content := ""
	if in.Content != nil {
		content = *in.Content
	}

	e, err := s.Store.Create(ctx, userID, in.Title, content)
	if err != nil {
		return nil, apperr.Wrap(err, "create entry")
	}
	return e, nil
}

// Update replaces both title and content; a body without content is rejected.
func (s *EntryService) Update(ctx context.Context, userID, id int, in EntryInput) (*models.Entry, error) {
	in.Title = strings.TrimSpace(in.Title)
	res := validate.Struct(in)
	if in.Content == nil {
		res.Add("content", "required")
	}
	if !res.OK() {
		return nil, apperr.NewValidation(res.First(), res.Fields)
	}

	e, err := s.Store.UpdateForUser(ctx, userID, id, in.Title, *in.Content)
	if err != nil {
		return nil, entryError(err, "update entry")
	}
	return e, nil
}

// Delete removes the entry and returns its state before deletion.
func (s *EntryService) Delete(ctx context.Context, userID, id int) (*models.Entry, error) {
	e, err := s.Store.DeleteForUser(ctx, userID, id)
	if err != nil {
		return nil, entryError(err, "delete entry")
	}
	return e, nil
}

func entryError(err error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NewNotFound(msgEntryNotFound)
	}
	return apperr.Wrap(err, op)
}
