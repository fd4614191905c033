package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Kingsheunn/Diary/internal/apperr"
	"github.com/Kingsheunn/Diary/internal/auth"
	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/Kingsheunn/Diary/internal/validate"
)

// UserStore is the credential store as seen by account operations.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, name, email string) (*models.User, error)
}

// TokenIssuer issues bearer tokens.
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email,min=5,max=255"`
	Password string `json:"password" validate:"required,min=5,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// ProfileInput updates name and/or email. At least one must be present.
type ProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=3,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

// Session is a user together with a freshly issued token.
type Session struct {
	User  *models.User
	Token string
}

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

type AccountService struct {
	Users     UserStore
	Tokens    TokenIssuer
	Scheduler ScheduleSyncer
	Logger    *slog.Logger
}

// NewAccountService wires account operations. scheduler may be nil when reminders are not running.
func NewAccountService(users UserStore, tokens TokenIssuer, scheduler ScheduleSyncer, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{Users: users, Tokens: tokens, Scheduler: scheduler, Logger: logger}
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	res := validate.Struct(in)
	if res.OK() && len(in.Password) > auth.MaxPasswordBytes {
		res.Add("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes))
	}
	if !res.OK() {
		return nil, apperr.NewValidation(res.First(), res.Fields)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(err, "hash password")
	}
	u, err := s.Users.Create(ctx, in.Name, in.Email, hash)
	if errors.Is(err, repo.ErrEmailTaken) {
		return nil, apperr.NewConflict(msgUserExists)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "create user")
	}
	return s.session(u)
}

// Login fails the same way for an unknown email and a wrong password.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = NormalizeEmail(in.Email)
	if res := validate.Struct(in); !res.OK() {
		return nil, apperr.NewValidation(res.First(), res.Fields)
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		auth.CheckPassword(dummyHash(), in.Password)
		return nil, apperr.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "load user")
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, apperr.NewUnauthorized(msgInvalidCredentials)
	}
	return s.session(u)
}

func (s *AccountService) Profile(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "load user")
	}
	return u, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID int, in ProfileInput) (*models.User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		in.Email = &email
	}
	res := validate.Struct(in)
	if in.Name == nil && in.Email == nil {
		res.Add("body", "name or email is required")
	}
	if !res.OK() {
		return nil, apperr.NewValidation(res.First(), res.Fields)
	}

	current, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, email := current.Name, current.Email
	if in.Name != nil {
		name = *in.Name
	}
	if in.Email != nil {
		email = *in.Email
	}

	u, err := s.Users.UpdateProfile(ctx, userID, name, email)
	switch {
	case errors.Is(err, repo.ErrEmailTaken):
		return nil, apperr.NewConflict(msgUserExists)
	case errors.Is(err, repo.ErrNotFound):
		return nil, apperr.NewNotFound(msgUserNotFound)
	case err != nil:
		return nil, apperr.Wrap(err, "update profile")
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.Sync(ctx, userID); err != nil {
			s.Logger.ErrorContext(ctx, "reminder resync failed", "user_id", userID, "error", err)
		}
	}
	return u, nil
}

func (s *AccountService) session(u *models.User) (*Session, error) {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "issue token")
	}
	return &Session{User: u, Token: token}, nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash keeps login timing similar whether or not the email exists.
func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = auth.HashPassword("diary-login-placeholder")
	})
	return dummy
}
