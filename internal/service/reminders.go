package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Kingsheunn/Diary/internal/apperr"
	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/Kingsheunn/Diary/internal/validate"
)

// ReminderStore reads and writes reminder preferences.
type ReminderStore interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateReminderSettings(ctx context.Context, id int, s models.ReminderSettings) (*models.User, error)
}

// ScheduleSyncer re-derives the reminder jobs of one user.
type ScheduleSyncer interface {
	Sync(ctx context.Context, userID int) error
}

// ReminderInput is the PUT /reminder body. Omitted time or day keep their current value.
type ReminderInput struct {
	DailyReminder  *bool   `json:"daily_reminder" validate:"required"`
	ReminderTime   *string `json:"reminder_time" validate:"omitempty,datetime=15:04"`
	WeeklyReminder *bool   `json:"weekly_reminder" validate:"required"`
	SummaryDay     *int    `json:"summary_day" validate:"omitempty,min=1,max=7"`
}

type ReminderService struct {
	Store     ReminderStore
	Scheduler ScheduleSyncer
	Logger    *slog.Logger
}

func NewReminderService(store ReminderStore, scheduler ScheduleSyncer, logger *slog.Logger) *ReminderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{Store: store, Scheduler: scheduler, Logger: logger}
}

func (s *ReminderService) Get(ctx context.Context, userID int) (models.ReminderSettings, error) {
	u, err := s.Store.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.ReminderSettings{}, apperr.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return models.ReminderSettings{}, apperr.Wrap(err, "load reminder settings")
	}
	return u.ReminderSettings, nil
}

// Set persists the preferences, then replaces the user's scheduled jobs. A failed
// resync is logged only: the stored preferences are picked up by the next rebuild.
func (s *ReminderService) Set(ctx context.Context, userID int, in ReminderInput) (models.ReminderSettings, error) {
	if res := validate.Struct(in); !res.OK() {
		return models.ReminderSettings{}, apperr.NewValidation(res.First(), res.Fields)
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return models.ReminderSettings{}, err
	}
	settings.DailyReminder = *in.DailyReminder
	settings.WeeklyReminder = *in.WeeklyReminder
	if in.ReminderTime != nil {
		t, _ := time.Parse("15:04", *in.ReminderTime)
		settings.ReminderTime = t.Format("15:04")
	}
	if in.SummaryDay != nil {
		settings.SummaryDay = *in.SummaryDay
	}

	u, err := s.Store.UpdateReminderSettings(ctx, userID, settings)
	if errors.Is(err, repo.ErrNotFound) {
		return models.ReminderSettings{}, apperr.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return models.ReminderSettings{}, apperr.Wrap(err, "save reminder settings")
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.Sync(ctx, userID); err != nil {
			s.Logger.ErrorContext(ctx, "reminder resync failed", "user_id", userID, "error", err)
		}
	}
	return u.ReminderSettings, nil
}
