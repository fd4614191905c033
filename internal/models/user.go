package models

import "time"

// DefaultReminderTime is used until a user picks their own time.
const DefaultReminderTime = "17:00"

// DefaultSummaryDay is Sunday (1=Monday ... 7=Sunday).
const DefaultSummaryDay = 7

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ReminderSettings `json:"-"`
}

// ReminderSettings are a user's reminder preferences.
type ReminderSettings struct {
	DailyReminder  bool   `json:"daily_reminder"`
	ReminderTime   string `json:"reminder_time"` // HH:MM, 24h
	WeeklyReminder bool   `json:"weekly_reminder"`
	SummaryDay     int    `json:"summary_day"` // 1=Monday ... 7=Sunday
}

// Enabled reports whether the user wants reminders of the given kind.
func (s ReminderSettings) Enabled(kind ReminderKind) bool {
	switch kind {
	case ReminderDaily:
		return s.DailyReminder
	case ReminderWeekly:
		return s.WeeklyReminder
	}
	return false
}

// ReminderKind distinguishes the two reminder jobs a user can have.
type ReminderKind string

const (
	ReminderDaily  ReminderKind = "daily"
	ReminderWeekly ReminderKind = "weekly"
)

// ReminderKinds lists every kind in a stable order.
var ReminderKinds = []ReminderKind{ReminderDaily, ReminderWeekly}
