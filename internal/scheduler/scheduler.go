package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Kingsheunn/Diary/internal/mailer"
	"github.com/Kingsheunn/Diary/internal/metrics"
	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// UserStore is the part of the credential store the scheduler reads.
type UserStore interface {
	ListWithReminders(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// EntryCounter feeds the weekly summary.
type EntryCounter interface {
	CountSince(ctx context.Context, userID int, since time.Time) (int, error)
}

// Options configures a Scheduler.
type Options struct {
	// WeeklyTime is the HH:MM at which weekly summaries fire.
	WeeklyTime string
	// Location is the zone trigger times are interpreted in. Nil means time.Local.
	Location *time.Location
	AppURL   string
	Logger   *slog.Logger
	// DispatchTimeout bounds one dispatch (store reads and mail delivery). Default 1 minute.
	DispatchTimeout time.Duration
}

type jobKey struct {
	UserID int
	Kind   models.ReminderKind
}

type registration struct {
	spec    string
	entryID cron.EntryID
}

// Registration describes one active reminder job.
type Registration struct {
	UserID int
	Kind   models.ReminderKind
	Spec   string
	Next   time.Time
}

// Scheduler turns stored reminder preferences into cron jobs, one per (user, kind).
// Jobs are not persisted: a firing missed while the process is down is lost.
type Scheduler struct {
	cron    *cron.Cron
	users   UserStore
	entries EntryCounter
	mail    mailer.Mailer
	log     *slog.Logger

	appURL       string
	timeout      time.Duration
	weeklyHour   int
	weeklyMinute int

	// refresh serializes Rebuild and Sync so an older store snapshot never overwrites a newer one.
	refresh sync.Mutex

	mu   sync.Mutex
	jobs map[jobKey]registration
}

func New(users UserStore, entries EntryCounter, mail mailer.Mailer, opts Options) (*Scheduler, error) {
	weekly, err := time.Parse("15:04", opts.WeeklyTime)
	if err != nil {
		return nil, fmt.Errorf("weekly reminder time %q: %w", opts.WeeklyTime, err)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "scheduler")
	timeout := opts.DispatchTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	cl := cronLogger{l: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		users:        users,
		entries:      entries,
		mail:         mail,
		log:          log,
		appURL:       opts.AppURL,
		timeout:      timeout,
		weeklyHour:   weekly.Hour(),
		weeklyMinute: weekly.Minute(),
		jobs:         make(map[jobKey]registration),
	}, nil
}

// Start begins firing jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts the scheduler. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Rebuild derives the complete job set from the store. Keys whose spec is unchanged keep
// their job, changed keys are replaced and keys no longer enabled are removed, so calling
// it repeatedly never duplicates a job.
func (s *Scheduler) Rebuild(ctx context.Context) error {
	s.refresh.Lock()
	defer s.refresh.Unlock()

	users, err := s.users.ListWithReminders(ctx)
	if err != nil {
		return fmt.Errorf("list users with reminders: %w", err)
	}

	want := make(map[jobKey]string)
	for _, u := range users {
		for key, spec := range s.specsFor(u) {
			want[key] = spec
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.jobs {
		if _, ok := want[key]; !ok {
			s.remove(key)
		}
	}
	for key, spec := range want {
		s.install(key, spec)
	}
	metrics.SetReminderJobs(len(s.jobs))
	s.log.Info("reminder schedule rebuilt", "users", len(users), "jobs", len(s.jobs))
	return nil
}

// Sync re-derives the jobs of a single user.
func (s *Scheduler) Sync(ctx context.Context, userID int) error {
	s.refresh.Lock()
	defer s.refresh.Unlock()

	want := map[jobKey]string{}
	u, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
	case err != nil:
		return fmt.Errorf("load user %d: %w", userID, err)
	default:
		want = s.specsFor(*u)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kind := range models.ReminderKinds {
		key := jobKey{UserID: userID, Kind: kind}
		if spec, ok := want[key]; ok {
			s.install(key, spec)
		} else {
			s.remove(key)
		}
	}
	metrics.SetReminderJobs(len(s.jobs))
	return nil
}

// Registrations lists active jobs ordered by user and kind.
func (s *Scheduler) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Registration, 0, len(s.jobs))
	for key, reg := range s.jobs {
		out = append(out, Registration{
			UserID: key.UserID,
			Kind:   key.Kind,
			Spec:   reg.spec,
			Next:   s.cron.Entry(reg.entryID).Next,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// install must be called with s.mu held.
func (s *Scheduler) install(key jobKey, spec string) {
	if reg, ok := s.jobs[key]; ok {
		if reg.spec == spec {
			return
		}
		s.remove(key)
	}

	entryID, err := s.cron.AddFunc(spec, s.job(key))
	if err != nil {
		s.log.Error("invalid reminder spec", "user_id", key.UserID, "kind", key.Kind, "spec", spec, "error", err)
		return
	}
	s.jobs[key] = registration{spec: spec, entryID: entryID}
	s.log.Debug("reminder registered", "user_id", key.UserID, "kind", key.Kind, "spec", spec)
}

// remove must be called with s.mu held.
func (s *Scheduler) remove(key jobKey) {
	reg, ok := s.jobs[key]
	if !ok {
		return
	}
	s.cron.Remove(reg.entryID)
	delete(s.jobs, key)
	s.log.Debug("reminder removed", "user_id", key.UserID, "kind", key.Kind)
}

func (s *Scheduler) specsFor(u models.User) map[jobKey]string {
	out := make(map[jobKey]string, 2)
	if u.DailyReminder {
		spec, err := DailySpec(u.ReminderTime)
		if err != nil {
			s.log.Warn("skipping daily reminder", "user_id", u.ID, "reminder_time", u.ReminderTime, "error", err)
		} else {
			out[jobKey{UserID: u.ID, Kind: models.ReminderDaily}] = spec
		}
	}
	if u.WeeklyReminder {
		spec, err := WeeklySpec(u.SummaryDay, s.weeklyHour, s.weeklyMinute)
		if err != nil {
			s.log.Warn("skipping weekly reminder", "user_id", u.ID, "summary_day", u.SummaryDay, "error", err)
		} else {
			out[jobKey{UserID: u.ID, Kind: models.ReminderWeekly}] = spec
		}
	}
	return out
}

// job is the cron callback for one key. Each firing is independent; errors stay here.
func (s *Scheduler) job(key jobKey) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.dispatch(ctx, key)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, key jobKey) error {
	log := s.log.With("run_id", uuid.NewString(), "user_id", key.UserID, "kind", key.Kind)
	kind := string(key.Kind)

	u, err := s.users.GetByID(ctx, key.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncReminderDispatch(kind, "skipped")
		log.Info("reminder skipped: user no longer exists")
		return nil
	}
	if err != nil {
		metrics.IncReminderDispatch(kind, "error")
		log.Error("reminder dispatch failed: load user", "error", err)
		return err
	}
	if !u.Enabled(key.Kind) {
		metrics.IncReminderDispatch(kind, "skipped")
		log.Info("reminder skipped: disabled")
		return nil
	}

	msg, err := s.message(ctx, key.Kind, u)
	if err != nil {
		metrics.IncReminderDispatch(kind, "error")
		log.Error("reminder dispatch failed: build message", "error", err)
		return err
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		metrics.IncReminderDispatch(kind, "error")
		log.Error("reminder dispatch failed: send", "to", u.Email, "error", err)
		return err
	}

	metrics.IncReminderDispatch(kind, "sent")
	log.Info("reminder sent", "to", u.Email)
	return nil
}

func (s *Scheduler) message(ctx context.Context, kind models.ReminderKind, u *models.User) (mailer.Message, error) {
	if kind == models.ReminderWeekly {
		n, err := s.entries.CountSince(ctx, u.ID, time.Now().AddDate(0, 0, -7))
		if err != nil {
			return mailer.Message{}, fmt.Errorf("count entries: %w", err)
		}
		return mailer.WeeklySummary(u.Email, u.Name, n, s.appURL)
	}
	return mailer.DailyReminder(u.Email, u.Name, s.appURL)
}

// DailySpec converts an HH:MM time of day into a cron spec.
func DailySpec(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", fmt.Errorf("reminder time %q: want HH:MM", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// WeeklySpec converts a summary day (1=Monday ... 7=Sunday) and time into a cron spec.
func WeeklySpec(day, hour, minute int) (string, error) {
	if day < 1 || day > 7 {
		return "", fmt.Errorf("summary day %d: want 1..7", day)
	}
	return fmt.Sprintf("%d %d * * %d", minute, hour, day%7), nil
}

// cronLogger routes cron's own logging into slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
