package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside of prod.
const DefaultJWTSecret = "supersecretkey"

type Config struct {
	Port string

	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
	DBPass    string
	DBSSLMode string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireHours is the token lifetime in hours (default 24). Set via JWT_EXPIRE_HOURS.
	JWTExpireHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). Empty means same-origin only.
	CORSAllowedOrigins []string

	// DocsDir, when set, is served read-only under /docs/ without authentication.
	DocsDir string

	// AuthRatePerMinute limits signup/login attempts per client IP.
	AuthRatePerMinute int

	Reminder ReminderConfig
	Mail     MailConfig
}

// ReminderConfig controls the reminder scheduler.
type ReminderConfig struct {
	// WeeklyTime is the HH:MM at which weekly summaries fire on each user's summary day.
	WeeklyTime string
	// Timezone is an IANA name; empty means the process local zone.
	Timezone string
	// AppURL is linked from reminder e-mails.
	AppURL string
}

// MailConfig holds SMTP settings. When SMTPHost is empty reminders are only logged.
type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// Load reads configuration from the environment, after loading a .env file if one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBName:    getEnv("DB_NAME", "diarydb"),
		DBUser:    getEnv("DB_USER", "diary"),
		DBPass:    getEnv("DB_PASS", "diary"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		Env:            getEnv("ENV", "dev"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		DocsDir:           getEnv("DOCS_DIR", ""),
		AuthRatePerMinute: getEnvInt("RATE_LIMIT_AUTH_PER_MIN", 10),

		Reminder: ReminderConfig{
			WeeklyTime: getEnv("REMINDER_WEEKLY_TIME", "18:00"),
			Timezone:   getEnv("REMINDER_TIMEZONE", ""),
			AppURL:     getEnv("APP_URL", "http://localhost:8080"),
		},
		Mail: MailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("MAIL_FROM", ""),
			FromName:     getEnv("MAIL_FROM_NAME", "Diario"),
		},
	}
}

// Validate reports settings that would make the server unsafe or unable to schedule reminders.
func (c Config) Validate() error {
	var errs []error
	if c.IsProd() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set to a non-default value in prod"))
	}
	if _, err := time.Parse("15:04", c.Reminder.WeeklyTime); err != nil {
		errs = append(errs, fmt.Errorf("REMINDER_WEEKLY_TIME %q: want HH:MM", c.Reminder.WeeklyTime))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("REMINDER_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// IsProd reports whether the server runs in production mode.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// TokenTTL is the lifetime of issued tokens.
func (c Config) TokenTTL() time.Duration {
	hours := c.JWTExpireHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Location resolves the reminder time zone, falling back to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Reminder.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Reminder.Timezone)
}

// DatabaseURL returns the postgres URL form of the connection settings, used by migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
