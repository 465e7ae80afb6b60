package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Built-in defaults. Timezone and sheet year are deployment constants:
// deployments differ in them, users never do.
const (
	DefaultPort      = "8080"
	DefaultTimezone  = "Asia/Jerusalem"
	DefaultSheetYear = 2025
	DefaultMaxBody   = 64 * 1024
)

// Config holds everything the service needs. The Google fields are the
// required deployment secrets; without them the submit path must not
// come up at all.
type Config struct {
	Port string

	GoogleProjectID   string
	GoogleClientEmail string
	GooglePrivateKey  string
	SpreadsheetID     string
	TabName           string

	Timezone     string
	SheetYear    int
	MaxBodyBytes int64

	ResendAPIKey      string
	MailFrom          string
	MailSubjectPrefix string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; variables already
// set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:              getString("PORT", DefaultPort),
		GoogleProjectID:   os.Getenv("GOOGLE_PROJECT_ID"),
		GoogleClientEmail: os.Getenv("GOOGLE_CLIENT_EMAIL"),
		GooglePrivateKey:  NormalizePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
		SpreadsheetID:     os.Getenv("SHEETS_SPREADSHEET_ID"),
		TabName:           os.Getenv("SHEETS_TAB_NAME"),
		Timezone:          getString("TIMEZONE", DefaultTimezone),
		SheetYear:         getInt("SHEET_YEAR", DefaultSheetYear),
		MaxBodyBytes:      int64(getInt("MAX_BODY_BYTES", DefaultMaxBody)),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		MailFrom:          os.Getenv("MAIL_FROM"),
		MailSubjectPrefix: getString("MAIL_SUBJECT_PREFIX", "Daily Status"),
	}
}

// NormalizePrivateKey converts literal \n sequences into real line
// breaks. Deployment UIs tend to store the PEM key on a single line.
func NormalizePrivateKey(key string) string {
	if strings.Contains(key, `\n`) {
		return strings.ReplaceAll(key, `\n`, "\n")
	}
	return key
}

// Validate reports the first missing or malformed setting. Callers are
// expected to refuse to serve on error rather than failing per request.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"GOOGLE_PROJECT_ID", c.GoogleProjectID},
		{"GOOGLE_CLIENT_EMAIL", c.GoogleClientEmail},
		{"GOOGLE_PRIVATE_KEY", c.GooglePrivateKey},
		{"SHEETS_SPREADSHEET_ID", c.SpreadsheetID},
		{"SHEETS_TAB_NAME", c.TabName},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required environment variable %s", r.name)
		}
	}
	if !strings.Contains(c.GooglePrivateKey, "PRIVATE KEY") {
		return fmt.Errorf("GOOGLE_PRIVATE_KEY does not look like a PEM key")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.SheetYear < 2000 || c.SheetYear > 2100 {
		return fmt.Errorf("SHEET_YEAR %d is out of range", c.SheetYear)
	}
	return nil
}

// Location resolves the configured IANA timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MailEnabled reports whether the confirmation-email variant is active.
// Both deployments run the same binary; only this toggle differs.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != "" && c.MailFrom != ""
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
