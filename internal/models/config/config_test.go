package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_USER", "care")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("BOT_DEBUG", "")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.Database.SSLMode != "disable" {
		t.Fatalf("SSLMode = %q, want disable", cfg.Database.SSLMode)
	}
	if cfg.Clock.Location != time.UTC {
		t.Fatalf("Clock.Location = %v, want UTC", cfg.Clock.Location)
	}
	if cfg.Bot.Enabled() {
		t.Fatal("bot enabled without token")
	}
	if !cfg.Bot.Debug {
		t.Fatal("bot debug off in development")
	}
}

func TestFromEnvProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_USER", "care")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := FromEnv()
	if err == nil || !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Fatalf("FromEnv() error = %v, want DB_PASSWORD problem", err)
	}
	if cfg.Database.SSLMode != "require" {
		t.Fatalf("SSLMode = %q, want require", cfg.Database.SSLMode)
	}
}

func TestFromEnvCollectsAllProblems(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_USER", "")
	t.Setenv("TIME_ZONE", "Mars/Olympus")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() error = nil")
	}
	for _, want := range []string{"DB_USER", "TIME_ZONE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %s", err, want)
		}
	}
}

func TestParseAdminIDs(t *testing.T) {
	got := parseAdminIDs(" 12, x, 34 ")
	if len(got) != 2 || got[0] != 12 || got[1] != 34 {
		t.Fatalf("parseAdminIDs = %v, want [12 34]", got)
	}
	if got := parseAdminIDs(""); len(got) != 0 {
		t.Fatalf("parseAdminIDs(empty) = %v", got)
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, Username: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}
