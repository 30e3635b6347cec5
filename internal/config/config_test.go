package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MEMBERS", "Alice, Bob ,Carol")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TIMEZONE", "UTC")
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "TOKEN_TTL", "LOG_LEVEL", "GROUP_NAME"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := strings.Join(cfg.Group.Members, "|"); got != "Alice|Bob|Carol" {
		t.Errorf("members = %s, want Alice|Bob|Carol", got)
	}
	if cfg.Port != "8080" || cfg.DBDriver != DriverSQLite || cfg.DBPath != "./data/ledger.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("token TTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.Location != time.UTC {
		t.Errorf("location = %v, want UTC", cfg.Location)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no members", map[string]string{"MEMBERS": ""}, "MEMBERS"},
		{"duplicate member", map[string]string{"MEMBERS": "Alice,Bob,Alice"}, "duplicate"},
		{"blank member", map[string]string{"MEMBERS": "Alice,,Bob"}, "empty name"},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"bad ttl", map[string]string{"TOKEN_TTL": "soon"}, "TOKEN_TTL"},
		{"negative ttl", map[string]string{"TOKEN_TTL": "-1h"}, "TOKEN_TTL"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Postgres(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ledger?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("driver = %q, want postgres", cfg.DBDriver)
	}
}
