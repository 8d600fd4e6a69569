package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://app:pw@localhost:5432/board"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://app:pw@localhost:5432/board" {
		t.Fatalf("DSN was rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyParts(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "board",
		LegacyPassword: "s3cret",
		LegacyName:     "employees",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"postgres://", "board:s3cret@", "db.internal:5433", "/employees", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("DSN %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNReportsMissingLegacyVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatalf("expected error for missing vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars: %v", err)
	}
}

func TestTokenTTL(t *testing.T) {
	cfg := JWTConfig{ExpirationMinutes: 1440}
	if got := cfg.TokenTTL().Hours(); got != 24 {
		t.Fatalf("expected 24h, got %vh", got)
	}
	if (JWTConfig{}).TokenTTL() != 0 {
		t.Fatalf("expected zero TTL for unset minutes")
	}
}

func TestAppEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatalf("expected IsDev for DEV")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatalf("expected IsProd for prod")
	}
}
