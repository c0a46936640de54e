package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLANNER_TIMEOUT", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("PORT", "")

	cfg := Load()

	if cfg.PlannerTimeout != MinPlannerTimeout {
		t.Errorf("PlannerTimeout = %v, want %v", cfg.PlannerTimeout, MinPlannerTimeout)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Errorf("JWTAccessExpiry = %v, want 15m", cfg.JWTAccessExpiry)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadClampsPlannerTimeout(t *testing.T) {
	t.Setenv("PLANNER_TIMEOUT", "30s")

	cfg := Load()

	if cfg.PlannerTimeout != MinPlannerTimeout {
		t.Errorf("PlannerTimeout = %v, want clamp to %v", cfg.PlannerTimeout, MinPlannerTimeout)
	}
}

func TestLoadKeepsLongerPlannerTimeout(t *testing.T) {
	t.Setenv("PLANNER_TIMEOUT", "10m")

	cfg := Load()

	if cfg.PlannerTimeout != 10*time.Minute {
		t.Errorf("PlannerTimeout = %v, want 10m", cfg.PlannerTimeout)
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Errorf("parseDuration fallback = %v, want 1h", got)
	}
	if got := parseDuration("90s", time.Hour); got != 90*time.Second {
		t.Errorf("parseDuration = %v, want 90s", got)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
