package config

import "testing"

func TestResolveDefaultsAcceptsKnownDrivers(t *testing.T) {
	for _, driver := range []string{"mem", "sqlite", "redis"} {
		cfg := &Config{MediumDriver: driver, SQLitePath: "x.db"}
		if err := cfg.ResolveDefaults(); err != nil {
			t.Fatalf("driver %s rejected: %v", driver, err)
		}
	}
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{MediumDriver: "mongodb"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestResolveDefaultsRequiresSQLitePath(t *testing.T) {
	cfg := &Config{MediumDriver: "sqlite"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PEERSTORE_MEDIUM_DRIVER", "mem")
	t.Setenv("PEERSTORE_QUOTA_BYTES", "4096")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.MediumDriver != "mem" || cfg.QuotaBytes != 4096 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.EventBuffer != 16 {
		t.Fatalf("default not applied: %+v", cfg)
	}
}
