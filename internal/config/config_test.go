package config

import (
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "redis",
			Addrs:  []string{"localhost:6379"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MemoryDriverNeedsNoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ProviderRequiresModel(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Provider = "openai"
	cfg.Generation.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for provider without model")
	}
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Weights = WeightsConfig{
		Similarity:    0.9,
		AccordOverlap: 0.9,
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" {
		t.Errorf("Driver = %q, want redis", cfg.Database.Driver)
	}
	if cfg.Engine.Weights.Similarity != 0.6 {
		t.Errorf("Weights.Similarity = %v, want 0.6", cfg.Engine.Weights.Similarity)
	}
	if cfg.Engine.Budgets.BeginnerMax != 40 {
		t.Errorf("Budgets.BeginnerMax = %d, want 40", cfg.Engine.Budgets.BeginnerMax)
	}
	if cfg.Engine.Budgets.Tolerance != 1.2 {
		t.Errorf("Budgets.Tolerance = %v, want 1.2", cfg.Engine.Budgets.Tolerance)
	}
	if cfg.Engine.GuestTTLSec != 300 || cfg.Engine.UserTTLSec != 3600 {
		t.Errorf("TTLs = %d/%d, want 300/3600", cfg.Engine.GuestTTLSec, cfg.Engine.UserTTLSec)
	}
	if cfg.Generation.TimeoutSec != 5 {
		t.Errorf("Generation.TimeoutSec = %d, want 5", cfg.Generation.TimeoutSec)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Engine: EngineConfig{
			Budgets: BudgetsConfig{BeginnerMax: 25, IntermediateMax: 50, AdvancedMax: 80, Tolerance: 1.1},
		},
	}
	cfg.ApplyDefaults()

	if cfg.Engine.Budgets.BeginnerMax != 25 {
		t.Errorf("BeginnerMax = %d, want explicit 25 kept", cfg.Engine.Budgets.BeginnerMax)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SCENTDEX_TEST_VAR", "resolved")

	got := string(expandEnvVars([]byte("value: ${SCENTDEX_TEST_VAR}")))
	if got != "value: resolved" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	got := string(expandEnvVars([]byte("value: ${SCENTDEX_UNSET_VAR:-fallback}")))
	if got != "value: fallback" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_EnvOverridesDefault(t *testing.T) {
	t.Setenv("SCENTDEX_TEST_VAR", "resolved")

	got := string(expandEnvVars([]byte("value: ${SCENTDEX_TEST_VAR:-fallback}")))
	if got != "value: resolved" {
		t.Errorf("got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv = %q, want prod", got)
	}
}
