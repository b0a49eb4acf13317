package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the scentdex API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Generation GenerationConfig `yaml:"generation"`
	Engine     EngineConfig     `yaml:"engine"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, memory (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// GenerationConfig holds generation provider settings.
type GenerationConfig struct {
	Provider    string  `yaml:"provider"` // "" disables generative tiers
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSec  int     `yaml:"timeout_sec"` // per-tier call timeout
}

// EngineConfig holds engine tunables: fusion weights, word budgets,
// classifier indicators, cache TTLs.
type EngineConfig struct {
	Weights         WeightsConfig    `yaml:"weights"`
	Budgets         BudgetsConfig    `yaml:"word_budgets"`
	Classifier      ClassifierConfig `yaml:"classifier"`
	MinCandidates   int              `yaml:"min_candidates"`
	ExplainBudgetMS int              `yaml:"explain_budget_ms"`
	GuestTTLSec     int              `yaml:"guest_ttl_sec"`
	UserTTLSec      int              `yaml:"user_ttl_sec"`
}

// WeightsConfig holds score fusion weights.
type WeightsConfig struct {
	Similarity    float64 `yaml:"similarity"`
	AccordOverlap float64 `yaml:"accord_overlap"`
	BrandAffinity float64 `yaml:"brand_affinity"`
	Availability  float64 `yaml:"availability"`
}

// BudgetsConfig holds per-level explanation word budgets.
type BudgetsConfig struct {
	BeginnerMax     int     `yaml:"beginner_max"`
	IntermediateMax int     `yaml:"intermediate_max"`
	AdvancedMax     int     `yaml:"advanced_max"`
	Tolerance       float64 `yaml:"tolerance"`
}

// ClassifierConfig holds experience classifier indicators and thresholds.
type ClassifierConfig struct {
	ExplicitQuestionID     string   `yaml:"explicit_question_id"`
	BeginnerIndicators     []string `yaml:"beginner_indicators"`
	AdvancedIndicators     []string `yaml:"advanced_indicators"`
	HistoryIntermediateMin int      `yaml:"history_intermediate_min"`
	HistoryAdvancedMin     int      `yaml:"history_advanced_min"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 5
	}
	if c.Engine.Weights == (WeightsConfig{}) {
		c.Engine.Weights = WeightsConfig{
			Similarity:    0.6,
			AccordOverlap: 0.2,
			BrandAffinity: 0.1,
			Availability:  0.1,
		}
	}
	if c.Engine.Budgets.BeginnerMax <= 0 {
		c.Engine.Budgets.BeginnerMax = 40
	}
	if c.Engine.Budgets.IntermediateMax <= 0 {
		c.Engine.Budgets.IntermediateMax = 60
	}
	if c.Engine.Budgets.AdvancedMax <= 0 {
		c.Engine.Budgets.AdvancedMax = 100
	}
	if c.Engine.Budgets.Tolerance <= 0 {
		c.Engine.Budgets.Tolerance = 1.2
	}
	if c.Engine.MinCandidates <= 0 {
		c.Engine.MinCandidates = 1
	}
	if c.Engine.ExplainBudgetMS <= 0 {
		c.Engine.ExplainBudgetMS = 10000
	}
	if c.Engine.GuestTTLSec <= 0 {
		c.Engine.GuestTTLSec = 300
	}
	if c.Engine.UserTTLSec <= 0 {
		c.Engine.UserTTLSec = 3600
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Driver == "redis" && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required for the redis driver")
	}
	if c.Generation.Provider != "" && c.Generation.Model == "" {
		return fmt.Errorf("generation.model is required when generation.provider is set")
	}

	w := c.Engine.Weights
	sum := w.Similarity + w.AccordOverlap + w.BrandAffinity + w.Availability
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("engine.weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
