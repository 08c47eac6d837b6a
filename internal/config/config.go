package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
)

const (
	configFileName = "rosterctl_config.yaml"

	// DatabaseURLEnv overrides databaseURL from the config file
	DatabaseURLEnv = "ROSTER_DATABASE_URL"
)

// RulesConfig holds the tunable scheduling thresholds
type RulesConfig struct {
	MaxConsecutiveWorkDays int      `yaml:"maxConsecutiveWorkDays" validate:"min=1"`
	RecommendedMinInterval int      `yaml:"recommendedMinInterval" validate:"min=0"`
	MinShiftCoverage       float64  `yaml:"minShiftCoverage" validate:"gt=0,lt=1"`
	MaxSimultaneousRatio   float64  `yaml:"maxSimultaneousRatio" validate:"gt=0,lte=1"`
	WarningRatio           float64  `yaml:"warningRatio" validate:"gt=0,lte=1"`
	NonWorkingDays         []string `yaml:"nonWorkingDays,omitempty" validate:"dive,required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string      `yaml:"databaseURL" validate:"required"`
	Rules       RulesConfig `yaml:"rules"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns a configuration carrying the standard rule thresholds and no database URL
func Default() *Config {
	rules := calendarrules.DefaultRules()
	return &Config{
		Rules: RulesConfig{
			MaxConsecutiveWorkDays: rules.MaxConsecutiveWorkDays,
			RecommendedMinInterval: rules.RecommendedMinInterval,
			MinShiftCoverage:       rules.MinShiftCoverage,
			MaxSimultaneousRatio:   rules.MaxSimultaneousRatio,
			WarningRatio:           rules.WarningRatio,
		},
	}
}

// ToRules converts the configured thresholds into calendar rules
func (c *Config) ToRules() calendarrules.Rules {
	return calendarrules.Rules{
		MaxConsecutiveWorkDays: c.Rules.MaxConsecutiveWorkDays,
		RecommendedMinInterval: c.Rules.RecommendedMinInterval,
		MinShiftCoverage:       c.Rules.MinShiftCoverage,
		MaxSimultaneousRatio:   c.Rules.MaxSimultaneousRatio,
		WarningRatio:           c.Rules.WarningRatio,
		NonWorkingDays:         c.Rules.NonWorkingDays,
	}
}

// Load loads and validates the configuration from rosterctl_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment. <env>_rosterctl_config.yaml is preferred
// over rosterctl_config.yaml, and .env.<env> / .env are read for overrides.
func LoadWithEnv(env string) (*Config, error) {
	if err := loadDotEnv(env); err != nil {
		return nil, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.Rules.NonWorkingDays {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in rules.nonWorkingDays[%d]: %w", i, err)
		}
	}

	return nil
}

// loadDotEnv reads .env.<env> then .env. Variables already set are never overwritten.
func loadDotEnv(env string) error {
	files := []string{".env"}
	if env != "" {
		files = append([]string{".env." + env}, files...)
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	names := []string{configFileName}
	if env != "" {
		names = append([]string{env + "_" + configFileName}, names...)
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		if homeErr == nil {
			homeConfigPath := filepath.Join(homeDir, name)
			if _, err := os.Stat(homeConfigPath); err == nil {
				return homeConfigPath, nil
			}
		}
	}

	if homeErr != nil {
		return "", fmt.Errorf("failed to get home directory: %w", homeErr)
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
