package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the calculator command.
type Config struct {
	// Calc names the calculator: bool, float, int, or big.
	Calc string `env:"OPEXPR_CALC" envDefault:"float"`

	// Prec is the precision in bits of the big calculator.
	Prec uint `env:"OPEXPR_PREC" envDefault:"64"`

	// Constants is an optional YAML file of extra constants.
	Constants string `env:"OPEXPR_CONSTANTS"`

	// LogLevel is the zap level name.
	LogLevel string `env:"OPEXPR_LOG_LEVEL" envDefault:"warn"`
}

// Load loads and validates configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse loads configuration from environment variables without validating
// it, so that callers can apply overrides first.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !IsCalc(c.Calc) {
		return fmt.Errorf("OPEXPR_CALC must be one of: bool, float, int, big")
	}

	if c.Prec == 0 {
		return fmt.Errorf("OPEXPR_PREC must be positive")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("OPEXPR_LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// IsCalc checks whether name is a known calculator.
func IsCalc(name string) bool {
	switch name {
	case "bool", "float", "int", "big":
		return true
	}
	return false
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Calc=%s, Prec=%d, Constants=%q, LogLevel=%s}",
		c.Calc,
		c.Prec,
		c.Constants,
		c.LogLevel,
	)
}

// Constant is a user-defined constant. Value is an expression in the
// selected calculator's syntax.
type Constant struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// constantsFile is the layout of a constants file.
type constantsFile struct {
	Constants []Constant `yaml:"constants"`
}

// LoadConstants reads constants from a YAML file.
func LoadConstants(path string) ([]Constant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read constants: %w", err)
	}
	return ParseConstants(b)
}

// ParseConstants decodes constants from YAML source. Every constant needs a
// name and a value.
func ParseConstants(source []byte) ([]Constant, error) {
	var f constantsFile
	if err := yaml.Unmarshal(source, &f); err != nil {
		return nil, fmt.Errorf("failed to parse constants: %w", err)
	}
	for i, c := range f.Constants {
		if c.Name == "" {
			return nil, fmt.Errorf("constant %d has no name", i)
		}
		if c.Value == "" {
			return nil, fmt.Errorf("constant %q has no value", c.Name)
		}
	}
	return f.Constants, nil
}
