// Package config loads the contabridge.yaml tool configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level contabridge.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Import  ImportConfig  `yaml:"import"`
	Books   BooksConfig   `yaml:"books"`
	Log     LogConfig     `yaml:"log"`
}

// CompanyConfig identifies the accounting company imports run against.
type CompanyConfig struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// ImportConfig controls how files are imported.
type ImportConfig struct {
	JournalType string `yaml:"journal_type"`
	MovePrefix  string `yaml:"move_prefix"`
	// RulesFile points to the normalization rules YAML; empty means the
	// built-in defaults.
	RulesFile string `yaml:"rules_file,omitempty"`
}

// BooksConfig points to the CSV account and party books the in-memory
// host loads.
type BooksConfig struct {
	Accounts string `yaml:"accounts"`
	Parties  string `yaml:"parties"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// Load reads a contabridge.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(companyCode, companyName string) *Config {
	return &Config{
		Company: CompanyConfig{
			Code:     companyCode,
			Name:     companyName,
			Currency: "EUR",
		},
		Import: ImportConfig{
			JournalType: "general",
			MovePrefix:  "CON",
		},
		Books: BooksConfig{
			Accounts: "books/accounts.csv",
			Parties:  "books/parties.csv",
		},
		Log: LogConfig{
			Env:   "development",
			Level: "info",
		},
	}
}
