package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobboard.
type Config struct {
	DataFile    string // job data read by browse/render, jobs.js or jobs.json
	CatalogFile string // sqlite catalog used by ingest
	Ingest      IngestConfig
}

// IngestConfig controls which scraped records are merged into the data file.
type IngestConfig struct {
	MaxAge             time.Duration // records posted earlier are dropped
	MaxExperienceYears int           // "N years" mentions at or above this reject a record
	TitleInclude       *regexp.Regexp
	TitleExclude       *regexp.Regexp
	SeniorityExclude   *regexp.Regexp
}

// Defaults target data-engineering roles.
const (
	DefaultDataFile           = "ui/jobs.js"
	DefaultCatalogFile        = "jobs.db"
	DefaultMaxAge             = 7 * 24 * time.Hour
	DefaultMaxExperienceYears = 6

	DefaultTitleInclude     = `(?i)\b(data\s*engineer|data\s*engineering|analytics\s*engineer|etl|data\s*platform|data\s*pipeline|data\s*warehouse|big\s*data)\b`
	DefaultTitleExclude     = `(?i)\b(site reliability|sre|security|network|frontend|front-end|full\s*stack|mobile|ios|android|devops|qa|test|product manager|program manager|scrum)\b`
	DefaultSeniorityExclude = `(?i)\b(director|manager|vp|head)\b`
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations and
// patterns as strings).
type rawConfig struct {
	DataFile    string          `yaml:"data_file"`
	CatalogFile string          `yaml:"catalog_file"`
	Ingest      rawIngestConfig `yaml:"ingest"`
}

type rawIngestConfig struct {
	MaxAge             string `yaml:"max_age"`
	MaxExperienceYears *int   `yaml:"max_experience_years"`
	TitleInclude       string `yaml:"title_include"`
	TitleExclude       string `yaml:"title_exclude"`
	SeniorityExclude   string `yaml:"seniority_exclude"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	cfg, err := build(rawConfig{})
	if err != nil {
		// built-in patterns are constants
		panic(err)
	}
	return cfg
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(raw rawConfig) (*Config, error) {
	cfg := &Config{
		DataFile:    orDefault(raw.DataFile, DefaultDataFile),
		CatalogFile: orDefault(raw.CatalogFile, DefaultCatalogFile),
		Ingest: IngestConfig{
			MaxAge:             DefaultMaxAge,
			MaxExperienceYears: DefaultMaxExperienceYears,
		},
	}

	if raw.Ingest.MaxAge != "" {
		d, err := time.ParseDuration(raw.Ingest.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("parse ingest.max_age %q: %w", raw.Ingest.MaxAge, err)
		}
		cfg.Ingest.MaxAge = d
	}
	if raw.Ingest.MaxExperienceYears != nil {
		cfg.Ingest.MaxExperienceYears = *raw.Ingest.MaxExperienceYears
	}

	patterns := []struct {
		key string
		raw string
		def string
		dst **regexp.Regexp
	}{
		{"ingest.title_include", raw.Ingest.TitleInclude, DefaultTitleInclude, &cfg.Ingest.TitleInclude},
		{"ingest.title_exclude", raw.Ingest.TitleExclude, DefaultTitleExclude, &cfg.Ingest.TitleExclude},
		{"ingest.seniority_exclude", raw.Ingest.SeniorityExclude, DefaultSeniorityExclude, &cfg.Ingest.SeniorityExclude},
	}
	for _, p := range patterns {
		re, err := regexp.Compile(orDefault(p.raw, p.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.key, err)
		}
		*p.dst = re
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Ingest.MaxAge <= 0 {
		return fmt.Errorf("ingest.max_age must be positive, got %v", cfg.Ingest.MaxAge)
	}
	if cfg.Ingest.MaxExperienceYears <= 0 {
		return fmt.Errorf("ingest.max_experience_years must be positive, got %d", cfg.Ingest.MaxExperienceYears)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
