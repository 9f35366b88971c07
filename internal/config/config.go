// Package config reads the build configuration from POTTERY_* environment
// variables. Command-line flags override it.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "POTTERY_"

// Config holds the settings of one build.
type Config struct {
	// Companies is the company records file.
	Companies string `env:"COMPANIES" envDefault:"companies.toml"`
	// Pottery lists the collection files; each entry may be a glob.
	Pottery []string `env:"COLLECTION" envDefault:"pottery.toml" envSeparator:","`
	// Output is the directory the site is written to.
	Output string `env:"OUTPUT" envDefault:"output"`
	// Seed fixes the generated element IDs.
	Seed string `env:"SEED" envDefault:"WWRD"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat is text or json.
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Companies) == "" {
		errs = append(errs, errors.New("companies file is empty"))
	}

	if len(c.Pottery) == 0 {
		errs = append(errs, errors.New("no pottery collection files"))
	}

	for i, p := range c.Pottery {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("pottery collection entry %d is empty", i))
		}
	}

	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output directory is empty"))
	}

	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log level %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}

	if !slices.Contains(logFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("log format %q is not one of %s", c.LogFormat, strings.Join(logFormats, ", ")))
	}

	return errors.Join(errs...)
}
