package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/portfolio/internal/transition"
)

var (
	outputModes = []string{"auto", "text", "markdown", "json"}
	logFormats  = []string{"text", "json"}
)

// Validate checks if the configuration is valid. Every problem is reported,
// not just the first.
func (c *Config) Validate() error {
	var errs []error

	if _, err := transition.ParseMode(c.Transition.Mode); err != nil {
		errs = append(errs, fmt.Errorf("transition.mode: %w", err))
	}
	if c.Transition.Enter < 0 {
		errs = append(errs, fmt.Errorf("transition.enter must not be negative, got %s", c.Transition.Enter))
	}
	if c.Transition.Exit < 0 {
		errs = append(errs, fmt.Errorf("transition.exit must not be negative, got %s", c.Transition.Exit))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout))
	}
	if _, err := c.LanguageTag(); err != nil {
		errs = append(errs, err)
	}
	if !oneOf(c.OutputFormat, outputModes) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(outputModes, "|"), c.OutputFormat))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !oneOf(c.LogFormat, logFormats) {
		errs = append(errs, fmt.Errorf("log_format must be one of %s, got %q", strings.Join(logFormats, "|"), c.LogFormat))
	}
	if strings.TrimSpace(c.Site.Title) == "" {
		errs = append(errs, errors.New("site.title is required"))
	}

	return errors.Join(errs...)
}

// LanguageTag parses the collation locale.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// ValidateCatalog checks that a configured catalog file exists. An empty path
// means the embedded catalog and always passes.
func (c *Config) ValidateCatalog() error {
	if c.Catalog == "" {
		return nil
	}
	if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
		return fmt.Errorf("catalog file does not exist: %s\nHint: Create the file or use --catalog to specify a different path", c.Catalog)
	}
	return nil
}

// ParseLogLevel maps a level name onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level must be one of debug|info|warn|error, got %q", s)
	}
	return level, nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
