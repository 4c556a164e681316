package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// EnvPrefix prefixes every environment override. A double underscore
// separates nested keys: PORTFOLIO_SERVER__PORT sets server.port.
const EnvPrefix = "PORTFOLIO_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// configNames are the file names searched for, in order.
var configNames = []string{"portfolio.yaml", "portfolio.yml"}

// flagKeys maps flag names onto config keys where the two differ. Other flags
// map kebab-case to snake_case.
var flagKeys = map[string]string{
	"port":           "server.port",
	"watch":          "server.watch",
	"open":           "server.auto_open",
	"dev":            "server.dev",
	"session-secret": "server.session_secret",
	"idle-timeout":   "server.idle_timeout",
	"mode":           "transition.mode",
	"enter":          "transition.enter",
	"exit":           "transition.exit",
	"out":            "build.output_dir",
	"minify":         "build.minify",
}

// pathFlags are flags holding paths. Values given on the command line are
// relative to the working directory, not the project root.
var pathFlags = map[string]string{
	"catalog": "catalog",
	"out":     "build.output_dir",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configExistsIn returns the config file in dir, if any.
func configExistsIn(dir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a portfolio config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"catalog":               d.Catalog,
		"locale":                d.Locale,
		"verbose":               d.Verbose,
		"output":                d.OutputFormat,
		"log_level":             d.LogLevel,
		"log_format":            d.LogFormat,
		"site.title":            d.Site.Title,
		"site.owner":            d.Site.Owner,
		"site.tagline":          d.Site.Tagline,
		"site.email":            d.Site.Email,
		"site.linkedin":         d.Site.LinkedIn,
		"site.github":           d.Site.GitHub,
		"site.intro":            d.Site.Intro,
		"site.about":            d.Site.About,
		"site.asset_base_url":   d.Site.AssetBaseURL,
		"server.port":           d.Server.Port,
		"server.watch":          d.Server.Watch,
		"server.auto_open":      d.Server.AutoOpen,
		"server.dev":            d.Server.Dev,
		"server.session_secret": d.Server.SessionSecret,
		"server.idle_timeout":   d.Server.IdleTimeout.String(),
		"transition.mode":       d.Transition.Mode,
		"transition.enter":      d.Transition.Enter.String(),
		"transition.exit":       d.Transition.Exit.String(),
		"build.output_dir":      d.Build.OutputDir,
		"build.minify":          d.Build.Minify,
	}
}

// LoadConfig loads configuration from defaults, a config file, environment
// variables and changed flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// Without an explicit file, portfolio.yaml or portfolio.yml is searched for
// upward from the working directory. Relative paths from the file, env vars
// and defaults resolve against the file's directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")
	configFileUsed = ""

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectRoot := cwd

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile == "" {
		cfgFile = findConfigUpward(cwd)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
		if abs, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Load environment variables (PORTFOLIO_ prefix)
	// Transform: PORTFOLIO_SERVER__PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Path flags, made absolute against CWD
	flagPaths := make(map[string]string)

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if key, ok := pathFlags[f.Name]; ok && f.Value.String() != "" {
				if abs, err := filepath.Abs(f.Value.String()); err == nil {
					flagPaths[key] = abs
				}
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct. Durations arrive as strings from
	// files, env vars and defaults.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve relative paths against the project root
	cfg.ProjectRoot = projectRoot
	if p, ok := flagPaths["catalog"]; ok {
		cfg.Catalog = p
	} else {
		cfg.Catalog = resolvePathRelativeTo(cfg.Catalog, projectRoot)
	}
	if p, ok := flagPaths["build.output_dir"]; ok {
		cfg.Build.OutputDir = p
	} else {
		cfg.Build.OutputDir = resolvePathRelativeTo(cfg.Build.OutputDir, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
