// Package config provides configuration management for the portfolio CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/portfolio/internal/transition"
	"github.com/leapstack-labs/portfolio/internal/ui/pages"
)

// SiteConfig holds the copy shown around the project catalog.
type SiteConfig struct {
	Title        string   `koanf:"title"`
	Owner        string   `koanf:"owner"`
	Tagline      string   `koanf:"tagline"`
	Email        string   `koanf:"email"`
	LinkedIn     string   `koanf:"linkedin"`
	GitHub       string   `koanf:"github"`
	Intro        []string `koanf:"intro"`
	About        []string `koanf:"about"`
	AssetBaseURL string   `koanf:"asset_base_url"`
}

// Profile converts the site copy into what pages render.
func (s SiteConfig) Profile() pages.Profile {
	return pages.Profile{
		SiteTitle:    s.Title,
		Owner:        s.Owner,
		Tagline:      s.Tagline,
		Email:        s.Email,
		LinkedIn:     s.LinkedIn,
		GitHub:       s.GitHub,
		Intro:        s.Intro,
		About:        s.About,
		AssetBaseURL: s.AssetBaseURL,
	}
}

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Port          int           `koanf:"port"`
	Watch         bool          `koanf:"watch"`
	AutoOpen      bool          `koanf:"auto_open"`
	Dev           bool          `koanf:"dev"`
	SessionSecret string        `koanf:"session_secret"`
	IdleTimeout   time.Duration `koanf:"idle_timeout"`
}

// TransitionConfig holds the page transition timing.
type TransitionConfig struct {
	Mode  string        `koanf:"mode"`
	Enter time.Duration `koanf:"enter"`
	Exit  time.Duration `koanf:"exit"`
}

// Controller converts the timing into a controller config. Call Validate
// first; an unknown mode falls back to crossfade.
func (t TransitionConfig) Controller() transition.Config {
	mode, err := transition.ParseMode(t.Mode)
	if err != nil {
		mode = transition.Crossfade
	}
	return transition.Config{Mode: mode, Enter: t.Enter, Exit: t.Exit}
}

// BuildConfig holds configuration for the static export.
type BuildConfig struct {
	OutputDir string `koanf:"output_dir"`
	Minify    bool   `koanf:"minify"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Catalog is the project payload file. Empty uses the embedded catalog.
	Catalog      string           `koanf:"catalog"`
	Locale       string           `koanf:"locale"`
	Verbose      bool             `koanf:"verbose"`
	OutputFormat string           `koanf:"output"`
	LogLevel     string           `koanf:"log_level"`
	LogFormat    string           `koanf:"log_format"`
	Site         SiteConfig       `koanf:"site"`
	Server       ServerConfig     `koanf:"server"`
	Transition   TransitionConfig `koanf:"transition"`
	Build        BuildConfig      `koanf:"build"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values
const (
	DefaultLocale      = "en"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultPort        = 8765
	DefaultIdleTimeout = 10 * time.Minute
	DefaultOutputDir   = "dist"
	DefaultEnter       = transition.DefaultEnter
	DefaultExit        = transition.DefaultExit
)

// DefaultSite is the copy used when no config file provides one.
var DefaultSite = SiteConfig{
	Title: "Kade Bolen Portfolio",
	Owner: "Kade Bolen",
	Email: "kadesbolen@gmail.com",
	Intro: []string{
		"Hello, I'm Kade Bolen and welcome to my portfolio website! This site serves as an online portfolio " +
			"where I keep information about myself and my projects. It exists as a simple way for anyone to " +
			"learn about what kind of person I am and what kind of things I put my time and energy into.",
		"I have been storing images and other files across multiple platforms since taking on larger " +
			"projects, and I recently realized that this is not a sustainable way to manage my own history. So, " +
			"as a secondary purpose, I am using this webpage as my own personal archive for each and every " +
			"project I've been a part of.",
		"This website is divided into four different pages, one of them being the home page which you're in " +
			"right now. The other three are the \"Projects\", \"About Me\", and \"Contact\" pages which can be " +
			"accessed via the navigation bar at the top of the page.",
	},
	LinkedIn: "https://linkedin.com/in/kabolen",
}

// Default returns the configuration used before any source is applied.
func Default() *Config {
	site := DefaultSite
	site.Intro = append([]string(nil), DefaultSite.Intro...)
	return &Config{
		Locale:       DefaultLocale,
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Site:         site,
		Server: ServerConfig{
			Port:        DefaultPort,
			Watch:       true,
			AutoOpen:    true,
			IdleTimeout: DefaultIdleTimeout,
		},
		Transition: TransitionConfig{
			Mode:  string(transition.Crossfade),
			Enter: DefaultEnter,
			Exit:  DefaultExit,
		},
		Build: BuildConfig{
			OutputDir: DefaultOutputDir,
			Minify:    true,
		},
	}
}
