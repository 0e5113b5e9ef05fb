package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1"

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "sitenav.yaml"

// Config is the sitenav configuration file.
type Config struct {
	Version  string         `yaml:"version"`
	Site     *nav.Source    `yaml:"site,omitempty"` // nil means the embedded guide navigation
	Content  ContentConfig  `yaml:"content"`
	Output   OutputConfig   `yaml:"output"`
	EditLink EditLinkConfig `yaml:"edit_link,omitempty"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`

	path string // file the configuration was loaded from, empty when parsed from bytes
}

// ContentConfig locates the Markdown documents navigation links point at.
type ContentConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions,omitempty"`
	IndexNames []string `yaml:"index_names,omitempty"`
}

// OutputConfig controls what gets written and where.
type OutputConfig struct {
	Directory   string   `yaml:"directory"`
	Formats     []string `yaml:"formats,omitempty"`
	Clean       bool     `yaml:"clean,omitempty"`        // remove stale files in the output directory first
	HeadPartial bool     `yaml:"head_partial,omitempty"` // also write head.html
}

// EditLinkConfig overrides or derives the edit link pattern.
type EditLinkConfig struct {
	Pattern       string `yaml:"pattern,omitempty"`
	Branch        string `yaml:"branch,omitempty"`
	DocsRoot      string `yaml:"docs_root,omitempty"`
	DetectFromGit bool   `yaml:"detect_from_git,omitempty"`
	RepoPath      string `yaml:"repo_path,omitempty"`
}

// MetricsConfig controls metrics export for one-shot builds.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node-exporter textfile collector target
}

// Default returns a configuration that builds the embedded guide navigation.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults, normalizes and validates a configuration file.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").WithContext("path", path).Build()
	}

	cfg, err := parse(data, path)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	slog.Debug("Loaded configuration", "path", path, "custom_site", cfg.Site != nil)
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("No configuration file, using embedded guide navigation", "path", path)
		loadEnvFiles()
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes configuration bytes after ${VAR} expansion. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*Config, error) {
	cfg := Config{path: path}
	dec := yaml.NewDecoder(bytes.NewReader(expandEnv(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").Fatal().Build()
	}

	applyDefaults(&cfg)
	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envRef matches ${NAME}. Bare $NAME is left alone so authored titles and links keep their dollar signs.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(envRef.FindSubmatch(ref)[1])))
	})
}

// Path returns the file the configuration was loaded from, or "" when it was not loaded from disk.
func (c *Config) Path() string {
	return c.path
}

// Source returns the authored navigation this configuration builds.
func (c *Config) Source() nav.Source {
	if c.Site != nil {
		return *c.Site
	}
	return nav.GuideSource()
}

// HasFormat reports whether the given output format is enabled.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// loadEnvFiles loads .env and .env.local when present. Existing variables win.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
	}
}
