// Package config provides reading and writing of wphooks configuration.
// Supports both global (~/.wphooks/config.yaml) and local (.wphooks/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/wphooks/internal/repo"
	"github.com/jpl-au/wphooks/internal/validate"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment variables consulted on top of the config files.
const (
	// EnvDir overrides the global home directory (~/.wphooks).
	EnvDir = "WPHOOKS_DIR"
	// EnvScripts overrides scripts.paths. Comma or colon separated.
	EnvScripts = "WPHOOKS_SCRIPTS"
)

// DirName is the directory holding wphooks state, both in the user's home
// and in a project.
const DirName = repo.Dir

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.wphooks/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .wphooks/config.yaml
	ScopeLocal
)

// Scripts lists the Lua hook scripts loaded on start.
type Scripts struct {
	Paths []string `yaml:"paths,omitempty"`
}

// Asset configures delivery of the browser-side registry script.
type Asset struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	Minified *bool  `yaml:"minified,omitempty"`
	Version  string `yaml:"version,omitempty"`
	File     string `yaml:"file,omitempty"`
}

// Script configures the Lua runtime.
type Script struct {
	Timeout string `yaml:"timeout,omitempty"`
}

// DefaultScriptTimeout bounds script loading when script.timeout is unset.
const DefaultScriptTimeout = 5 * time.Second

// Config contains configuration for wphooks.
type Config struct {
	Scripts Scripts `yaml:"scripts,omitempty"`
	Asset   Asset   `yaml:"asset,omitempty"`
	Script  Script  `yaml:"script,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Script.Timeout != "" {
		d, err := time.ParseDuration(c.Script.Timeout)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: script.timeout must be a non-negative duration, got %q",
				ErrInvalidValue, c.Script.Timeout)
		}
	}
	if err := validate.BaseURL(c.Asset.BaseURL); err != nil {
		return fmt.Errorf("%w: asset.base_url: %w", ErrInvalidValue, err)
	}
	return nil
}

// ScriptPaths returns the scripts to load. WPHOOKS_SCRIPTS, when set,
// replaces the configured list.
func (c *Config) ScriptPaths() []string {
	if env := os.Getenv(EnvScripts); env != "" {
		return SplitList(env)
	}
	return c.Scripts.Paths
}

// Minified returns whether the minified registry script is served
// (defaults to true).
func (c *Config) Minified() bool {
	if c.Asset.Minified == nil {
		return true
	}
	return *c.Asset.Minified
}

// ScriptTimeout returns the script load bound (defaults to 5s). Zero means
// unbounded.
func (c *Config) ScriptTimeout() time.Duration {
	if c.Script.Timeout == "" {
		return DefaultScriptTimeout
	}
	d, err := time.ParseDuration(c.Script.Timeout)
	if err != nil {
		return DefaultScriptTimeout
	}
	return d
}

// SplitList splits a comma or colon separated list, dropping empty items.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ':' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Home returns the global state directory: $WPHOOKS_DIR, or ~/.wphooks.
// Returns "" when neither can be determined.
func Home() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName)
}

// LocalPath returns the path to the local (project) config file, in the
// nearest enclosing project or the working directory.
func LocalPath() string {
	return filepath.Join(repo.Root(Home()), DirName, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file.
func GlobalPath() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
