package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/sailup/internal/core/installer"
	"github.com/nightconcept/sailup/internal/core/logger"
)

// FileName is the config file looked up in the working directory by default.
const FileName = "sailup.toml"

// DefaultUpdateSource is the GitHub repository self update pulls releases from.
const DefaultUpdateSource = "nightconcept/sailup"

// Config represents the structure of sailup.toml.
type Config struct {
	Install InstallConfig `toml:"install"`
	Log     LogConfig     `toml:"log"`
	Update  UpdateConfig  `toml:"update"`
}

// InstallConfig controls --install-cppcheck.
type InstallConfig struct {
	Tool    string `toml:"tool"`
	Manager string `toml:"manager,omitempty"` // Forces a package manager, e.g. "dnf"
	Sudo    bool   `toml:"sudo"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// UpdateConfig holds self update settings.
type UpdateConfig struct {
	Source string `toml:"source"` // owner/repo
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Install: InstallConfig{
			Tool: "cppcheck",
			Sudo: true,
		},
		Log: LogConfig{
			Level: logger.DefaultLevel,
		},
		Update: UpdateConfig{
			Source: DefaultUpdateSource,
		},
	}
}

// Load reads the file at path on top of the defaults. Keys absent from the
// file keep their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parsing %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks values that TOML decoding alone cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Install.Tool) == "" {
		return errors.New("install.tool must not be empty")
	}
	// Only the name is checked here; availability on this OS is checked at install time.
	if c.Install.Manager != "" && !installer.KnownManager(c.Install.Manager) {
		return fmt.Errorf("install.manager: unknown package manager %q", c.Install.Manager)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Update.Source != "" {
		if _, _, err := SplitSource(c.Update.Source); err != nil {
			return fmt.Errorf("update.source: %w", err)
		}
	}
	return nil
}

// SplitSource splits an "owner/repo" slug.
func SplitSource(s string) (owner, repo string, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected 'owner/repo', got %q", s)
	}
	return parts[0], parts[1], nil
}

// Write marshals cfg and writes it to path, overwriting any existing file.
func Write(path string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(buf.Bytes())
	return err
}

type key struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, key{}, cfg)
}

// FromContext returns the config stored in ctx, or Default().
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(key{}).(*Config); ok {
			return cfg
		}
	}
	return Default()
}
