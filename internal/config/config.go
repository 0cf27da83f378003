// Package config loads the application configuration from a TOML file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cortesys/cutplan/internal/model"
)

// Config holds the defaults applied when a cut list does not specify its own
// sheet geometry or packing options.
type Config struct {
	DataDir string `toml:"data_dir"`

	Sheet SheetConfig `toml:"sheet"`

	// Order picks the expansion sort: "area" or "width".
	Order string `toml:"order"`

	Server ServerConfig `toml:"server"`
}

// SheetConfig is the fallback sheet geometry, in mm.
type SheetConfig struct {
	Length    float64 `toml:"length"`
	Width     float64 `toml:"width"`
	Thickness float64 `toml:"thickness"`
	Kerf      float64 `toml:"kerf"`
	Grain     string  `toml:"grain"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return Config{
		DataDir: filepath.Join(dir, ".cutplan"),
		Sheet: SheetConfig{
			Length:    2750,
			Width:     1850,
			Thickness: 18,
			Kerf:      model.DefaultKerf,
			Grain:     "none",
		},
		Order:  "area",
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location,
// ~/.cutplan/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cutplan", "config.toml"), nil
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// SheetSpec converts the configured fallback geometry into a packing spec.
func (c Config) SheetSpec() model.SheetSpec {
	return model.SheetSpec{
		Length:    c.Sheet.Length,
		Width:     c.Sheet.Width,
		Thickness: c.Sheet.Thickness,
		Kerf:      c.Sheet.Kerf,
		Grain:     model.ParseGrainMode(c.Sheet.Grain),
	}
}
