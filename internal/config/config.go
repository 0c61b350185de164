// Package config loads assembler-wide options. These are matters of policy, not of the source
// language: whether a missing .END is fatal, which object format the driver writes. The assembler
// core never reads configuration; the driver translates it into asm.Options and sink choice.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Output format names accepted by Config.Output.Format.
const (
	FormatRaw = "raw" // big-endian words, the LC-3 object file convention
	FormatHex = "hex" // Intel Hex text
)

// Config holds every option the driver reads from its TOML configuration file.
type Config struct {
	Strictness struct {
		RequireEnd bool `toml:"require_end"`
	} `toml:"strictness"`

	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`

	Log struct {
		Debug bool `toml:"debug"`
	} `toml:"log"`
}

// Default returns the configuration used when no file is present: lenient .END handling and raw
// big-endian output.
func Default() *Config {
	cfg := &Config{}
	cfg.Output.Format = FormatRaw

	return cfg
}

// Path returns the per-user configuration file path, ~/.config/lc3asm/config.toml, falling back
// to the working directory when no home directory is available.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}

	return filepath.Join(home, ".config", "lc3asm", "config.toml")
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration from path. A missing file is not an error; it yields Default.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that TOML decoding alone cannot.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatRaw, FormatHex:
		return nil
	default:
		return fmt.Errorf("output format must be %q or %q, not %q", FormatRaw, FormatHex, c.Output.Format)
	}
}

// SaveTo writes the configuration to path, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(c)
}
