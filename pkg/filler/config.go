package filler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig
const EnvPrefix = "DOCXFILL_"

// Config contains the options shared by the CLI and library callers
type Config struct {
	// Separator splits the fields of each batch line
	Separator string `koanf:"separator"`
	// Language selects the message catalog (en-US, cs, ru)
	Language string `koanf:"language"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error)
	LogLevel string `koanf:"log_level"`
	// LogFormat is console or json
	LogFormat string `koanf:"log_format"`
	// Workers is the number of documents generated concurrently in a batch. 1 keeps line order.
	Workers int `koanf:"workers"`
	// OutputDir is prepended to output patterns by the CLI
	OutputDir string `koanf:"output_dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Separator: DefaultSeparator,
		Language:  "en-US",
		LogLevel:  "info",
		LogFormat: "console",
		Workers:   1,
	}
}

func defaultsMap() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"separator":  d.Separator,
		"language":   d.Language,
		"log_level":  d.LogLevel,
		"log_format": d.LogFormat,
		"workers":    d.Workers,
		"output_dir": d.OutputDir,
	}
}

// LoadConfig layers defaults, the TOML file at path (skipped when path is empty
// and no default file exists) and DOCXFILL_* environment variables.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, p := range []string{"./docxfill.toml", "$HOME/.docxfill.toml"} {
			p = os.ExpandEnv(p)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config %s: %w", p, err)
			}
			break
		}
	}

	// DOCXFILL_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Separator == "" {
		return errors.New("separator cannot be empty")
	}

	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.New("invalid log format: " + c.LogFormat)
	}

	if c.Language == "" {
		return errors.New("language cannot be empty")
	}

	return nil
}

const sampleConfig = `# docxfill configuration

# separator between values on one line of batch input
separator = ";"

# message language: en-US, cs, ru
language = "en-US"

log_level = "info"
log_format = "console"

# documents generated concurrently per batch
workers = 1

# directory prepended to output patterns
output_dir = ""
`

// InitConfig writes a sample configuration file, refusing to replace an existing one
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists at %s", path)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
