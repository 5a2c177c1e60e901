package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"stemsplit/internal/demux"
)

//go:embed sample_config.toml
var sampleConfig string

// Config describes one extraction run. Channels lists one label per source
// channel, in channel order; the label "(unused)" drops that channel.
type Config struct {
	Input       string   `toml:"input"`
	OutputDir   string   `toml:"output_dir"`
	Channels    []string `toml:"channels"`
	ChunkFrames int      `toml:"chunk_frames"`
	LogLevel    string   `toml:"log_level"`
	LogFormat   string   `toml:"log_format"`
}

var (
	ErrNoInput     = errors.New("input is required")
	ErrNoChannels  = errors.New("channels must list one label per source channel")
	ErrChunkFrames = errors.New("chunk_frames must be positive")
)

// Default returns the configuration used when a field is absent from the
// file.
func Default() Config {
	return Config{
		OutputDir:   ".",
		ChunkFrames: demux.DefaultChunkFrames,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the merged configuration. Called after CLI flags have
// been applied.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	if len(c.Channels) == 0 {
		return ErrNoChannels
	}
	if c.ChunkFrames <= 0 {
		return ErrChunkFrames
	}
	return nil
}

// Sample returns the embedded sample configuration file.
func Sample() string { return sampleConfig }
