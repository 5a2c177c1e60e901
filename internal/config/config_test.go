package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stemsplit.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
input = "drums.wav"
output_dir = "out"
channels = ["Kick", "OH L", "OH R"]
chunk_frames = 4096
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input != "drums.wav" || cfg.OutputDir != "out" {
		t.Errorf("paths = %q, %q, want drums.wav, out", cfg.Input, cfg.OutputDir)
	}
	if len(cfg.Channels) != 3 {
		t.Errorf("Channels = %v, want 3 labels", cfg.Channels)
	}
	if cfg.ChunkFrames != 4096 {
		t.Errorf("ChunkFrames = %d, want 4096", cfg.ChunkFrames)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
input = "x.wav"
channels = ["Mix"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.ChunkFrames != def.ChunkFrames {
		t.Errorf("ChunkFrames = %d, want default %d", cfg.ChunkFrames, def.ChunkFrames)
	}
	if cfg.OutputDir != def.OutputDir {
		t.Errorf("OutputDir = %q, want default %q", cfg.OutputDir, def.OutputDir)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "channels = [")
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing input",
			mutate:  func(c *Config) { c.Input = "" },
			wantErr: ErrNoInput,
		},
		{
			name:    "missing channels",
			mutate:  func(c *Config) { c.Channels = nil },
			wantErr: ErrNoChannels,
		},
		{
			name:    "bad chunk frames",
			mutate:  func(c *Config) { c.ChunkFrames = 0 },
			wantErr: ErrChunkFrames,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Input = "x.wav"
			cfg.Channels = []string{"Mix"}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, Sample())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config does not validate: %v", err)
	}
}
