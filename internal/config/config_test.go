package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bytes", cfg.Encoding)
	assert.Equal(t, "rnn", cfg.Layer)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
encoding: cl100k_base
embed_dim: 8
layer: linear
optimizer: adam
steps: 5
lr: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cl100k_base", cfg.Encoding)
	assert.Equal(t, 8, cfg.EmbedDim)
	assert.Equal(t, "linear", cfg.Layer)
	assert.Equal(t, "adam", cfg.Optimizer)
	assert.Equal(t, 5, cfg.Steps)
	assert.Equal(t, float32(0.5), cfg.LR)

	// Unset keys keep their defaults.
	assert.Equal(t, Default().HiddenDim, cfg.HiddenDim)
	assert.Equal(t, Default().Seed, cfg.Seed)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown key", body: "batch_size: 3\n"},
		{name: "bad type", body: "steps: many\n"},
		{name: "invalid value", body: "layer: lstm\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{Layer: "linear", Steps: 3, LR: 0.2, Seed: 9})

	assert.Equal(t, "linear", cfg.Layer)
	assert.Equal(t, 3, cfg.Steps)
	assert.Equal(t, float32(0.2), cfg.LR)
	assert.Equal(t, int64(9), cfg.Seed)

	// Zero values leave the config alone.
	assert.Equal(t, Default().EmbedDim, cfg.EmbedDim)
	assert.Equal(t, Default().Encoding, cfg.Encoding)
	assert.Equal(t, Default().Momentum, cfg.Momentum)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty encoding", mutate: func(c *Config) { c.Encoding = "" }},
		{name: "zero embed", mutate: func(c *Config) { c.EmbedDim = 0 }},
		{name: "negative hidden", mutate: func(c *Config) { c.HiddenDim = -1 }},
		{name: "unknown layer", mutate: func(c *Config) { c.Layer = "gru" }},
		{name: "unknown optimizer", mutate: func(c *Config) { c.Optimizer = "rmsprop" }},
		{name: "no steps", mutate: func(c *Config) { c.Steps = 0 }},
		{name: "zero lr", mutate: func(c *Config) { c.LR = 0 }},
		{name: "momentum one", mutate: func(c *Config) { c.Momentum = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
