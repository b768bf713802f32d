// Package config holds the run configuration of the born-seq CLI.
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config captures the knobs for a run or training session.
type Config struct {
	Encoding  string  `yaml:"encoding"`
	EmbedDim  int     `yaml:"embed_dim"`
	HiddenDim int     `yaml:"hidden_dim"`
	Layer     string  `yaml:"layer"`
	Optimizer string  `yaml:"optimizer"`
	Steps     int     `yaml:"steps"`
	LR        float32 `yaml:"lr"`
	Momentum  float32 `yaml:"momentum"`
	Seed      int64   `yaml:"seed"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Encoding  string
	EmbedDim  int
	HiddenDim int
	Layer     string
	Optimizer string
	Steps     int
	LR        float32
	Momentum  float32
	Seed      int64
}

// Default returns a configuration that runs offline.
func Default() *Config {
	return &Config{
		Encoding:  "bytes",
		EmbedDim:  16,
		HiddenDim: 32,
		Layer:     "rnn",
		Optimizer: "sgd",
		Steps:     20,
		LR:        0.05,
		Momentum:  0.9,
		Seed:      1,
	}
}

// Load reads a YAML file on top of Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Encoding != "" {
		c.Encoding = o.Encoding
	}
	if o.EmbedDim > 0 {
		c.EmbedDim = o.EmbedDim
	}
	if o.HiddenDim > 0 {
		c.HiddenDim = o.HiddenDim
	}
	if o.Layer != "" {
		c.Layer = o.Layer
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.LR > 0 {
		c.LR = o.LR
	}
	if o.Momentum > 0 {
		c.Momentum = o.Momentum
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Encoding == "" {
		return errors.New("encoding must be set")
	}
	if c.EmbedDim <= 0 {
		return errors.Errorf("embed_dim must be > 0 (got %d)", c.EmbedDim)
	}
	if c.HiddenDim <= 0 {
		return errors.Errorf("hidden_dim must be > 0 (got %d)", c.HiddenDim)
	}
	switch c.Layer {
	case "rnn", "linear":
	default:
		return errors.Errorf("layer must be rnn or linear (got %q)", c.Layer)
	}
	switch c.Optimizer {
	case "sgd", "adam":
	default:
		return errors.Errorf("optimizer must be sgd or adam (got %q)", c.Optimizer)
	}
	if c.Steps <= 0 {
		return errors.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	if c.LR <= 0 {
		return errors.Errorf("lr must be > 0 (got %g)", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return errors.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	return nil
}
