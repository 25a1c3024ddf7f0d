// Package config assembles service settings from built-in defaults, an
// optional YAML file named by INSIGHTS_CONFIG and environment variables, in
// that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"interview-insights-go/internal/assembler"
	"interview-insights-go/internal/segmenter"
)

const (
	PerspectiveRandom = "random"
	PerspectiveFirst  = "first"
)

type Transcription struct {
	URL        string `yaml:"url"`
	Mock       bool   `yaml:"mock"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

func (t Transcription) Timeout() time.Duration { return time.Duration(t.TimeoutSec) * time.Second }

// Perspective controls how rewrite candidates are chosen. With Mode random
// and a Seed, output is reproducible.
type Perspective struct {
	Mode string `yaml:"mode"`
	Seed *int64 `yaml:"seed"`
}

type Config struct {
	Port           string           `yaml:"port"`
	InterviewerTag string           `yaml:"interviewer_tag"`
	Workers        int              `yaml:"workers"`
	Transcription  Transcription    `yaml:"transcription"`
	Perspective    Perspective      `yaml:"perspective"`
	Segmenter      segmenter.Config `yaml:"segmenter"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		InterviewerTag: assembler.DefaultInterviewerTag,
		Workers:        runtime.NumCPU(),
		Transcription:  Transcription{TimeoutSec: 40},
		Perspective:    Perspective{Mode: PerspectiveRandom},
		Segmenter:      segmenter.DefaultConfig(),
	}
}

// Load builds the configuration and validates it.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("INSIGHTS_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("TRANSCRIBE_URL"); v != "" {
		c.Transcription.URL = v
	}
	if v := os.Getenv("USE_MOCK_TRANSCRIBE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("USE_MOCK_TRANSCRIBE: %w", err)
		}
		c.Transcription.Mock = b
	}
	if v := os.Getenv("INTERVIEWER_TAG"); v != "" {
		c.InterviewerTag = v
	}
	if v := os.Getenv("PERSPECTIVE_MODE"); v != "" {
		c.Perspective.Mode = strings.ToLower(v)
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"TRANSCRIBE_TIMEOUT_SEC", &c.Transcription.TimeoutSec},
		{"PIPELINE_WORKERS", &c.Workers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v := os.Getenv("PERSPECTIVE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PERSPECTIVE_SEED: %w", err)
		}
		c.Perspective.Seed = &seed
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Transcription.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("transcription timeout must be positive, got %d", c.Transcription.TimeoutSec))
	}
	switch c.Perspective.Mode {
	case PerspectiveRandom, PerspectiveFirst:
	default:
		errs = append(errs, fmt.Errorf("perspective mode must be %q or %q, got %q", PerspectiveRandom, PerspectiveFirst, c.Perspective.Mode))
	}
	if err := c.Segmenter.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
