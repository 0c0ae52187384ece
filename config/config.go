// Package config holds the CLI settings. Values are layered: defaults,
// then an optional YAML file, then MILES_* environment variables. Flags
// are applied on top by the CLI.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/TheoLvs/music-analysis/audio"
	"github.com/TheoLvs/music-analysis/playlist"
	"github.com/TheoLvs/music-analysis/types"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	Extension  string  `yaml:"extension"`
	Limit      int     `yaml:"limit"`
	Quality    string  `yaml:"quality"`     // fast or best
	Duration   float64 `yaml:"duration"`    // seconds, 0 for whole files
	SampleRate int     `yaml:"sample_rate"` // 0 for the default rate

	OutputDir string `yaml:"output_dir"`
	WheelSize int    `yaml:"wheel_size"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		Extension: playlist.DefaultExtension,
		Quality:   audio.Fast.String(),
		OutputDir: ".",
		WheelSize: 800,
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "error reading config file")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "error parsing %s", path)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.LogLevel = envStr("MILES_LOG_LEVEL", c.LogLevel)
	c.LogJSON = envBool("MILES_LOG_JSON", c.LogJSON)
	c.Extension = envStr("MILES_EXTENSION", c.Extension)
	c.Limit = envInt("MILES_LIMIT", c.Limit)
	c.Quality = envStr("MILES_QUALITY", c.Quality)
	c.Duration = envFloat("MILES_DURATION", c.Duration)
	c.SampleRate = envInt("MILES_SAMPLE_RATE", c.SampleRate)
	c.OutputDir = envStr("MILES_OUTPUT_DIR", c.OutputDir)
	c.WheelSize = envInt("MILES_WHEEL_SIZE", c.WheelSize)
}

func (c Config) Validate() error {
	if c.Limit < 0 {
		return errors.Wrapf(types.ErrInvalidOptions, "negative limit %d", c.Limit)
	}
	_, err := c.AudioOptions()
	return err
}

// AudioOptions converts the decoding settings.
func (c Config) AudioOptions() (audio.Options, error) {
	q, err := audio.ParseQuality(c.Quality)
	if err != nil {
		return audio.Options{}, err
	}
	opts := audio.Options{Quality: q, Duration: c.Duration, SampleRate: c.SampleRate}
	return opts, opts.Validate()
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
