package utils

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds the configuration for the game
type Config struct {
	Width         int   `json:"width"`     // board width in pixels
	Height        int   `json:"height"`    // board height in pixels
	CellSize      int   `json:"cell_size"` // pixels per cell
	IntervalMS    int   `json:"interval_ms"`
	UseParallel   bool  `json:"use_parallel"`
	UseMemoryPool bool  `json:"use_memory_pool"`
	Seed          int64 `json:"seed"` // 0 seeds from the clock
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		CellSize:      20,
		IntervalMS:    100,
		UseParallel:   false,
		UseMemoryPool: true,
	}
}

// Rows returns the number of board rows for the configured cell size
func (c Config) Rows() int {
	return c.Height / c.CellSize
}

// Cols returns the number of board columns for the configured cell size
func (c Config) Cols() int {
	return c.Width / c.CellSize
}

// Interval returns the delay between generations
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Validate checks that the configuration yields a non-empty board
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Validate] board dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.CellSize <= 0 {
		return errors.Errorf("[Validate] cell size must be positive, got %d", c.CellSize)
	}
	if c.CellSize > c.Width || c.CellSize > c.Height {
		return errors.Errorf("[Validate] cell size %d does not fit a %dx%d board", c.CellSize, c.Width, c.Height)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// LoadEnvFile loads variables from a .env file into the process environment.
// Variables already set are left untouched.
func LoadEnvFile(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return errors.Wrap(err, "[LoadEnvFile] failed to load env file")
	}
	return nil
}

// ApplyEnv overrides config fields from LIFE_* environment variables
func ApplyEnv(config Config) (Config, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{"LIFE_WIDTH", &config.Width},
		{"LIFE_HEIGHT", &config.Height},
		{"LIFE_CELL_SIZE", &config.CellSize},
		{"LIFE_INTERVAL_MS", &config.IntervalMS},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s", v.key)
		}
		*v.dst = n
	}

	if raw := os.Getenv("LIFE_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return config, errors.Wrap(err, "[ApplyEnv] invalid LIFE_SEED")
		}
		config.Seed = seed
	}

	return config, nil
}
