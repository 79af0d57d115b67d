package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yudaprama/timeid/internal/idgenerator"
	"github.com/yudaprama/timeid/internal/models"
	"go.uber.org/multierr"
)

// Environment variables that override file settings.
const (
	EnvNodeID   = "TIMEID_NODE_ID"
	EnvEpoch    = "TIMEID_EPOCH"
	EnvLogLevel = "TIMEID_LOG_LEVEL"
)

// Default returns the configuration used when no file is given.
func Default() *models.Config {
	return &models.Config{
		Layout: idgenerator.DefaultLayout,
		Stamp:  models.StampConfig{CounterSize: 4096},
		Bench:  models.BenchConfig{Workers: 8, PerWorker: 100000},
		Log: models.LogConfig{
			Level:      "info",
			Output:     "console",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// LoadConfig load the configuration file from the specified path and parse it into the Config structure.
// Files ending in .toml are read as TOML, everything else as JSON. Fields the
// file does not mention keep their Default values.
func LoadConfig(path string) (*models.Config, error) {
	config := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return config, nil
}

// ApplyEnv overrides cfg with any TIMEID_* variables that are set.
func ApplyEnv(cfg *models.Config) error {
	if v, ok := os.LookupEnv(EnvNodeID); ok && v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNodeID, err)
		}
		cfg.NodeID = n
	}
	if v, ok := os.LookupEnv(EnvEpoch); ok && v != "" {
		cfg.Epoch = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.TrimSpace(v)
	}
	return nil
}

// Validate reports every problem in cfg at once.
func Validate(cfg *models.Config) error {
	var errs error

	layout, err := cfg.EffectiveLayout()
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("layout: %w", err))
	} else if err := layout.Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("layout: %w", err))
	} else if err := idgenerator.ValidateNodeID(layout, cfg.EffectiveNodeID()); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("node_id: %w", err))
	}
	if cfg.Shard.Enabled() && (cfg.Shard.Index < 0 || cfg.Shard.Index >= cfg.Shard.TeamSize) {
		errs = multierr.Append(errs, fmt.Errorf("shard: index %d not in team of %d", cfg.Shard.Index, cfg.Shard.TeamSize))
	}

	if _, err := cfg.EpochTime(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("epoch: %w", err))
	}
	if cfg.Stamp.CounterSize < 0 {
		errs = multierr.Append(errs, fmt.Errorf("stamp.counter_size: must not be negative, got %d", cfg.Stamp.CounterSize))
	}
	if cfg.Bench.Workers < 0 || cfg.Bench.PerWorker < 0 {
		errs = multierr.Append(errs, fmt.Errorf("bench: workers and per_worker must not be negative"))
	}

	switch strings.ToLower(cfg.Log.Output) {
	case "", "console", "file", "both":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.output: unknown mode %q", cfg.Log.Output))
	}
	if out := strings.ToLower(cfg.Log.Output); (out == "file" || out == "both") && cfg.Log.File == "" {
		errs = multierr.Append(errs, fmt.Errorf("log.file: required when output is %q", cfg.Log.Output))
	}
	return errs
}

// GeneratorOptions translates cfg into idgenerator options. Validate first.
func GeneratorOptions(cfg *models.Config) ([]idgenerator.Option, error) {
	epoch, err := cfg.EpochTime()
	if err != nil {
		return nil, fmt.Errorf("epoch: %w", err)
	}
	layout, err := cfg.EffectiveLayout()
	if err != nil {
		return nil, err
	}
	return []idgenerator.Option{idgenerator.WithEpoch(epoch), idgenerator.WithLayout(layout)}, nil
}
