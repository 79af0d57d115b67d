package models

import (
	"time"

	"github.com/yudaprama/timeid/internal/idgenerator"
)

// Config is a struct that defines all the configuration parameters for the generator
type Config struct {
	// Node id embedded in every id, unique per running instance
	NodeID int64 `json:"node_id" toml:"node_id"`
	// RFC3339 instant timestamps count from; empty means 2024-01-01
	Epoch string `json:"epoch,omitempty" toml:"epoch"`
	// Bit allocation; zero value means the default 42/10/12
	Layout idgenerator.Layout `json:"layout,omitempty" toml:"layout"`
	// Derive layout and node id from a shard team instead
	Shard ShardConfig `json:"shard,omitempty" toml:"shard"`
	Stamp StampConfig `json:"stamp,omitempty" toml:"stamp"`
	Bench BenchConfig `json:"bench,omitempty" toml:"bench"`
	Log   LogConfig   `json:"log" toml:"log"`
}

// ShardConfig places the generator in a team of shards. When TeamSize is set
// the node id is the shard index and the layout comes from the team size.
type ShardConfig struct {
	Index    int64 `json:"index" toml:"index"`
	TeamSize int64 `json:"team_size" toml:"team_size"`
}

// Enabled reports whether shard mode is configured.
func (s ShardConfig) Enabled() bool { return s.TeamSize > 0 }

// StampConfig configures the Stamper.
type StampConfig struct {
	CounterSize int `json:"counter_size" toml:"counter_size"` // Ticks remembered; 0 keeps every tick
}

// BenchConfig holds defaults for load runs.
type BenchConfig struct {
	Workers   int `json:"workers" toml:"workers"`
	PerWorker int `json:"per_worker" toml:"per_worker"`
}

// LogConfig defines log-related configuration
type LogConfig struct {
	Level      string `json:"level" toml:"level"`             // Log level, e.g., "debug", "info", "warn", "error"
	Output     string `json:"output" toml:"output"`           // Output mode: "console", "file", "both"
	File       string `json:"file" toml:"file"`               // Log file path
	MaxSize    int    `json:"max_size" toml:"max_size"`       // Maximum size of a single log file (MB)
	MaxBackups int    `json:"max_backups" toml:"max_backups"` // Maximum number of old log files to retain
	MaxAge     int    `json:"max_age" toml:"max_age"`         // Maximum retention days for old log files
	Compress   bool   `json:"compress" toml:"compress"`       // Whether to compress old log files
}

// EpochTime parses Epoch, falling back to the default epoch when empty.
func (c *Config) EpochTime() (time.Time, error) {
	if c.Epoch == "" {
		return time.UnixMilli(idgenerator.DefaultEpoch).UTC(), nil
	}
	return time.Parse(time.RFC3339, c.Epoch)
}

// EffectiveLayout returns the layout the generator will run with.
func (c *Config) EffectiveLayout() (idgenerator.Layout, error) {
	if c.Shard.Enabled() {
		return idgenerator.ShardLayout(c.Shard.TeamSize)
	}
	if c.Layout.IsZero() {
		return idgenerator.DefaultLayout, nil
	}
	return c.Layout, nil
}

// EffectiveNodeID returns the shard index in shard mode and NodeID otherwise.
func (c *Config) EffectiveNodeID() int64 {
	if c.Shard.Enabled() {
		return c.Shard.Index
	}
	return c.NodeID
}
