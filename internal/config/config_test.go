package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yudaprama/timeid/internal/idgenerator"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "timeid.json", `{
		"node_id": 12,
		"epoch": "2020-01-01T00:00:00Z",
		"log": {"level": "debug", "output": "console"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(12), cfg.NodeID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, idgenerator.DefaultLayout, cfg.Layout, "defaults survive")
	assert.Equal(t, 4096, cfg.Stamp.CounterSize)

	epoch, err := cfg.EpochTime()
	require.NoError(t, err)
	assert.True(t, epoch.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, Validate(cfg))
}

func TestLoadJSONRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "timeid.json", `{"node_idd": 3}`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "timeid.toml", `
node_id = 5

[layout]
timestamp_bits = 44
node_bits = 8
sequence_bits = 12

[shard]
index = 0
team_size = 0

[log]
level = "warn"
output = "both"
file = "timeid.log"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(5), cfg.NodeID)
	assert.Equal(t, idgenerator.Layout{TimestampBits: 44, NodeBits: 8, SequenceBits: 12}, cfg.Layout)
	assert.Equal(t, "both", cfg.Log.Output)
	require.NoError(t, Validate(cfg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvNodeID, " 77 ")
	t.Setenv(EnvEpoch, "2022-06-01T00:00:00Z")
	t.Setenv(EnvLogLevel, "error")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, int64(77), cfg.NodeID)
	assert.Equal(t, "2022-06-01T00:00:00Z", cfg.Epoch)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestApplyEnvBadNodeID(t *testing.T) {
	t.Setenv(EnvNodeID, "seven")
	assert.Error(t, ApplyEnv(Default()))
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.NodeID = 5000
	cfg.Epoch = "yesterday"
	cfg.Stamp.CounterSize = -1
	cfg.Log.Output = "file"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.ErrorIs(t, err, idgenerator.ErrInvalidNodeID)
}

func TestValidateShardMode(t *testing.T) {
	cfg := Default()
	cfg.NodeID = 5000 // ignored in shard mode
	cfg.Shard.TeamSize = 4
	cfg.Shard.Index = 3
	require.NoError(t, Validate(cfg))

	layout, err := cfg.EffectiveLayout()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), layout.NodeBits)
	assert.Equal(t, int64(3), cfg.EffectiveNodeID())

	cfg.Shard.Index = 4
	assert.Error(t, Validate(cfg))
}

func TestGeneratorOptionsBuildAWorkingGenerator(t *testing.T) {
	cfg := Default()
	cfg.NodeID = 9
	cfg.Epoch = "2023-01-01T00:00:00Z"

	opts, err := GeneratorOptions(cfg)
	require.NoError(t, err)
	g, err := idgenerator.NewIDGenerator(cfg.EffectiveNodeID(), opts...)
	require.NoError(t, err)

	assert.True(t, g.Epoch().Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(9), g.Decompose(g.Generate()).NodeID)
}
