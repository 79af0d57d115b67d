package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yudaprama/timeid/internal/idgenerator"
	"go.uber.org/zap/zaptest"
)

func TestRunProducesUniqueIDs(t *testing.T) {
	g, err := idgenerator.NewIDGenerator(1)
	require.NoError(t, err)

	res, err := Run(context.Background(), g, 8, 5000, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 40000, res.Total)
	assert.Equal(t, res.Total, res.Unique)
	assert.Equal(t, uint64(40000), res.Stats.Generated)
	assert.Positive(t, res.Rate())
}

func TestRunRejectsEmptyWork(t *testing.T) {
	g, err := idgenerator.NewIDGenerator(1)
	require.NoError(t, err)

	_, err = Run(context.Background(), g, 0, 10, nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), g, 2, 0, nil)
	assert.Error(t, err)
}

// repeating hands out the same id forever.
type repeating struct{}

func (repeating) Generate() idgenerator.ID { return 99 }
func (repeating) Stats() idgenerator.Stats { return idgenerator.Stats{} }

func TestRunCatchesOrderingViolations(t *testing.T) {
	_, err := Run(context.Background(), repeating{}, 2, 3, nil)
	assert.ErrorContains(t, err, "not after")
}

func TestRunCatchesDuplicatesAcrossWorkers(t *testing.T) {
	// One call per worker never trips the ordering check.
	_, err := Run(context.Background(), repeating{}, 2, 1, nil)
	assert.ErrorContains(t, err, "duplicate id")
}

func TestRunStopsOnCancel(t *testing.T) {
	g, err := idgenerator.NewIDGenerator(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, g, 4, 10000, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
