package idgenerator

import (
	"fmt"
	"sync"
	"time"

	"github.com/yudaprama/timeid/internal/clock"
	"go.uber.org/zap"
)

// IDGenerator is a unique ID generator inspired by Twitter's Snowflake.
// It is safe for concurrent use.
type IDGenerator struct {
	mu     sync.Mutex
	asm    *assembler
	stats  counters
	nodeID int64
	epoch  int64
	layout Layout
}

type options struct {
	clock  clock.Clock
	epoch  int64
	layout Layout
	logger *zap.Logger
}

// Option configures an IDGenerator.
type Option func(*options)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithEpoch sets the instant timestamps are counted from.
func WithEpoch(epoch time.Time) Option {
	return func(o *options) { o.epoch = epoch.UnixMilli() }
}

// WithEpochMillis sets the epoch as Unix milliseconds.
func WithEpochMillis(ms int64) Option {
	return func(o *options) { o.epoch = ms }
}

// WithLayout sets the bit allocation.
func WithLayout(l Layout) Option {
	return func(o *options) { o.layout = l }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// NewIDGenerator creates a new IDGenerator.
// The nodeID must be unique for each running instance of the service.
func NewIDGenerator(nodeID int64, opts ...Option) (*IDGenerator, error) {
	o := options{
		clock:  clock.System(),
		epoch:  DefaultEpoch,
		layout: DefaultLayout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.layout.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateNodeID(o.layout, nodeID); err != nil {
		return nil, err
	}
	now := o.clock.Now() - o.epoch
	if now < 0 || now > o.layout.MaxTimestamp() {
		return nil, fmt.Errorf("%w: clock reads %d ms from epoch %d, layout allows [0, %d]",
			ErrClockOutOfRange, now, o.epoch, o.layout.MaxTimestamp())
	}

	g := &IDGenerator{nodeID: nodeID, epoch: o.epoch, layout: o.layout}
	lg := o.logger.With(zap.String("component", "idgenerator"), zap.Int64("node_id", nodeID))
	g.asm = newAssembler(o.clock, o.epoch, o.layout, nodeID, &g.stats, lg)

	lg.Info("id generator ready",
		zap.Stringer("layout", o.layout),
		zap.Time("epoch", time.UnixMilli(o.epoch).UTC()),
		zap.Duration("lifespan_left", o.layout.Lifespan()-time.Duration(now)*time.Millisecond))
	return g, nil
}

// Generate creates and returns a new unique ID.
// An ID returned by a call that finished before another call started always
// compares lower.
func (g *IDGenerator) Generate() ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.asm.next()
}

// GenerateBatch returns n consecutive ids in ascending order.
func (g *IDGenerator) GenerateBatch(n int) []ID {
	if n <= 0 {
		return nil
	}
	ids := make([]ID, n)
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range ids {
		ids[i] = g.asm.next()
	}
	return ids
}

// NodeID returns the node id embedded in every generated ID.
func (g *IDGenerator) NodeID() int64 { return g.nodeID }

// Layout returns the bit layout.
func (g *IDGenerator) Layout() Layout { return g.layout }

// Epoch returns the instant timestamps are counted from.
func (g *IDGenerator) Epoch() time.Time { return time.UnixMilli(g.epoch).UTC() }

// Decompose splits id using this generator's layout.
func (g *IDGenerator) Decompose(id ID) Components { return g.layout.Decompose(id) }

// Time returns the wall-clock millisecond id was minted in.
func (g *IDGenerator) Time(id ID) time.Time {
	return time.UnixMilli(g.epoch + g.layout.Decompose(id).Timestamp).UTC()
}

// Stats returns the generator's counters.
func (g *IDGenerator) Stats() Stats { return g.stats.snapshot() }
