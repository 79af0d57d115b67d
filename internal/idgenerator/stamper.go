package idgenerator

import (
	"fmt"
	"sync"
	"time"
)

// Stamper mints ids for instants supplied by the caller instead of the
// clock, e.g. when assigning ids to historical records. Unlike IDGenerator it
// cannot wait for a new tick, so a full tick is an error.
type Stamper struct {
	mu     sync.Mutex
	nodeID int64
	epoch  int64
	layout Layout
	keeper CountKeeper
}

// NewStamper creates a Stamper. A nil keeper means NewMemoryCounter. Only the
// epoch and layout options apply.
func NewStamper(nodeID int64, keeper CountKeeper, opts ...Option) (*Stamper, error) {
	o := options{epoch: DefaultEpoch, layout: DefaultLayout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.layout.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateNodeID(o.layout, nodeID); err != nil {
		return nil, err
	}
	if keeper == nil {
		keeper = NewMemoryCounter()
	}
	return &Stamper{nodeID: nodeID, epoch: o.epoch, layout: o.layout, keeper: keeper}, nil
}

// StampAt mints the next id for the millisecond containing t.
func (s *Stamper) StampAt(t time.Time) (ID, error) {
	return s.StampMillis(t.UnixMilli())
}

// StampMillis mints the next id for a Unix millisecond.
func (s *Stamper) StampMillis(unixMs int64) (ID, error) {
	tick := unixMs - s.epoch
	if tick < 0 || tick > s.layout.MaxTimestamp() {
		return 0, fmt.Errorf("%w: %d ms from epoch", ErrClockOutOfRange, tick)
	}

	s.mu.Lock()
	n, err := s.keeper.NextCountFor(tick)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if n > s.layout.MaxSequence() {
		return 0, fmt.Errorf("%w: tick %d already has %d ids", ErrTickExhausted, tick, s.layout.TicksPerNode())
	}
	return s.layout.Compose(tick, s.nodeID, n), nil
}

// NodeID returns the node id embedded in stamped ids.
func (s *Stamper) NodeID() int64 { return s.nodeID }

// Layout returns the bit layout.
func (s *Stamper) Layout() Layout { return s.layout }
