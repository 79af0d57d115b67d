package idgenerator

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/yudaprama/timeid/internal/clock"
	"go.uber.org/zap"
)

// spinsBeforeSleep is how many times the wait loop yields before it starts
// sleeping between clock reads.
const spinsBeforeSleep = 64

// noTick marks a generator that has not minted anything yet.
const noTick int64 = -1

// Stats is a snapshot of a generator's counters.
type Stats struct {
	Generated   uint64        `json:"generated"`
	Overflows   uint64        `json:"overflows"`   // ticks whose sequence ran out
	Regressions uint64        `json:"regressions"` // clock steps backwards observed
	WaitTime    time.Duration `json:"wait_time"`   // total time spent waiting for the clock
}

type counters struct {
	generated   atomic.Uint64
	overflows   atomic.Uint64
	regressions atomic.Uint64
	waitNanos   atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Generated:   c.generated.Load(),
		Overflows:   c.overflows.Load(),
		Regressions: c.regressions.Load(),
		WaitTime:    time.Duration(c.waitNanos.Load()),
	}
}

// assembler combines clock readings, the node id and the per-tick sequence
// into ids. It is not safe for concurrent use; IDGenerator serializes calls.
type assembler struct {
	clock  clock.Clock
	epoch  int64
	layout Layout
	nodeID int64

	last      int64
	seq       sequence
	regressed bool

	stats *counters
	lg    *zap.Logger
	pause func(spin int)
}

func newAssembler(c clock.Clock, epoch int64, layout Layout, nodeID int64, stats *counters, lg *zap.Logger) *assembler {
	return &assembler{
		clock:  c,
		epoch:  epoch,
		layout: layout,
		nodeID: nodeID,
		last:   noTick,
		seq:    newSequence(layout.MaxSequence()),
		stats:  stats,
		lg:     lg,
		pause:  defaultPause,
	}
}

func defaultPause(spin int) {
	if spin < spinsBeforeSleep {
		runtime.Gosched()
		return
	}
	time.Sleep(time.Millisecond / 8)
}

// tick reads the clock relative to the epoch. Readings before the epoch are
// clamped to zero and end up on the regression path.
func (a *assembler) tick() int64 {
	t := a.clock.Now() - a.epoch
	if t < 0 {
		return 0
	}
	if t > a.layout.MaxTimestamp() {
		panic(fmt.Errorf("%w: %d ms after epoch exceeds %d timestamp bits", ErrClockOutOfRange, t, a.layout.TimestampBits))
	}
	return t
}

func (a *assembler) adopt(t int64) {
	a.last = t
	a.seq.reset()
	a.regressed = false
}

// next mints one id. It never fails: a clock regression keeps the last tick
// and a sequence overflow waits for the clock to pass the last tick.
func (a *assembler) next() ID {
	t := a.tick()
	switch {
	case t > a.last:
		a.adopt(t)
	case t < a.last && !a.regressed:
		a.regressed = true
		a.stats.regressions.Add(1)
		a.lg.Warn("clock moved backwards, holding last tick",
			zap.Int64("last_tick", a.last),
			zap.Int64("observed_tick", t),
			zap.Int64("behind_ms", a.last-t))
	}

	s, ok := a.seq.next()
	if !ok {
		a.stats.overflows.Add(1)
		a.adopt(a.waitPast(a.last))
		s, _ = a.seq.next()
	}

	a.stats.generated.Add(1)
	return a.layout.Compose(a.last, a.nodeID, s)
}

// waitPast blocks until the clock reads a tick later than last.
func (a *assembler) waitPast(last int64) int64 {
	start := time.Now()
	for spin := 0; ; spin++ {
		if t := a.tick(); t > last {
			a.stats.waitNanos.Add(int64(time.Since(start)))
			return t
		}
		a.pause(spin)
	}
}
