package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock supplies the current wall-clock time in Unix milliseconds.
type Clock interface {
	Now() int64
}

// Func adapts a plain function to the Clock interface.
type Func func() int64

// Now calls f.
func (f Func) Now() int64 { return f() }

type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().UnixMilli() }

// System returns the real system clock.
func System() Clock { return systemClock{} }

// FromClockwork adapts a clockwork clock, so a clockwork fake clock can drive
// anything that reads a Clock.
func FromClockwork(c clockwork.Clock) Clock {
	return Func(func() int64 { return c.Now().UnixMilli() })
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	ms atomic.Int64
}

// NewManual creates a Manual clock reading startMs.
func NewManual(startMs int64) *Manual {
	m := &Manual{}
	m.ms.Store(startMs)
	return m
}

// Now returns the current manual reading.
func (m *Manual) Now() int64 { return m.ms.Load() }

// Set moves the clock to ms, backwards or forwards.
func (m *Manual) Set(ms int64) { m.ms.Store(ms) }

// Advance moves the clock by d milliseconds (negative values rewind it).
func (m *Manual) Advance(d int64) int64 { return m.ms.Add(d) }

// Scripted computes each reading from how many times it has been read.
// The first read passes 1 to the script.
type Scripted struct {
	mu     sync.Mutex
	reads  int64
	script func(read int64) int64
}

// NewScripted creates a Scripted clock.
func NewScripted(script func(read int64) int64) *Scripted {
	return &Scripted{script: script}
}

// Now advances the read counter and returns the scripted value for it.
func (s *Scripted) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.script(s.reads)
}

// Reads returns how many times the clock has been read.
func (s *Scripted) Reads() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// HoldThen returns a script that reports held for the first n reads and
// after from then on.
func HoldThen(held int64, n int64, after int64) func(int64) int64 {
	return func(read int64) int64 {
		if read <= n {
			return held
		}
		return after
	}
}

// Sequence returns a script that walks through readings and then repeats the
// last one forever.
func Sequence(readings ...int64) func(int64) int64 {
	return func(read int64) int64 {
		if len(readings) == 0 {
			return 0
		}
		if int(read) > len(readings) {
			return readings[len(readings)-1]
		}
		return readings[read-1]
	}
}
