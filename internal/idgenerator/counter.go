package idgenerator

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// CountKeeper hands out per-tick counts 0, 1, 2, ... for arbitrary ticks.
// Implementations need not be safe for concurrent use.
type CountKeeper interface {
	NextCountFor(tick int64) (uint64, error)
}

type memoryCounter struct {
	counts map[int64]uint64
}

// NewMemoryCounter returns a CountKeeper that remembers every tick it has seen.
// Memory grows with the number of distinct ticks.
func NewMemoryCounter() CountKeeper {
	return &memoryCounter{counts: make(map[int64]uint64)}
}

func (c *memoryCounter) NextCountFor(tick int64) (uint64, error) {
	n := c.counts[tick]
	c.counts[tick] = n + 1
	return n, nil
}

type limitedCounter struct {
	lru        *simplelru.LRU[int64, uint64]
	evicted    bool
	evictFloor int64
}

// NewLimitedCounter returns a CountKeeper that tracks at most size ticks.
// When a tick is evicted, that tick and every older tick not still tracked
// are refused with ErrTickEvicted, since restarting their counts would
// repeat ids.
func NewLimitedCounter(size int) (CountKeeper, error) {
	c := &limitedCounter{}
	lru, err := simplelru.NewLRU[int64, uint64](size, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("limited counter: %w", err)
	}
	c.lru = lru
	return c, nil
}

func (c *limitedCounter) onEvict(tick int64, _ uint64) {
	if !c.evicted || tick > c.evictFloor {
		c.evictFloor = tick
	}
	c.evicted = true
}

func (c *limitedCounter) NextCountFor(tick int64) (uint64, error) {
	if n, ok := c.lru.Get(tick); ok {
		c.lru.Add(tick, n+1)
		return n, nil
	}
	if c.evicted && tick <= c.evictFloor {
		return 0, fmt.Errorf("%w: tick %d is at or before evicted tick %d", ErrTickEvicted, tick, c.evictFloor)
	}
	c.lru.Add(tick, 1)
	return 0, nil
}
