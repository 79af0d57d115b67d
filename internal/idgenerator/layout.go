package idgenerator

import (
	"fmt"
	"time"
)

const totalBits = 64

const (
	defaultTimestampBits uint8 = 42
	defaultNodeBits      uint8 = 10
	defaultSequenceBits  uint8 = 12
)

// DefaultEpoch is the custom epoch start time (2024-01-01 00:00:00 UTC) in milliseconds.
const DefaultEpoch int64 = 1704067200000

// Layout describes how the 64 bits of an ID are split between timestamp,
// node id and sequence, from most to least significant.
type Layout struct {
	TimestampBits uint8 `json:"timestamp_bits" toml:"timestamp_bits"`
	NodeBits      uint8 `json:"node_bits" toml:"node_bits"`
	SequenceBits  uint8 `json:"sequence_bits" toml:"sequence_bits"`
}

// DefaultLayout is 42 timestamp bits, 10 node bits and 12 sequence bits:
// ~139 years of milliseconds, 1024 nodes and 4096 ids per node per millisecond.
var DefaultLayout = Layout{
	TimestampBits: defaultTimestampBits,
	NodeBits:      defaultNodeBits,
	SequenceBits:  defaultSequenceBits,
}

// Components are the decoded fields of an ID.
type Components struct {
	Timestamp int64  `json:"timestamp"`
	NodeID    int64  `json:"node_id"`
	Sequence  uint64 `json:"sequence"`
}

// Validate checks that the layout fills exactly 64 bits and leaves usable
// room for every field.
func (l Layout) Validate() error {
	sum := int(l.TimestampBits) + int(l.NodeBits) + int(l.SequenceBits)
	switch {
	case sum != totalBits:
		return fmt.Errorf("%w: bits add up to %d, want %d", ErrInvalidLayout, sum, totalBits)
	case l.SequenceBits < 1:
		return fmt.Errorf("%w: at least one sequence bit is required", ErrInvalidLayout)
	case l.TimestampBits < 32:
		return fmt.Errorf("%w: %d timestamp bits cover less than 50 days", ErrInvalidLayout, l.TimestampBits)
	}
	return nil
}

// IsZero reports whether no field has been set.
func (l Layout) IsZero() bool {
	return l.TimestampBits == 0 && l.NodeBits == 0 && l.SequenceBits == 0
}

// MaxTimestamp is the largest timestamp (milliseconds since epoch) the layout holds.
func (l Layout) MaxTimestamp() int64 { return int64(MakeBitMask(int(l.TimestampBits))) }

// MaxNodeID is the largest valid node id.
func (l Layout) MaxNodeID() int64 { return int64(MakeBitMask(int(l.NodeBits))) }

// MaxSequence is the largest sequence value within one tick.
func (l Layout) MaxSequence() uint64 { return MakeBitMask(int(l.SequenceBits)) }

// TicksPerNode is how many ids one node can mint per millisecond.
func (l Layout) TicksPerNode() uint64 { return l.MaxSequence() + 1 }

// Lifespan is how long after the epoch the timestamp field overflows.
func (l Layout) Lifespan() time.Duration {
	// Beyond ~292 years the value no longer fits a Duration.
	ms := l.MaxTimestamp()
	if ms > int64(1<<63-1)/int64(time.Millisecond) {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(ms) * time.Millisecond
}

func (l Layout) timestampShift() uint8 { return l.NodeBits + l.SequenceBits }

// Compose packs the three fields into an ID. Fields are masked to their width.
func (l Layout) Compose(timestamp int64, nodeID int64, sequence uint64) ID {
	raw := TruncateBits(uint64(timestamp), int(l.TimestampBits))<<l.timestampShift() |
		TruncateBits(uint64(nodeID), int(l.NodeBits))<<l.SequenceBits |
		TruncateBits(sequence, int(l.SequenceBits))
	return ID(raw)
}

// Decompose splits an ID into its fields.
func (l Layout) Decompose(id ID) Components {
	raw := uint64(id)
	return Components{
		Timestamp: int64(raw >> l.timestampShift()),
		NodeID:    int64(TruncateBits(raw>>l.SequenceBits, int(l.NodeBits))),
		Sequence:  TruncateBits(raw, int(l.SequenceBits)),
	}
}

// NonTimeBits returns the bits below the timestamp: node id and sequence together.
func (l Layout) NonTimeBits(id ID) uint64 {
	return TruncateBits(uint64(id), int(l.timestampShift()))
}

func (l Layout) String() string {
	return fmt.Sprintf("%d/%d/%d", l.TimestampBits, l.NodeBits, l.SequenceBits)
}
