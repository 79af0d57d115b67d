package idgenerator

import (
	"fmt"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// MakeBitMask returns a value with the n lowest bits set.
func MakeBitMask(n int) uint64 {
	switch {
	case n <= 0:
		return 0
	case n >= 64:
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

// TruncateBits keeps only the n lowest bits of v.
func TruncateBits(v uint64, n int) uint64 {
	return v & MakeBitMask(n)
}

// BitsRequiredFor returns how many bits are needed to number n distinct
// items 0..n-1. One item needs zero bits.
func BitsRequiredFor(n int64) (uint8, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, n)
	}
	return uint8(bits.Len64(uint64(n - 1))), nil
}

// HashBits returns n well-dispersed bits derived from key.
func HashBits(key string, n int) uint64 {
	return TruncateBits(xxhash.Sum64String(key), n)
}

// HashedID builds an ID whose non-time bits come from hashing key instead of
// from a node id and sequence. Useful to derive a stable id for a record that
// already carries a timestamp; uniqueness then rests on the hash.
func HashedID(layout Layout, timestamp int64, key string) ID {
	nonTime := int(layout.NodeBits + layout.SequenceBits)
	raw := TruncateBits(uint64(timestamp), int(layout.TimestampBits))<<uint(nonTime) | HashBits(key, nonTime)
	return ID(raw)
}
