package idgenerator

import "errors"

var (
	// ErrInvalidNodeID is returned when a node id does not fit the layout's node bits.
	ErrInvalidNodeID = errors.New("node ID out of range")
	// ErrInvalidLayout is returned for bit layouts that do not add up to 64 bits
	// or leave a field without room.
	ErrInvalidLayout = errors.New("invalid bit layout")
	// ErrClockOutOfRange is returned when a time cannot be represented by the
	// layout's timestamp bits relative to the epoch.
	ErrClockOutOfRange = errors.New("clock reading outside timestamp range")
	// ErrMalformedIdentifier is returned when decoding input of the wrong length
	// or with characters outside the alphabet.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrChecksumMismatch is returned when the checksum character does not match
	// the digits it guards.
	ErrChecksumMismatch = errors.New("identifier checksum mismatch")
	// ErrTickExhausted is returned by a Stamper when every sequence value of a
	// tick has been handed out.
	ErrTickExhausted = errors.New("no sequence values left for tick")
	// ErrTickEvicted is returned by a Stamper when its counter has already
	// forgotten a tick and cannot hand out more values without risking duplicates.
	ErrTickEvicted = errors.New("tick was evicted from counter")
	// ErrInvalidTeamSize is returned for shard teams with fewer than one member.
	ErrInvalidTeamSize = errors.New("team size must be at least 1")
)
