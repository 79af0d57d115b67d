package idgenerator

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"
)

// ID is a 64-bit time-ordered identifier. Its raw value, its Bytes and its
// String all sort in generation order.
type ID uint64

// Uint64 returns the raw value.
func (id ID) Uint64() uint64 { return uint64(id) }

// String returns the fixed-width text form, see Encode.
func (id ID) String() string { return Encode(id) }

// Hex returns 16 lowercase hex digits.
func (id ID) Hex() string { return fmt.Sprintf("%016x", uint64(id)) }

// Bytes returns the 8-byte big-endian representation.
func (id ID) Bytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b
}

// FromBytes rebuilds an ID from its 8-byte big-endian representation.
func FromBytes(b [8]byte) ID { return ID(binary.BigEndian.Uint64(b[:])) }

// Compare returns -1, 0 or 1.
func (id ID) Compare(other ID) int {
	switch {
	case id < other:
		return -1
	case id > other:
		return 1
	}
	return 0
}

// Components decodes the fields using DefaultLayout.
func (id ID) Components() Components { return DefaultLayout.Decompose(id) }

// Time returns the creation time of an id minted with DefaultLayout and DefaultEpoch.
func (id ID) Time() time.Time {
	return time.UnixMilli(DefaultEpoch + id.Components().Timestamp).UTC()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return []byte(Encode(id)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := Decode(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id ID) MarshalBinary() ([]byte, error) {
	b := id.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("%w: %d bytes, want 8", ErrMalformedIdentifier, len(data))
	}
	*id = ID(binary.BigEndian.Uint64(data))
	return nil
}

// MarshalJSON writes the text form as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(id)) }

// UnmarshalJSON reads the text form from a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedIdentifier, err)
	}
	return id.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. The text form is stored so that database
// ordering matches generation order even for ids above MaxInt64.
func (id ID) Value() (driver.Value, error) { return Encode(id), nil }

// Scan implements sql.Scanner.
func (id *ID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*id = 0
		return nil
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	case int64:
		*id = ID(uint64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ID", value)
	}
}
