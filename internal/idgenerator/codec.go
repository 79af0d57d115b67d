package idgenerator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jxskiss/base62"
)

// Alphabet is in ASCII order, so comparing encoded ids byte by byte gives the
// same result as comparing their raw values.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// DigitsLen is the number of base62 digits needed for any uint64 (62^11 > 2^64).
	DigitsLen = 11
	// EncodedLen is the length of every encoded id: the digits plus one checksum character.
	EncodedLen = DigitsLen + 1
	// HexLen is the length of the hex form.
	HexLen = 16
)

var (
	encoding  = base62.NewEncoding(Alphabet)
	maxDigits = padDigits(encoding.FormatUint(^uint64(0)))
	inAlpha   [256]bool
)

func init() {
	for i := 0; i < len(Alphabet); i++ {
		inAlpha[Alphabet[i]] = true
	}
}

func padDigits(digits []byte) string {
	if len(digits) >= DigitsLen {
		return string(digits)
	}
	return strings.Repeat("0", DigitsLen-len(digits)) + string(digits)
}

func checksum(digits string) byte {
	return Alphabet[xxhash.Sum64String(digits)%uint64(len(Alphabet))]
}

// Encode renders id as 11 zero-padded base62 digits followed by a checksum character.
func Encode(id ID) string {
	digits := padDigits(encoding.FormatUint(uint64(id)))
	return digits + string(checksum(digits))
}

// Decode parses the form produced by Encode. It fails with
// ErrMalformedIdentifier for wrong length, foreign characters or digits that
// overflow 64 bits, and with ErrChecksumMismatch when the last character does
// not match.
func Decode(s string) (ID, error) {
	if len(s) != EncodedLen {
		return 0, fmt.Errorf("%w: length %d, want %d", ErrMalformedIdentifier, len(s), EncodedLen)
	}
	for i := 0; i < len(s); i++ {
		if !inAlpha[s[i]] {
			return 0, fmt.Errorf("%w: character %q at position %d", ErrMalformedIdentifier, s[i], i)
		}
	}
	digits := s[:DigitsLen]
	if digits > maxDigits {
		return 0, fmt.Errorf("%w: %s exceeds 64 bits", ErrMalformedIdentifier, digits)
	}
	if want := checksum(digits); s[DigitsLen] != want {
		return 0, fmt.Errorf("%w: got %q, want %q", ErrChecksumMismatch, s[DigitsLen], want)
	}
	v, err := encoding.ParseUint([]byte(digits))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedIdentifier, err)
	}
	return ID(v), nil
}

// MustDecode is like Decode but panics on error. Intended for constants in tests.
func MustDecode(s string) ID {
	id, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseHex parses the 16-digit form produced by ID.Hex.
func ParseHex(s string) (ID, error) {
	if len(s) != HexLen {
		return 0, fmt.Errorf("%w: length %d, want %d", ErrMalformedIdentifier, len(s), HexLen)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedIdentifier, err)
	}
	return ID(v), nil
}

// Parse accepts either the encoded text form or the hex form.
func Parse(s string) (ID, error) {
	if len(s) == HexLen {
		return ParseHex(s)
	}
	return Decode(s)
}
