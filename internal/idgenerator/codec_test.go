package idgenerator

import (
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomIDs(n int, seed int64) []ID {
	r := rand.New(rand.NewSource(seed))
	ids := make([]ID, n)
	for i := range ids {
		// Mix full-range values with small ones so short digit strings get padded.
		if i%4 == 0 {
			ids[i] = ID(r.Uint64() >> uint(r.Intn(64)))
		} else {
			ids[i] = ID(r.Uint64())
		}
	}
	return ids
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ids := append(randomIDs(10000, 1), 0, 1, ID(^uint64(0)), ID(^uint64(0)-1))
	for _, id := range ids {
		s := Encode(id)
		require.Len(t, s, EncodedLen)
		got, err := Decode(s)
		require.NoError(t, err, "decode %s", s)
		require.Equal(t, id, got)
	}
}

func TestEncodingPreservesOrder(t *testing.T) {
	ids := randomIDs(2000, 2)
	for i := 1; i < len(ids); i++ {
		x, y := ids[i-1], ids[i]
		assert.Equal(t, x < y, Encode(x) < Encode(y), "x=%d y=%d", x, y)
		assert.Equal(t, x.Compare(y), strings.Compare(Encode(x), Encode(y)))
		assert.Equal(t, x < y, x.Hex() < y.Hex())
	}

	encoded := make([]string, len(ids))
	for i, id := range ids {
		encoded[i] = Encode(id)
	}
	sort.Strings(encoded)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := range ids {
		assert.Equal(t, Encode(ids[i]), encoded[i])
	}
}

func TestEncodeZeroIsPadded(t *testing.T) {
	s := Encode(0)
	assert.Equal(t, strings.Repeat("0", DigitsLen), s[:DigitsLen])
}

func TestDecodeMalformed(t *testing.T) {
	valid := Encode(123456789)

	cases := map[string]string{
		"empty":        "",
		"too short":    valid[:EncodedLen-1],
		"too long":     valid + "0",
		"dash":         "-" + valid[1:],
		"underscore":   valid[:5] + "_" + valid[6:],
		"space":        " " + valid[1:],
		"non-ascii":    valid[:10] + "é",
		"overflow":     strings.Repeat("z", DigitsLen) + "0",
		"just too big": "LygHa16AHYG0",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(in)
			assert.ErrorIs(t, err, ErrMalformedIdentifier)
			assert.NotErrorIs(t, err, ErrChecksumMismatch)
		})
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	for _, id := range randomIDs(200, 3) {
		s := Encode(id)
		last := s[DigitsLen]
		replacement := Alphabet[(strings.IndexByte(Alphabet, last)+1)%len(Alphabet)]
		_, err := Decode(s[:DigitsLen] + string(replacement))
		require.ErrorIs(t, err, ErrChecksumMismatch)
		require.NotErrorIs(t, err, ErrMalformedIdentifier)
	}
}

func TestMustDecodePanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { MustDecode("nope") })
	assert.Equal(t, ID(42), MustDecode(Encode(42)))
}

func TestHexForm(t *testing.T) {
	id := ID(0x00ab00cd00ef0012)
	assert.Equal(t, "00ab00cd00ef0012", id.Hex())

	got, err := ParseHex(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseHex("00ab")
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
	_, err = ParseHex("00ab00cd00ef00zz")
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
}

func TestParseAcceptsBothForms(t *testing.T) {
	id := ID(987654321012345)

	fromText, err := Parse(id.String())
	require.NoError(t, err)
	fromHex, err := Parse(id.Hex())
	require.NoError(t, err)

	assert.Equal(t, id, fromText)
	assert.Equal(t, id, fromHex)
}

func TestBinaryForm(t *testing.T) {
	ids := randomIDs(500, 4)
	for i, id := range ids {
		b := id.Bytes()
		assert.Equal(t, id, FromBytes(b))
		if i > 0 {
			prev := ids[i-1].Bytes()
			assert.Equal(t, ids[i-1] < id, string(prev[:]) < string(b[:]))
		}
	}

	var id ID
	assert.ErrorIs(t, id.UnmarshalBinary([]byte{1, 2, 3}), ErrMalformedIdentifier)

	raw, err := ID(77).MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, id.UnmarshalBinary(raw))
	assert.Equal(t, ID(77), id)
}

func TestJSONUsesTextForm(t *testing.T) {
	type record struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	}
	in := record{ID: ID(1 << 60), Name: "x"}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+Encode(in.ID)+`","name":"x"}`, string(data))

	var out record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"id":12}`), &out))
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"id":"short"}`), &out), ErrMalformedIdentifier)
}

func TestSQLValueAndScan(t *testing.T) {
	id := ID(^uint64(0) - 5)

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, Encode(id), v)

	var got ID
	require.NoError(t, got.Scan(v))
	assert.Equal(t, id, got)

	require.NoError(t, got.Scan([]byte(Encode(9))))
	assert.Equal(t, ID(9), got)

	require.NoError(t, got.Scan(int64(11)))
	assert.Equal(t, ID(11), got)

	require.NoError(t, got.Scan(nil))
	assert.Equal(t, ID(0), got)

	assert.Error(t, got.Scan(3.14))
}
