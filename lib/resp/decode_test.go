package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripFrames covers every variant, including nesting and binary
// payloads
func roundTripFrames() []Frame {
	m := NewMap()
	m.MapSet("foo", BulkString([]byte("bar")))
	m.MapSet("bar", Integer(-42))

	nested := NewMap()
	nested.MapSet("inner", Array(Integer(1), Integer(2)))

	return []Frame{
		SimpleString("OK"),
		SimpleError("ERR message"),
		Integer(100),
		Integer(-100),
		Integer(0),
		BulkString([]byte("foobar")),
		BulkString([]byte("binary\r\nwith\r\nbreaks")),
		BulkString([]byte{0x00, 0xff, 0xfe}),
		BulkString(nil),
		NullBulkString(),
		Array(SimpleString("foo"), BulkString([]byte("bar"))),
		Array(),
		NullArray(),
		Null(),
		Boolean(true),
		Boolean(false),
		Double(3.44),
		Double(-1.23456e-9),
		Double(math.Inf(1)),
		Double(math.Inf(-1)),
		Double(math.NaN()),
		m,
		nested,
		Set(SimpleString("a"), Integer(1)),
		Array(Array(Array(BulkString([]byte("deep"))))),
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, frame := range roundTripFrames() {
		encoded := frame.Encode()

		decoded, consumed, err := Decode(encoded)
		require.NoError(t, err, "decoding %q", encoded)
		assert.Equal(t, len(encoded), consumed, "decoding %q", encoded)
		assert.True(t, decoded.Equal(frame), "round trip of %q: got %v", encoded, decoded)
	}
}

func TestDecodeIncrementalStability(t *testing.T) {
	for _, frame := range roundTripFrames() {
		encoded := frame.Encode()

		// every strict prefix must signal Incomplete and consume nothing
		for k := 0; k < len(encoded); k++ {
			_, consumed, err := Decode(encoded[:k])
			assert.ErrorIs(t, err, ErrIncomplete, "prefix %q", encoded[:k])
			assert.Zero(t, consumed)
		}

		// the full buffer decodes identically no matter how it was
		// accumulated
		decoded, consumed, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), consumed)
		assert.True(t, decoded.Equal(frame))
	}
}

func TestDecodeConsumesOneFrame(t *testing.T) {
	first := Array(BulkString([]byte("get")), BulkString([]byte("key")))
	second := SimpleString("OK")

	buf := append(first.Encode(), second.Encode()...)

	decoded, consumed, err := Decode(buf)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(first))

	decoded, rest, err := Decode(buf[consumed:])
	require.NoError(t, err)
	assert.True(t, decoded.Equal(second))
	assert.Equal(t, len(buf), consumed+rest)
}

func TestDecodeDoesNotAliasBuffer(t *testing.T) {
	buf := BulkString([]byte("foobar")).Encode()

	decoded, _, err := Decode(buf)
	require.NoError(t, err)

	// mutating the input buffer afterwards must not change the frame
	for i := range buf {
		buf[i] = 'X'
	}
	assert.True(t, decoded.Equal(BulkString([]byte("foobar"))))
}

func TestDecodeProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown tag", "?abc\r\n"},
		{"non-numeric integer", ":abc\r\n"},
		{"non-numeric length", "$abc\r\n"},
		{"invalid negative length", "$-2\r\n"},
		{"bulk not CRLF terminated", "$3\r\nabcd\r\n"},
		{"invalid boolean", "#x\r\n"},
		{"non-numeric double", ",notanum\r\n"},
		{"payload after null tag", "_x\r\n"},
		{"negative set count", "~-1\r\n"},
		{"negative map count", "%-1\r\n"},
		{"map key not simple string", "%1\r\n:+1\r\n+value\r\n"},
		{"error inside compound", "*2\r\n:+1\r\n:abc\r\n"},
		{"bare CR inside line", "+ab\rc\r\n"},
		{"bare LF inside line", "-er\nr\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, consumed, err := Decode([]byte(tt.in))
			var perr *ProtocolError
			require.ErrorAs(t, err, &perr, "input %q", tt.in)
			assert.Zero(t, consumed)
		})
	}
}

func TestDecodeIncompleteCompound(t *testing.T) {
	// the outer array is announced but the last element is missing
	_, consumed, err := Decode([]byte("*2\r\n$3\r\nfoo\r\n"))
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Zero(t, consumed)

	// a partially transmitted bulk payload is also incomplete
	_, consumed, err = Decode([]byte("$10\r\nfoo"))
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Zero(t, consumed)
}

func TestDecodeHugeCountAnnouncement(t *testing.T) {
	// a tiny buffer announcing a huge element count must not reserve
	// memory for elements that never arrived
	inputs := []string{
		"*10000000\r\n",
		"*1000000000\r\n",
		"~1000000000\r\n",
		"%1000000000\r\n",
		"*2\r\n*1000000000\r\n",
	}
	for _, in := range inputs {
		_, consumed, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrIncomplete, "input %q", in)
		assert.Zero(t, consumed)
	}
}

func TestDecodeRequest(t *testing.T) {
	buf := []byte("*3\r\n$4\r\nhget\r\n$3\r\nkey\r\n$5\r\nfield\r\n")

	decoded, consumed, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), consumed)

	want := Array(
		BulkString([]byte("hget")),
		BulkString([]byte("key")),
		BulkString([]byte("field")),
	)
	assert.True(t, decoded.Equal(want))
}
