package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleStringEncode(t *testing.T) {
	assert.Equal(t, []byte("+OK\r\n"), SimpleString("OK").Encode())
}

func TestSimpleErrorEncode(t *testing.T) {
	assert.Equal(t, []byte("-ERR message\r\n"), SimpleError("ERR message").Encode())
}

func TestIntegerEncode(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{100, ":+100\r\n"},
		{-100, ":-100\r\n"},
		{0, ":+0\r\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, []byte(tt.want), Integer(tt.in).Encode())
	}
}

func TestBulkStringEncode(t *testing.T) {
	assert.Equal(t, []byte("$6\r\nfoobar\r\n"), BulkString([]byte("foobar")).Encode())

	// the length prefix is a byte count, the payload is binary safe
	assert.Equal(t, []byte("$4\r\na\r\nb\r\n"), BulkString([]byte("a\r\nb")).Encode())

	// empty and null bulk strings are distinct
	assert.Equal(t, []byte("$0\r\n\r\n"), BulkString(nil).Encode())
	assert.Equal(t, []byte("$-1\r\n"), NullBulkString().Encode())
}

func TestArrayEncode(t *testing.T) {
	frame := Array(
		SimpleString("foo"),
		SimpleString("bar"),
		BulkString([]byte("foobar")),
	)
	assert.Equal(t, []byte("*3\r\n+foo\r\n+bar\r\n$6\r\nfoobar\r\n"), frame.Encode())

	// empty and null arrays are distinct
	assert.Equal(t, []byte("*0\r\n"), Array().Encode())
	assert.Equal(t, []byte("*-1\r\n"), NullArray().Encode())
}

func TestNullEncode(t *testing.T) {
	assert.Equal(t, []byte("_\r\n"), Null().Encode())
}

func TestBooleanEncode(t *testing.T) {
	assert.Equal(t, []byte("#t\r\n"), Boolean(true).Encode())
	assert.Equal(t, []byte("#f\r\n"), Boolean(false).Encode())
}

func TestDoubleEncode(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.44, ",+3.44\r\n"},
		{-3.44, ",-3.44\r\n"},
		{0, ",+0\r\n"},
		// magnitudes beyond 1e8 / below 1e-8 switch to scientific
		// notation with a signed mantissa and an unpadded exponent
		{1.23456e+8, ",+1.23456e8\r\n"},
		{-1.23456e-9, ",-1.23456e-9\r\n"},
		{5e-9, ",+5e-9\r\n"},
		{1e8, ",+100000000\r\n"},
		// non-finite values have a fixed rendering
		{math.Inf(1), ",+inf\r\n"},
		{math.Inf(-1), ",-inf\r\n"},
		{math.NaN(), ",nan\r\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, []byte(tt.want), Double(tt.in).Encode(), "encoding %v", tt.in)
	}
}

func TestMapEncode(t *testing.T) {
	m := NewMap()
	m.MapSet("foo", SimpleString("bar"))
	m.MapSet("bar", Double(-1234.678))

	// pairs encode sorted by key, regardless of insertion order
	assert.Equal(t, []byte("%2\r\n+bar\r\n,-1234.678\r\n+foo\r\n+bar\r\n"), m.Encode())
}

func TestSetEncode(t *testing.T) {
	frame := Set(SimpleString("foo"), BulkString([]byte("foobar")))
	assert.Equal(t, []byte("~2\r\n+foo\r\n$6\r\nfoobar\r\n"), frame.Encode())
}

func TestNestedEncode(t *testing.T) {
	frame := Array(
		Integer(1),
		Array(BulkString([]byte("inner"))),
		Null(),
	)
	assert.Equal(t, []byte("*3\r\n:+1\r\n*1\r\n$5\r\ninner\r\n_\r\n"), frame.Encode())
}
