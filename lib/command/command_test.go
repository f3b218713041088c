package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsrust/simple-redis/lib/db/engines/birch"
	"github.com/letsrust/simple-redis/lib/resp"
)

// request builds the wire shape clients send: an array of bulk strings.
func request(args ...string) resp.Frame {
	elems := make([]resp.Frame, len(args))
	for i, a := range args {
		elems[i] = resp.BulkString([]byte(a))
	}
	return resp.Array(elems...)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   resp.Frame
		want Command
	}{
		{"get", request("get", "key"), Get{Key: "key"}},
		{"set", request("set", "key", "value"), Set{Key: "key", Value: resp.BulkString([]byte("value"))}},
		{"hget", request("hget", "key", "field"), HGet{Key: "key", Field: "field"}},
		{"hset", request("hset", "key", "field", "value"), HSet{Key: "key", Field: "field", Value: resp.BulkString([]byte("value"))}},
		{"hgetall", request("hgetall", "key"), HGetAll{Key: "key"}},
		{"uppercase name", request("GET", "key"), Get{Key: "key"}},
		{"mixed case name", request("HGetAll", "key"), HGetAll{Key: "key"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecodedRequest(t *testing.T) {
	// a request as it arrives off the wire
	frame, _, err := resp.Decode([]byte("*3\r\n$4\r\nhget\r\n$3\r\nkey\r\n$5\r\nfield\r\n"))
	require.NoError(t, err)

	cmd, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, HGet{Key: "key", Field: "field"}, cmd)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		in   resp.Frame
	}{
		{"unknown command", request("flushall")},
		{"empty request", resp.Array()},
		{"null array request", resp.NullArray()},
		{"not an array", resp.SimpleString("get")},
		{"non bulk element", resp.Array(resp.BulkString([]byte("get")), resp.Integer(1))},
		{"null bulk element", resp.Array(resp.BulkString([]byte("get")), resp.NullBulkString())},
		{"get missing key", request("get")},
		{"get extra argument", request("get", "key", "extra")},
		{"set missing value", request("set", "key")},
		{"hset missing value", request("hset", "key", "field")},
		{"hgetall extra argument", request("hgetall", "key", "extra")},
		{"non utf8 key", resp.Array(
			resp.BulkString([]byte("get")),
			resp.BulkString([]byte{0xff, 0xfe}),
		)},
		{"non utf8 field", resp.Array(
			resp.BulkString([]byte("hget")),
			resp.BulkString([]byte("key")),
			resp.BulkString([]byte{0xc3, 0x28}),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			var argErr *InvalidArgumentError
			require.True(t, errors.As(err, &argErr), "want InvalidArgumentError, got %v", err)
		})
	}
}

func TestParseOwnsValueBytes(t *testing.T) {
	raw := []byte("value")
	cmd, err := Parse(resp.Array(
		resp.BulkString([]byte("set")),
		resp.BulkString([]byte("key")),
		resp.BulkString(raw),
	))
	require.NoError(t, err)

	// mutating the request buffer afterwards must not change the command
	raw[0] = 'X'
	assert.Equal(t, Set{Key: "key", Value: resp.BulkString([]byte("value"))}, cmd)
}

func TestExecuteFlat(t *testing.T) {
	backend := birch.NewBirchDB(birch.DefaultOptions())
	defer backend.Close()

	// reading an absent key replies null
	reply := Get{Key: "key"}.Execute(backend)
	assert.Equal(t, []byte("_\r\n"), reply.Encode())

	reply = Set{Key: "key", Value: resp.BulkString([]byte("value"))}.Execute(backend)
	assert.Equal(t, []byte("+OK\r\n"), reply.Encode())

	reply = Get{Key: "key"}.Execute(backend)
	assert.Equal(t, []byte("$5\r\nvalue\r\n"), reply.Encode())
}

func TestExecuteHash(t *testing.T) {
	backend := birch.NewBirchDB(birch.DefaultOptions())
	defer backend.Close()

	reply := HGet{Key: "h", Field: "f"}.Execute(backend)
	assert.Equal(t, []byte("_\r\n"), reply.Encode())

	// an absent hash key replies an empty array
	reply = HGetAll{Key: "h"}.Execute(backend)
	assert.Equal(t, []byte("*0\r\n"), reply.Encode())

	reply = HSet{Key: "h", Field: "b", Value: resp.BulkString([]byte("2"))}.Execute(backend)
	assert.Equal(t, []byte("+OK\r\n"), reply.Encode())
	reply = HSet{Key: "h", Field: "a", Value: resp.BulkString([]byte("1"))}.Execute(backend)
	assert.Equal(t, []byte("+OK\r\n"), reply.Encode())

	reply = HGet{Key: "h", Field: "a"}.Execute(backend)
	assert.Equal(t, []byte("$1\r\n1\r\n"), reply.Encode())

	// a present hash key replies a map, sorted by field
	reply = HGetAll{Key: "h"}.Execute(backend)
	assert.Equal(t, []byte("%2\r\n+a\r\n$1\r\n1\r\n+b\r\n$1\r\n2\r\n"), reply.Encode())
}

func TestNamespacesAreIndependent(t *testing.T) {
	backend := birch.NewBirchDB(birch.DefaultOptions())
	defer backend.Close()

	Set{Key: "k", Value: resp.BulkString([]byte("flat"))}.Execute(backend)
	HSet{Key: "k", Field: "f", Value: resp.BulkString([]byte("hash"))}.Execute(backend)

	reply := Get{Key: "k"}.Execute(backend)
	assert.Equal(t, []byte("$4\r\nflat\r\n"), reply.Encode())

	reply = HGet{Key: "k", Field: "f"}.Execute(backend)
	assert.Equal(t, []byte("$4\r\nhash\r\n"), reply.Encode())
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "get", Get{}.Name())
	assert.Equal(t, "set", Set{}.Name())
	assert.Equal(t, "hget", HGet{}.Name())
	assert.Equal(t, "hset", HSet{}.Name())
	assert.Equal(t, "hgetall", HGetAll{}.Name())
}
