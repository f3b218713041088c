package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsrust/simple-redis/lib/db/engines/birch"
	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport/tcp"
)

func newTestServer(t *testing.T) *respServer {
	t.Helper()

	backend := birch.NewBirchDB(birch.DefaultOptions())
	t.Cleanup(func() { _ = backend.Close() })

	return NewServer(common.ServerConfig{}, tcp.NewTCPServerTransport(), backend)
}

// handleRaw runs one encoded request through the full pipeline:
// decode, parse, execute, encode.
func handleRaw(t *testing.T, s *respServer, raw string) []byte {
	t.Helper()

	req, consumed, err := resp.Decode([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, len(raw), consumed)

	return s.Handle(req)
}

func TestHandleFlatCommands(t *testing.T) {
	s := newTestServer(t)

	reply := handleRaw(t, s, "*2\r\n$3\r\nget\r\n$3\r\nkey\r\n")
	assert.Equal(t, []byte("_\r\n"), reply)

	reply = handleRaw(t, s, "*3\r\n$3\r\nset\r\n$3\r\nkey\r\n$5\r\nvalue\r\n")
	assert.Equal(t, []byte("+OK\r\n"), reply)

	reply = handleRaw(t, s, "*2\r\n$3\r\nget\r\n$3\r\nkey\r\n")
	assert.Equal(t, []byte("$5\r\nvalue\r\n"), reply)
}

func TestHandleHashCommands(t *testing.T) {
	s := newTestServer(t)

	reply := handleRaw(t, s, "*2\r\n$7\r\nhgetall\r\n$1\r\nh\r\n")
	assert.Equal(t, []byte("*0\r\n"), reply)

	reply = handleRaw(t, s, "*4\r\n$4\r\nhset\r\n$1\r\nh\r\n$1\r\nf\r\n$1\r\nv\r\n")
	assert.Equal(t, []byte("+OK\r\n"), reply)

	reply = handleRaw(t, s, "*3\r\n$4\r\nhget\r\n$1\r\nh\r\n$1\r\nf\r\n")
	assert.Equal(t, []byte("$1\r\nv\r\n"), reply)

	reply = handleRaw(t, s, "*2\r\n$7\r\nhgetall\r\n$1\r\nh\r\n")
	assert.Equal(t, []byte("%1\r\n+f\r\n$1\r\nv\r\n"), reply)
}

func TestHandleRejectsInvalidRequests(t *testing.T) {
	s := newTestServer(t)

	// an unknown command is an error reply, not a dropped session
	reply := handleRaw(t, s, "*1\r\n$8\r\nflushall\r\n")
	assert.Equal(t, byte('-'), reply[0])

	reply = handleRaw(t, s, "*1\r\n$3\r\nget\r\n")
	assert.Equal(t, byte('-'), reply[0])

	// the server keeps answering after a rejected request
	reply = handleRaw(t, s, "*3\r\n$3\r\nset\r\n$1\r\nk\r\n$1\r\nv\r\n")
	assert.Equal(t, []byte("+OK\r\n"), reply)
}
