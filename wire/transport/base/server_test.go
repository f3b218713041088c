package base

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
)

// pipeConnector backs the session loop with an in-memory pipe, no real
// socket involved
type pipeConnector struct{}

func (c *pipeConnector) Listen(common.ServerConfig) (net.Listener, error) {
	return nil, nil
}

func (c *pipeConnector) UpgradeConnection(net.Conn, common.ServerConfig) error {
	return nil
}

func (c *pipeConnector) GetName() string {
	return "pipe"
}

// startSession runs the session loop against one end of a pipe and
// returns the client end. The handler echoes every request frame back,
// which makes reply order observable.
func startSession(t *testing.T) net.Conn {
	t.Helper()

	st := NewBaseServerTransport(&pipeConnector{}, 1024).(*serverTransport)
	st.RegisterHandler(func(req resp.Frame) []byte {
		return req.Encode()
	})

	server, client := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})

	// a test must fail instead of hanging when no reply arrives
	if err := client.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("Failed to set deadline: %v", err)
	}

	go st.handleConnection(server)
	return client
}

func readReply(t *testing.T, conn net.Conn, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	_, err := io.ReadFull(conn, buf)
	require.NoError(t, err)
	return buf
}

func TestSessionAnswersPipelinedRequestsInOrder(t *testing.T) {
	client := startSession(t)

	// three requests in one write must produce three replies, in order
	requests := []byte("+first\r\n+second\r\n:+3\r\n")
	_, err := client.Write(requests)
	require.NoError(t, err)

	assert.Equal(t, requests, readReply(t, client, len(requests)))
}

func TestSessionWaitsForSplitFrames(t *testing.T) {
	client := startSession(t)

	// the frame arrives in two reads, the first holding only a partial
	// bulk string payload
	_, err := client.Write([]byte("$6\r\nfoo"))
	require.NoError(t, err)
	_, err = client.Write([]byte("bar\r\n"))
	require.NoError(t, err)

	want := []byte("$6\r\nfoobar\r\n")
	assert.Equal(t, want, readReply(t, client, len(want)))
}

func TestSessionSurvivesAcrossExchanges(t *testing.T) {
	client := startSession(t)

	for i := 0; i < 3; i++ {
		request := []byte("+ping\r\n")
		_, err := client.Write(request)
		require.NoError(t, err)
		assert.Equal(t, request, readReply(t, client, len(request)))
	}
}

func TestSessionClosesOnProtocolError(t *testing.T) {
	client := startSession(t)

	_, err := client.Write([]byte("?bad\r\n"))
	require.NoError(t, err)

	// the framing is desynchronized, the server must close without a reply
	buf := make([]byte, 1)
	_, err = client.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}
