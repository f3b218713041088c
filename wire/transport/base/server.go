package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"

	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
)

var Logger = logger.GetLogger("transport")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// UpgradeConnection applies transport-specific settings to a freshly
	// accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	listener   net.Listener
	bufferPool *sync.Pool
	bufferSize int
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the
// given read chunk size
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IServerTransport {
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Transport.Endpoint)

	connsAccepted := metrics.GetOrCreateCounter(
		fmt.Sprintf(`sredis_connections_total{transport=%q}`, t.connector.GetName()))

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			Logger.Errorf("Accept error: %v", err)
			continue
		}
		connsAccepted.Inc()

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection runs the session loop for one connection: read bytes,
// decode complete frames, dispatch, write replies in request order.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		Logger.Errorf("Failed to upgrade connection: %v", err)
		return
	}

	// Timeout in seconds
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	// Get a read chunk from the pool
	chunk := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(chunk)

	// pending accumulates bytes until they form at least one complete frame
	var pending []byte

	for {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set read deadline: %v", err)
				return
			}
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)

			// drain every complete frame currently in the buffer
			if ok := t.drainFrames(conn, &pending, timeout); !ok {
				return
			}
		}

		// Case EOF: Connection closed by client
		if err == io.EOF {
			Logger.Infof("Connection closed by client")
			return
		}

		// Case error: log and close connection
		if err != nil {
			Logger.Errorf("Error reading from connection: %v", err)
			return
		}
	}
}

// drainFrames decodes and dispatches frames until the buffer holds no
// complete frame anymore. It returns false when the session must end.
func (t *serverTransport) drainFrames(conn net.Conn, pending *[]byte, timeout time.Duration) bool {
	for len(*pending) > 0 {
		frame, consumed, err := resp.Decode(*pending)

		// Case incomplete: keep the bytes and wait for more
		if errors.Is(err, resp.ErrIncomplete) {
			return true
		}

		// Case protocol error: the framing is desynchronized and can not
		// be resynchronized, terminate the session
		if err != nil {
			metrics.GetOrCreateCounter(`sredis_protocol_errors_total`).Inc()
			Logger.Errorf("Protocol error, closing connection: %v", err)
			return false
		}

		*pending = (*pending)[consumed:]

		// Process the request
		start := time.Now()
		reply := t.handler(frame)
		Logger.Debugf("Processed request took %s", time.Since(start))

		if timeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set write deadline: %v", err)
				return false
			}
		}

		if _, err := conn.Write(reply); err != nil {
			Logger.Errorf("Failed to write reply: %v", err)
			return false
		}
	}

	// release the backing array once the buffer is fully drained
	*pending = nil
	return true
}
