package base

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific client operations
type IClientConnector interface {
	// Dial opens a connection to the configured endpoint
	Dial(config common.ClientConfig) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig

	mu      sync.Mutex // serializes request/reply exchanges
	conn    net.Conn
	pending []byte
	chunk   []byte
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the
// given read chunk size
func NewBaseClientTransport(connector IClientConnector, bufferSize int) transport.IClientTransport {
	return &clientTransport{
		connector: connector,
		chunk:     make([]byte, bufferSize),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.config = config

	conn, err := t.connector.Dial(config)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", config.Transport.Endpoint, err)
	}
	t.conn = conn
	return nil
}

func (t *clientTransport) Send(req resp.Frame) (resp.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return resp.Frame{}, errors.New("transport is not connected")
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	if timeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return resp.Frame{}, err
		}
	}
	if _, err := t.conn.Write(req.Encode()); err != nil {
		return resp.Frame{}, fmt.Errorf("failed to write request: %v", err)
	}

	// read until one complete reply frame is present
	for {
		if len(t.pending) > 0 {
			reply, consumed, err := resp.Decode(t.pending)
			if err == nil {
				t.pending = t.pending[consumed:]
				if len(t.pending) == 0 {
					t.pending = nil
				}
				return reply, nil
			}
			if !errors.Is(err, resp.ErrIncomplete) {
				// desynchronized reply stream, the connection is unusable
				return resp.Frame{}, err
			}
		}

		if timeout > 0 {
			if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				return resp.Frame{}, err
			}
		}
		n, err := t.conn.Read(t.chunk)
		if n > 0 {
			t.pending = append(t.pending, t.chunk[:n]...)
		}
		if err != nil {
			return resp.Frame{}, fmt.Errorf("failed to read reply: %v", err)
		}
	}
}

func (t *clientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
