package transport

import (
	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc turns one decoded request frame into an encoded reply.
// It is called by the server transport for every complete frame, in the
// order the frames arrived on the connection.
type ServerHandleFunc func(req resp.Frame) (reply []byte)

// IServerTransport is the interface of the server side connection layer
type IServerTransport interface {
	// RegisterHandler registers the handler called for every decoded
	// request frame. Must be called before Listen.
	RegisterHandler(handler ServerHandleFunc)

	// Listen starts accepting connections and blocks for the lifetime of
	// the server.
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface of the client side connection layer
type IClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error

	// Send writes a request frame and reads the matching reply frame.
	// Safe for concurrent use; requests are serialized on the connection.
	Send(req resp.Frame) (reply resp.Frame, err error)

	// Close closes the transport connection
	Close() error
}
