package unix

import (
	"fmt"
	"net"

	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
	"github.com/letsrust/simple-redis/wire/transport/base"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Dial(config common.ClientConfig) (net.Conn, error) {
	conn, err := net.Dial("unix", config.Transport.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial Unix socket: %v", err)
	}

	if unixConn, ok := conn.(*net.UnixConn); ok {
		if err := upgradeUnixConn(unixConn, config.Transport); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixClientTransport creates a new Unix socket client transport
func NewUnixClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, defaultBufferSize)
}
