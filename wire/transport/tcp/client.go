package tcp

import (
	"fmt"
	"net"

	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
	"github.com/letsrust/simple-redis/wire/transport/base"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Dial(config common.ClientConfig) (net.Conn, error) {
	conn, err := net.Dial("tcp", config.Transport.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial TCP endpoint: %v", err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := upgradeTCPConn(tcpConn, config.Transport); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewTCPClientTransport creates a new TCP client transport
func NewTCPClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, defaultBufferSize)
}
