// Package tcp provides the TCP socket implementation of the transport
// interfaces, including the socket tuning options (nodelay, keep-alive,
// linger, buffer sizes) from the configuration.
package tcp
