// Package client provides a typed client for the server, used by the CLI
// commands. One client owns one connection; requests are serialized on it.
package client
