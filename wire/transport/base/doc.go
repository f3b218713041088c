// Package base implements the transport-independent part of the
// connection layer: the accept loop, the per-connection streaming decode
// session and the client request/reply exchange. Socket specific behavior
// is injected through the connector interfaces.
package base
