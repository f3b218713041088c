// Package transport defines the interfaces of the connection layer and is
// implemented for TCP and Unix sockets under tcp/ and unix/, with the
// shared session logic in base/.
//
// A server transport accepts connections and runs one session per
// connection: it accumulates raw bytes in a growing buffer, decodes
// complete frames, hands each frame to the registered handler and writes
// the returned reply bytes in request order. Incomplete frames wait for
// more bytes; protocol errors terminate the session.
package transport
