// Package resp implements the RESP wire format used by the server: the
// frame model, the encoder and the streaming decoder.
//
// A Frame is one protocol value, scalar (simple string, error, integer,
// bulk string, null, boolean, double) or compound (array, map, set).
// Compound frames nest arbitrarily. Encoding is total: every representable
// frame has exactly one valid byte encoding.
//
// Decoding is designed for a growing socket buffer. Decode never blocks
// and never consumes partial input: it either returns a complete frame
// together with the number of bytes it occupies, the ErrIncomplete signal
// (accumulate more bytes and call again), or a *ProtocolError (the byte
// stream is desynchronized and the session must be terminated).
package resp
