// Package wire contains the network boundary around the protocol core.
// It feeds raw socket bytes into the RESP decoder, routes decoded requests
// through the command dispatcher, and writes encoded replies back to the
// network.
//
// The package is organized into several subpackages:
//
//   - common: configuration structures and logging shared across the
//     boundary layer.
//
//   - transport: connection handling with pluggable socket types
//     (TCP, Unix sockets). The server transport owns the streaming decode
//     loop and the error policy of the session: malformed commands get an
//     error reply and the connection survives, malformed byte-level
//     framing ends the connection.
//
//   - server: the RESP server tying transport, command dispatch and the
//     backend together, plus the optional metrics endpoint.
//
//   - client: a typed client used by the CLI commands.
package wire
