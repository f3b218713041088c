// Package db defines the Backend interface for the in-memory store the
// command dispatcher executes against, together with shared helper types.
//
// A Backend owns two namespaces:
//
//   - a flat namespace mapping a key to a single frame, and
//   - a hash namespace mapping a key to a field-to-frame table.
//
// One Backend instance is created at process start and shared by every
// concurrent command execution. Implementations live under engines/; the
// default engine is engines/birch. The testing subpackage provides a
// reusable conformance suite for Backend implementations.
package db
