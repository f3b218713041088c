// Package server ties the boundary layer together: it registers the
// transport handler that routes every decoded request frame through the
// command dispatcher against the shared backend, encodes the reply, and
// optionally exposes Prometheus-format metrics.
//
// Command-level failures (unknown command, wrong arity, non-text
// identifiers) are reported back as "-ERR ..." replies and the session
// stays open; byte-level framing faults are handled by the transport and
// terminate the session.
package server
