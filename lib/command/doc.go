// Package command turns decoded RESP frames into typed commands and
// executes them against a db.Backend.
//
// A request is an Array frame whose elements are all BulkStrings; the
// first element is the case-insensitive command name, the rest are the
// arguments. Every command has a fixed arity. Parse validates the shape
// and produces a typed command carrying owned copies of its arguments;
// Execute performs the store operation and returns the reply frame.
//
// Parse failures are recoverable per request: the server reports them as
// an error reply and keeps the session open.
package command
