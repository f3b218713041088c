// Package testing provides a reusable conformance suite for db.Backend
// implementations. Engines register a factory function and run the suite
// from their own package tests.
package testing
