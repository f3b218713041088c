package db

import (
	"fmt"
	"strings"

	"github.com/letsrust/simple-redis/lib/resp"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplBirch Implementation = "birch"
)

// Info describes the current state of a backend. All values are snapshots
// and may be stale the moment they are returned.
type Info struct {
	DbType    Implementation `json:"db_type"`
	Shards    int            `json:"shards"`
	FlatKeys  int            `json:"flat_keys"`
	HashKeys  int            `json:"hash_keys"`
	HashField int            `json:"hash_fields"`
}

// String returns a formatted single-line representation of the info
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("backend=%s", i.DbType))
	sb.WriteString(fmt.Sprintf(" shards=%d", i.Shards))
	sb.WriteString(fmt.Sprintf(" flat_keys=%d", i.FlatKeys))
	sb.WriteString(fmt.Sprintf(" hash_keys=%d", i.HashKeys))
	sb.WriteString(fmt.Sprintf(" hash_fields=%d", i.HashField))
	return sb.String()
}

// --------------------------------------------------------------------------
// Backend Interface
// --------------------------------------------------------------------------

// Backend is the shared in-memory store commands execute against.
//
// Every method is a single atomic logical operation: a write either fully
// completes before any subsequent read of the same key (or key and field)
// can observe it, or has not started. Operations on distinct keys must not
// serialize behind each other.
//
// Stored values are owned copies. An implementation must clone frames on
// write and on read so callers never share memory with the store. None of
// the operations has a failure mode; every input that passed command
// validation is a no-fail mutation or a total query.
type Backend interface {

	// --------------------------------------------------------------------------
	// Flat Namespace
	// --------------------------------------------------------------------------

	// Set stores a value under key, overwriting any previous value.
	Set(key string, value resp.Frame)

	// Get retrieves the value stored under key. The boolean reports
	// whether the key exists.
	Get(key string) (value resp.Frame, loaded bool)

	// --------------------------------------------------------------------------
	// Hash Namespace
	// --------------------------------------------------------------------------

	// HSet stores a value under key and field, creating the key's table
	// on first write and overwriting any previous field value.
	HSet(key, field string, value resp.Frame)

	// HGet retrieves the value stored under key and field. The boolean is
	// false when either the key or the field is absent.
	HGet(key, field string) (value resp.Frame, loaded bool)

	// HGetAll returns every field/value pair stored under key, in
	// implementation-defined order. The boolean reports whether the key
	// exists in the hash namespace.
	HGetAll(key string) (fields []resp.Pair, loaded bool)

	// --------------------------------------------------------------------------
	// Introspection
	// --------------------------------------------------------------------------

	// Info returns a snapshot of backend statistics.
	Info() (info Info)

	// Close releases backend resources.
	Close() (err error)
}
