// Package birch implements the default Backend engine: a sharded
// in-memory store built on concurrent hash maps.
//
// Keys are distributed over a power-of-two number of shards by xxhash.
// Each shard owns one concurrent map per namespace, so operations on
// unrelated keys never contend and per-key reads and writes are
// linearizable. Field tables of the hash namespace are themselves
// independent concurrent maps, created lazily on first write.
//
// The engine keeps no TTL state and runs no background work: entries
// persist for the lifetime of the process.
package birch
