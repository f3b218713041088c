package birch

import (
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/letsrust/simple-redis/lib/db"
	"github.com/letsrust/simple-redis/lib/resp"
)

// --------------------------------------------------------------------------
// Core Birch database structure
// --------------------------------------------------------------------------

// fieldTable is the nested field-to-value map of one hash key
type fieldTable = xsync.MapOf[string, resp.Frame]

// shard is one partition of the database. Each shard owns an independent
// concurrent map per namespace.
type shard struct {
	flat *xsync.MapOf[string, resp.Frame]
	hash *xsync.MapOf[string, *fieldTable]
}

// birchImpl implements db.Backend with sharded data
type birchImpl struct {
	shards    []*shard
	shardMask uint64
}

// DBOptions configures the birchImpl behavior during initialization
type DBOptions struct {
	NumShards int // Number of shards, rounded up to a power of two (0 = auto)
}

// DefaultOptions returns the default birchImpl options
func DefaultOptions() *DBOptions {
	return &DBOptions{
		NumShards: runtime.NumCPU(),
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewBirchDB creates a new birch backend with the specified options
// (optional).
//
// Thread-safety: This function is not thread-safe and should only be called
// once during initialization.
func NewBirchDB(opts *DBOptions) db.Backend {
	if opts == nil {
		opts = DefaultOptions()
	}

	numShards := nextPowerOf2(opts.NumShards)
	shards := make([]*shard, numShards)
	for i := range shards {
		shards[i] = &shard{
			flat: xsync.NewMapOf[string, resp.Frame](),
			hash: xsync.NewMapOf[string, *fieldTable](),
		}
	}

	return &birchImpl{
		shards:    shards,
		shardMask: uint64(numShards - 1),
	}
}

// nextPowerOf2 rounds n up to the next power of two (minimum 1)
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// getShard returns the shard responsible for a key
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) getShard(key string) *shard {
	return b.shards[xxhash.Sum64String(key)&b.shardMask]
}

// --------------------------------------------------------------------------
// Flat Namespace
// --------------------------------------------------------------------------

// Set stores a value under key, overwriting any previous value.
// The value is cloned before it is stored.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) Set(key string, value resp.Frame) {
	b.getShard(key).flat.Store(key, value.Clone())
}

// Get retrieves the value stored under key.
// The returned frame is a copy of the stored data and safe to modify.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) Get(key string) (resp.Frame, bool) {
	value, ok := b.getShard(key).flat.Load(key)
	if !ok {
		return resp.Frame{}, false
	}
	return value.Clone(), true
}

// --------------------------------------------------------------------------
// Hash Namespace
// --------------------------------------------------------------------------

// HSet stores a value under key and field. The field table for the key is
// created lazily on first write; an existing field value is overwritten.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) HSet(key, field string, value resp.Frame) {
	table, _ := b.getShard(key).hash.LoadOrCompute(key, func() *fieldTable {
		return xsync.NewMapOf[string, resp.Frame]()
	})
	table.Store(field, value.Clone())
}

// HGet retrieves the value stored under key and field.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) HGet(key, field string) (resp.Frame, bool) {
	table, ok := b.getShard(key).hash.Load(key)
	if !ok {
		return resp.Frame{}, false
	}
	value, ok := table.Load(field)
	if !ok {
		return resp.Frame{}, false
	}
	return value.Clone(), true
}

// HGetAll returns a snapshot of every field/value pair stored under key.
// Fields written concurrently with the enumeration may or may not be
// included; each included value is complete.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (b *birchImpl) HGetAll(key string) ([]resp.Pair, bool) {
	table, ok := b.getShard(key).hash.Load(key)
	if !ok {
		return nil, false
	}

	fields := make([]resp.Pair, 0, table.Size())
	table.Range(func(field string, value resp.Frame) bool {
		fields = append(fields, resp.Pair{Key: field, Value: value.Clone()})
		return true
	})
	return fields, true
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// Info returns a snapshot of backend statistics
func (b *birchImpl) Info() db.Info {
	info := db.Info{
		DbType: db.ImplBirch,
		Shards: len(b.shards),
	}
	for _, s := range b.shards {
		info.FlatKeys += s.flat.Size()
		info.HashKeys += s.hash.Size()
		s.hash.Range(func(_ string, table *fieldTable) bool {
			info.HashField += table.Size()
			return true
		})
	}
	return info
}

// Close is a no-op: the engine holds no resources beyond process memory
func (b *birchImpl) Close() error {
	return nil
}
