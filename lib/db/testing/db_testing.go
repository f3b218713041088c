package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/letsrust/simple-redis/lib/db"
	"github.com/letsrust/simple-redis/lib/resp"
)

// BackendFactory is a function that creates a new instance of a Backend
// implementation
type BackendFactory func() db.Backend

// RunBackendTests runs a comprehensive test suite for a Backend
// implementation.
func RunBackendTests(t *testing.T, name string, factory BackendFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("HSet&HGet", func(t *testing.T) {
			testHSetHGet(t, factory())
		})

		t.Run("HGetAll", func(t *testing.T) {
			testHGetAll(t, factory())
		})

		t.Run("OverwriteIsolation", func(t *testing.T) {
			testOverwriteIsolation(t, factory())
		})

		t.Run("Absence", func(t *testing.T) {
			testAbsence(t, factory())
		})

		t.Run("OwnedCopies", func(t *testing.T) {
			testOwnedCopies(t, factory())
		})

		t.Run("NamespaceIndependence", func(t *testing.T) {
			testNamespaceIndependence(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, backend db.Backend) {
	defer backend.Close()

	testKey := "test-key"
	testValue1 := resp.BulkString([]byte("test-value1"))
	testValue2 := resp.BulkString([]byte("test-value2"))

	backend.Set(testKey, testValue1)

	result, exists := backend.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !result.Equal(testValue1) {
		t.Errorf("Expected value %v, got %v", testValue1, result)
	}

	backend.Set(testKey, testValue2)

	result, exists = backend.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after overwrite", testKey)
	}
	if !result.Equal(testValue2) {
		t.Errorf("Expected value %v, got %v", testValue2, result)
	}

	// values are frames, not just byte strings
	backend.Set(testKey, resp.Integer(42))
	result, _ = backend.Get(testKey)
	if !result.Equal(resp.Integer(42)) {
		t.Errorf("Expected integer frame to round-trip, got %v", result)
	}
}

func testHSetHGet(t *testing.T, backend db.Backend) {
	defer backend.Close()

	testValue := resp.BulkString([]byte("hhhhhh"))

	backend.HSet("k1", "f1", testValue)

	result, exists := backend.HGet("k1", "f1")
	if !exists {
		t.Errorf("Expected field f1 to exist after HSet")
	}
	if !result.Equal(testValue) {
		t.Errorf("Expected value %v, got %v", testValue, result)
	}

	// upsert: overwriting an existing field must succeed silently
	updated := resp.BulkString([]byte("updated"))
	backend.HSet("k1", "f1", updated)

	result, exists = backend.HGet("k1", "f1")
	if !exists {
		t.Errorf("Expected field f1 to exist after overwrite")
	}
	if !result.Equal(updated) {
		t.Errorf("Expected value %v, got %v", updated, result)
	}
}

func testHGetAll(t *testing.T, backend db.Backend) {
	defer backend.Close()

	v1 := resp.BulkString([]byte("hhhhhh"))
	v2 := resp.BulkString([]byte("iiiiii"))

	backend.HSet("k1", "f1", v1)
	backend.HSet("k1", "f2", v2)

	fields, exists := backend.HGetAll("k1")
	if !exists {
		t.Fatalf("Expected key k1 to exist after HSet")
	}
	if len(fields) != 2 {
		t.Fatalf("Expected exactly 2 fields, got %d", len(fields))
	}

	// enumeration order is implementation-defined, check as a set
	seen := map[string]resp.Frame{}
	for _, pair := range fields {
		seen[pair.Key] = pair.Value
	}
	if got, ok := seen["f1"]; !ok || !got.Equal(v1) {
		t.Errorf("Expected f1=%v in HGetAll result, got %v", v1, got)
	}
	if got, ok := seen["f2"]; !ok || !got.Equal(v2) {
		t.Errorf("Expected f2=%v in HGetAll result, got %v", v2, got)
	}
}

func testOverwriteIsolation(t *testing.T, backend db.Backend) {
	defer backend.Close()

	v1 := resp.BulkString([]byte("v1"))
	v2 := resp.BulkString([]byte("v2"))

	backend.HSet("k", "f1", v1)
	backend.HSet("k", "f2", v2)

	// writing a sibling field must not disturb f1
	result, exists := backend.HGet("k", "f1")
	if !exists {
		t.Fatalf("Expected field f1 to survive sibling write")
	}
	if !result.Equal(v1) {
		t.Errorf("Expected value %v, got %v", v1, result)
	}
}

func testAbsence(t *testing.T, backend db.Backend) {
	defer backend.Close()

	if _, exists := backend.Get("missing"); exists {
		t.Errorf("Expected Get on a missing key to report absence")
	}
	if _, exists := backend.HGet("missing", "x"); exists {
		t.Errorf("Expected HGet on a missing key to report absence")
	}
	if _, exists := backend.HGetAll("missing"); exists {
		t.Errorf("Expected HGetAll on a missing key to report absence")
	}

	// key present, field absent
	backend.HSet("present", "f", resp.BulkString([]byte("v")))
	if _, exists := backend.HGet("present", "other"); exists {
		t.Errorf("Expected HGet on a missing field to report absence")
	}
}

func testOwnedCopies(t *testing.T, backend db.Backend) {
	defer backend.Close()

	original := resp.BulkString([]byte("immutable"))
	backend.Set("key", original)

	// mutating the caller's frame after Set must not affect the store
	original.Str[0] = 'X'
	stored, _ := backend.Get("key")
	if !stored.Equal(resp.BulkString([]byte("immutable"))) {
		t.Errorf("Set should store a copy, not a reference to the caller's frame")
	}

	// mutating a returned frame must not affect the store either
	stored.Str[0] = 'Y'
	again, _ := backend.Get("key")
	if !again.Equal(resp.BulkString([]byte("immutable"))) {
		t.Errorf("Get should return a copy, not a reference to the stored frame")
	}
}

func testNamespaceIndependence(t *testing.T, backend db.Backend) {
	defer backend.Close()

	backend.Set("k", resp.BulkString([]byte("flat")))
	backend.HSet("k", "f", resp.BulkString([]byte("hash")))

	flat, exists := backend.Get("k")
	if !exists || !flat.Equal(resp.BulkString([]byte("flat"))) {
		t.Errorf("Expected the flat namespace to be unaffected by HSet on the same key")
	}
	hashed, exists := backend.HGet("k", "f")
	if !exists || !hashed.Equal(resp.BulkString([]byte("hash"))) {
		t.Errorf("Expected the hash namespace to be unaffected by Set on the same key")
	}
}

func testConcurrentAccess(t *testing.T, backend db.Backend) {
	defer backend.Close()

	const (
		workers = 8
		keys    = 100
	)

	var wg sync.WaitGroup
	wg.Add(workers)

	// concurrent writers over a shared key space, one field per worker
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			field := fmt.Sprintf("f%d", worker)
			for i := 0; i < keys; i++ {
				key := fmt.Sprintf("key-%d", i)
				value := resp.BulkString([]byte(fmt.Sprintf("w%d-%d", worker, i)))
				backend.Set(key, value)
				backend.HSet(key, field, value)
				if _, ok := backend.HGet(key, field); !ok {
					t.Errorf("Expected own write to key %s field %s to be visible", key, field)
				}
			}
		}(w)
	}
	wg.Wait()

	// after the dust settles every key must carry one field per worker
	for i := 0; i < keys; i++ {
		key := fmt.Sprintf("key-%d", i)
		fields, exists := backend.HGetAll(key)
		if !exists {
			t.Fatalf("Expected key %s to exist after concurrent writes", key)
		}
		if len(fields) != workers {
			t.Errorf("Expected %d fields for key %s, got %d", workers, key, len(fields))
		}
	}
}

func testInfo(t *testing.T, backend db.Backend) {
	defer backend.Close()

	backend.Set("a", resp.Integer(1))
	backend.Set("b", resp.Integer(2))
	backend.HSet("h", "f1", resp.Integer(3))
	backend.HSet("h", "f2", resp.Integer(4))

	info := backend.Info()
	if info.FlatKeys != 2 {
		t.Errorf("Expected 2 flat keys, got %d", info.FlatKeys)
	}
	if info.HashKeys != 1 {
		t.Errorf("Expected 1 hash key, got %d", info.HashKeys)
	}
	if info.HashField != 2 {
		t.Errorf("Expected 2 hash fields, got %d", info.HashField)
	}
	if info.Shards < 1 {
		t.Errorf("Expected at least one shard, got %d", info.Shards)
	}
}
