package birch

import (
	"testing"

	"github.com/letsrust/simple-redis/lib/db"
	dbtesting "github.com/letsrust/simple-redis/lib/db/testing"
)

func Test(t *testing.T) {
	dbtesting.RunBackendTests(t, "BirchDB", func() db.Backend {
		return NewBirchDB(nil)
	})
}

func TestSingleShard(t *testing.T) {
	// a single shard must behave identically, just with more contention
	dbtesting.RunBackendTests(t, "BirchDB/1shard", func() db.Backend {
		return NewBirchDB(&DBOptions{NumShards: 1})
	})
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 64: 64, 100: 128}
	for in, want := range cases {
		if got := nextPowerOf2(in); got != want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}
