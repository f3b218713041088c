package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSetKeepsPairsSorted(t *testing.T) {
	m := NewMap()
	m.MapSet("zebra", Integer(1))
	m.MapSet("apple", Integer(2))
	m.MapSet("mango", Integer(3))

	assert.Equal(t, "apple", m.Pairs[0].Key)
	assert.Equal(t, "mango", m.Pairs[1].Key)
	assert.Equal(t, "zebra", m.Pairs[2].Key)
}

func TestMapSetOverwrites(t *testing.T) {
	m := NewMap()
	m.MapSet("foo", Integer(1))
	m.MapSet("foo", Integer(2))

	assert.Len(t, m.Pairs, 1)

	value, ok := m.MapGet("foo")
	assert.True(t, ok)
	assert.True(t, value.Equal(Integer(2)))

	_, ok = m.MapGet("bar")
	assert.False(t, ok)
}

func TestEqualDistinguishesNullFromEmpty(t *testing.T) {
	assert.False(t, NullBulkString().Equal(BulkString(nil)))
	assert.False(t, NullArray().Equal(Array()))
	assert.False(t, Null().Equal(NullBulkString()))

	assert.True(t, NullBulkString().Equal(NullBulkString()))
	assert.True(t, BulkString(nil).Equal(BulkString([]byte{})))
}

func TestEqualIsDeep(t *testing.T) {
	a := Array(Integer(1), Array(SimpleString("x")))
	b := Array(Integer(1), Array(SimpleString("x")))
	c := Array(Integer(1), Array(SimpleString("y")))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Set(Integer(1), Array(SimpleString("x")))))
}

func TestEqualDoubles(t *testing.T) {
	assert.True(t, Double(math.NaN()).Equal(Double(math.NaN())))
	assert.False(t, Double(math.NaN()).Equal(Double(1)))
	assert.True(t, Double(math.Inf(1)).Equal(Double(math.Inf(1))))
	assert.False(t, Double(math.Inf(1)).Equal(Double(math.Inf(-1))))
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMap()
	m.MapSet("k", BulkString([]byte("value")))
	original := Array(BulkString([]byte("payload")), m)

	clone := original.Clone()
	assert.True(t, clone.Equal(original))

	// mutating the clone must not reach the original
	clone.Elems[0].Str[0] = 'X'
	clone.Elems[1].Pairs[0].Value.Str[0] = 'X'

	assert.Equal(t, byte('p'), original.Elems[0].Str[0])
	assert.Equal(t, byte('v'), original.Elems[1].Pairs[0].Value.Str[0])
}
