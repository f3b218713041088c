package resp

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Frame Types
// --------------------------------------------------------------------------

// Type identifies a frame variant. The value is the wire tag byte.
type Type byte

const (
	TypeSimpleString Type = '+'
	TypeSimpleError  Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
	TypeNull         Type = '_'
	TypeBoolean      Type = '#'
	TypeDouble       Type = ','
	TypeMap          Type = '%'
	TypeSet          Type = '~'
)

func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "SimpleString"
	case TypeSimpleError:
		return "SimpleError"
	case TypeInteger:
		return "Integer"
	case TypeBulkString:
		return "BulkString"
	case TypeArray:
		return "Array"
	case TypeNull:
		return "Null"
	case TypeBoolean:
		return "Boolean"
	case TypeDouble:
		return "Double"
	case TypeMap:
		return "Map"
	case TypeSet:
		return "Set"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Frame Model
// --------------------------------------------------------------------------

// Frame is one decoded protocol value. Only the fields belonging to the
// variant selected by Type are meaningful.
//
// The null bulk string ($-1) and the null array (*-1) are represented by
// their regular Type with the Null marker set. They are distinct from the
// empty bulk string and the empty array.
type Frame struct {
	Type Type

	Null  bool    // set for the $-1 and *-1 variants
	Str   []byte  // SimpleString, SimpleError and BulkString payload
	Int   int64   // Integer value
	Float float64 // Double value
	Bool  bool    // Boolean value
	Elems []Frame // Array and Set elements, in order
	Pairs []Pair  // Map pairs, sorted by key
}

// Pair is one map entry. The key is encoded as a SimpleString on the wire.
type Pair struct {
	Key   string
	Value Frame
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// SimpleString returns a "+..." frame. The text must not contain CR or LF.
func SimpleString(s string) Frame {
	return Frame{Type: TypeSimpleString, Str: []byte(s)}
}

// SimpleError returns a "-..." frame. The text must not contain CR or LF.
func SimpleError(s string) Frame {
	return Frame{Type: TypeSimpleError, Str: []byte(s)}
}

// Integer returns a ":..." frame.
func Integer(i int64) Frame {
	return Frame{Type: TypeInteger, Int: i}
}

// BulkString returns a "$..." frame. The payload may hold arbitrary bytes.
func BulkString(b []byte) Frame {
	return Frame{Type: TypeBulkString, Str: b}
}

// NullBulkString returns the "$-1" frame.
func NullBulkString() Frame {
	return Frame{Type: TypeBulkString, Null: true}
}

// Array returns a "*..." frame with the given elements.
func Array(elems ...Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Type: TypeArray, Elems: elems}
}

// NullArray returns the "*-1" frame.
func NullArray() Frame {
	return Frame{Type: TypeArray, Null: true}
}

// Null returns the generic "_" null frame.
func Null() Frame {
	return Frame{Type: TypeNull}
}

// Boolean returns a "#t" or "#f" frame.
func Boolean(b bool) Frame {
	return Frame{Type: TypeBoolean, Bool: b}
}

// Double returns a ",..." frame.
func Double(f float64) Frame {
	return Frame{Type: TypeDouble, Float: f}
}

// Set returns a "~..." frame. Element uniqueness is a semantic property of
// the producer and is not enforced at the frame layer.
func Set(elems ...Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Type: TypeSet, Elems: elems}
}

// NewMap returns an empty "%" frame. Entries are added with MapSet.
func NewMap() Frame {
	return Frame{Type: TypeMap, Pairs: []Pair{}}
}

// --------------------------------------------------------------------------
// Map Operations
// --------------------------------------------------------------------------

// MapSet inserts or replaces a map entry. Pairs are kept sorted by key so
// that the encoding of a map is deterministic.
func (f *Frame) MapSet(key string, value Frame) {
	i := sort.Search(len(f.Pairs), func(i int) bool { return f.Pairs[i].Key >= key })
	if i < len(f.Pairs) && f.Pairs[i].Key == key {
		f.Pairs[i].Value = value
		return
	}
	f.Pairs = append(f.Pairs, Pair{})
	copy(f.Pairs[i+1:], f.Pairs[i:])
	f.Pairs[i] = Pair{Key: key, Value: value}
}

// MapGet looks up a map entry by key.
func (f Frame) MapGet(key string) (Frame, bool) {
	i := sort.Search(len(f.Pairs), func(i int) bool { return f.Pairs[i].Key >= key })
	if i < len(f.Pairs) && f.Pairs[i].Key == key {
		return f.Pairs[i].Value, true
	}
	return Frame{}, false
}

// --------------------------------------------------------------------------
// Equality and Copying
// --------------------------------------------------------------------------

// Equal reports whether two frames are deeply equal. A null bulk string is
// never equal to an empty bulk string, likewise for arrays.
func (f Frame) Equal(other Frame) bool {
	if f.Type != other.Type || f.Null != other.Null {
		return false
	}
	switch f.Type {
	case TypeSimpleString, TypeSimpleError, TypeBulkString:
		return bytes.Equal(f.Str, other.Str)
	case TypeInteger:
		return f.Int == other.Int
	case TypeDouble:
		// NaN compares equal to NaN so doubles survive a round trip
		if math.IsNaN(f.Float) && math.IsNaN(other.Float) {
			return true
		}
		return f.Float == other.Float
	case TypeBoolean:
		return f.Bool == other.Bool
	case TypeNull:
		return true
	case TypeArray, TypeSet:
		if len(f.Elems) != len(other.Elems) {
			return false
		}
		for i := range f.Elems {
			if !f.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(f.Pairs) != len(other.Pairs) {
			return false
		}
		for i := range f.Pairs {
			if f.Pairs[i].Key != other.Pairs[i].Key {
				return false
			}
			if !f.Pairs[i].Value.Equal(other.Pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a human readable representation of the frame for logs
// and CLI output. It is not the wire encoding.
func (f Frame) String() string {
	switch f.Type {
	case TypeSimpleString:
		return string(f.Str)
	case TypeSimpleError:
		return "(error) " + string(f.Str)
	case TypeInteger:
		return strconv.FormatInt(f.Int, 10)
	case TypeBulkString:
		if f.Null {
			return "(nil)"
		}
		return string(f.Str)
	case TypeArray:
		if f.Null {
			return "(nil)"
		}
		parts := make([]string, len(f.Elems))
		for i, e := range f.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeNull:
		return "(nil)"
	case TypeBoolean:
		if f.Bool {
			return "true"
		}
		return "false"
	case TypeDouble:
		return strconv.FormatFloat(f.Float, 'g', -1, 64)
	case TypeMap:
		parts := make([]string, len(f.Pairs))
		for i, p := range f.Pairs {
			parts[i] = p.Key + ": " + p.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case TypeSet:
		parts := make([]string, len(f.Elems))
		for i, e := range f.Elems {
			parts[i] = e.String()
		}
		return "~{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("unknown frame type %c", byte(f.Type))
	}
}

// Clone returns a deep copy of the frame. The backend stores and returns
// clones so callers never share memory with the store.
func (f Frame) Clone() Frame {
	out := f
	if f.Str != nil {
		out.Str = make([]byte, len(f.Str))
		copy(out.Str, f.Str)
	}
	if f.Elems != nil {
		out.Elems = make([]Frame, len(f.Elems))
		for i := range f.Elems {
			out.Elems[i] = f.Elems[i].Clone()
		}
	}
	if f.Pairs != nil {
		out.Pairs = make([]Pair, len(f.Pairs))
		for i := range f.Pairs {
			out.Pairs[i] = Pair{Key: f.Pairs[i].Key, Value: f.Pairs[i].Value.Clone()}
		}
	}
	return out
}
