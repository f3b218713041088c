package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/letsrust/simple-redis/lib/db"
	"github.com/letsrust/simple-redis/lib/resp"
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// InvalidArgumentError is returned when a structurally valid frame does
// not match any known command shape: unknown name, wrong arity, or
// non-text bytes where text is required.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// --------------------------------------------------------------------------
// Command Types
// --------------------------------------------------------------------------

// Command is one validated client request, ready to execute.
type Command interface {
	// Name returns the canonical lowercase command name.
	Name() string

	// Execute runs the command against the backend and returns the reply
	// frame. Execution never fails: every validated command maps to a
	// no-fail mutation or a total query.
	Execute(backend db.Backend) resp.Frame
}

// Get reads a key from the flat namespace.
type Get struct {
	Key string
}

// Set stores a value in the flat namespace.
type Set struct {
	Key   string
	Value resp.Frame
}

// HGet reads one field of a hash key.
type HGet struct {
	Key   string
	Field string
}

// HSet upserts one field of a hash key.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

// HGetAll reads every field of a hash key.
type HGetAll struct {
	Key string
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// arity after the command name, fixed and non-variadic
const (
	arityGet     = 1
	aritySet     = 2
	arityHGet    = 2
	arityHSet    = 3
	arityHGetAll = 1
)

// Parse validates a decoded frame and extracts the typed command it
// carries. The frame must be an Array of BulkStrings with the command
// name, case-insensitively compared, as its first element.
func Parse(f resp.Frame) (Command, error) {
	args, err := requestArgs(f)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(string(args[0]))
	switch name {
	case "get":
		if err := checkArity(name, args, arityGet); err != nil {
			return nil, err
		}
		key, err := textArg(args[1], "key")
		if err != nil {
			return nil, err
		}
		return Get{Key: key}, nil

	case "set":
		if err := checkArity(name, args, aritySet); err != nil {
			return nil, err
		}
		key, err := textArg(args[1], "key")
		if err != nil {
			return nil, err
		}
		// the value stays an opaque frame so arbitrary binary content
		// can be stored
		return Set{Key: key, Value: resp.BulkString(args[2]).Clone()}, nil

	case "hget":
		if err := checkArity(name, args, arityHGet); err != nil {
			return nil, err
		}
		key, err := textArg(args[1], "key")
		if err != nil {
			return nil, err
		}
		field, err := textArg(args[2], "field")
		if err != nil {
			return nil, err
		}
		return HGet{Key: key, Field: field}, nil

	case "hset":
		if err := checkArity(name, args, arityHSet); err != nil {
			return nil, err
		}
		key, err := textArg(args[1], "key")
		if err != nil {
			return nil, err
		}
		field, err := textArg(args[2], "field")
		if err != nil {
			return nil, err
		}
		return HSet{Key: key, Field: field, Value: resp.BulkString(args[3]).Clone()}, nil

	case "hgetall":
		if err := checkArity(name, args, arityHGetAll); err != nil {
			return nil, err
		}
		key, err := textArg(args[1], "key")
		if err != nil {
			return nil, err
		}
		return HGetAll{Key: key}, nil

	default:
		return nil, invalidf("unknown command %q", name)
	}
}

// requestArgs checks the outer request shape and returns the bulk string
// payloads, name included.
func requestArgs(f resp.Frame) ([][]byte, error) {
	if f.Type != resp.TypeArray || f.Null {
		return nil, invalidf("request must be an array of bulk strings")
	}
	if len(f.Elems) == 0 {
		return nil, invalidf("empty request")
	}

	args := make([][]byte, len(f.Elems))
	for i, elem := range f.Elems {
		if elem.Type != resp.TypeBulkString || elem.Null {
			return nil, invalidf("request element %d must be a bulk string", i)
		}
		args[i] = elem.Str
	}
	return args, nil
}

// checkArity verifies the exact argument count after the command name.
func checkArity(name string, args [][]byte, want int) error {
	if got := len(args) - 1; got != want {
		return invalidf("%s expects exactly %d argument(s), got %d", name, want, got)
	}
	return nil
}

// textArg validates that an argument used as an identifier is UTF-8 text
// and returns an owned copy.
func textArg(b []byte, what string) (string, error) {
	if !utf8.Valid(b) {
		return "", invalidf("%s must be valid UTF-8 text", what)
	}
	return string(b), nil
}
