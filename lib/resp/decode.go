package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// --------------------------------------------------------------------------
// Decode Outcomes
// --------------------------------------------------------------------------

// ErrIncomplete signals that the buffer holds a structurally valid but not
// yet fully present frame. The caller must accumulate more bytes and call
// Decode again; no bytes were consumed.
var ErrIncomplete = errors.New("resp: incomplete frame")

// ProtocolError reports bytes that can not possibly form a valid frame.
// The framing is desynchronized: the session that produced the bytes must
// be terminated.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "resp: protocol error: " + e.Msg
}

func protoErrorf(format string, args ...interface{}) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

// --------------------------------------------------------------------------
// Decoder
// --------------------------------------------------------------------------

// Decode reads one complete frame from the front of buf.
//
// On success it returns the frame and the number of bytes it occupied.
// It returns ErrIncomplete when buf ends before the frame does, and a
// *ProtocolError when the bytes are malformed. In both error cases the
// consumed count is zero and buf is left unmodified, which makes Decode
// safe to call repeatedly while a socket fills a growing buffer.
//
// The returned frame owns its memory; it does not alias buf.
func Decode(buf []byte) (Frame, int, error) {
	f, pos, err := decodeAt(buf, 0)
	if err != nil {
		return Frame{}, 0, err
	}
	return f, pos, nil
}

// decodeAt decodes the frame starting at pos and returns it together with
// the position of the first byte after the frame.
func decodeAt(buf []byte, pos int) (Frame, int, error) {
	if pos >= len(buf) {
		return Frame{}, 0, ErrIncomplete
	}

	tag := Type(buf[pos])
	switch tag {
	case TypeSimpleString, TypeSimpleError:
		line, next, err := decodeLine(buf, pos+1)
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Type: tag, Str: cloneBytes(line)}, next, nil

	case TypeInteger:
		line, next, err := decodeLine(buf, pos+1)
		if err != nil {
			return Frame{}, 0, err
		}
		i, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Frame{}, 0, protoErrorf("invalid integer %q", line)
		}
		return Integer(i), next, nil

	case TypeBoolean:
		line, next, err := decodeLine(buf, pos+1)
		if err != nil {
			return Frame{}, 0, err
		}
		switch string(line) {
		case "t":
			return Boolean(true), next, nil
		case "f":
			return Boolean(false), next, nil
		default:
			return Frame{}, 0, protoErrorf("invalid boolean %q", line)
		}

	case TypeDouble:
		line, next, err := decodeLine(buf, pos+1)
		if err != nil {
			return Frame{}, 0, err
		}
		// a fully present but malformed number is fatal, not Incomplete
		v, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return Frame{}, 0, protoErrorf("invalid double %q", line)
		}
		return Double(v), next, nil

	case TypeNull:
		line, next, err := decodeLine(buf, pos+1)
		if err != nil {
			return Frame{}, 0, err
		}
		if len(line) != 0 {
			return Frame{}, 0, protoErrorf("unexpected payload %q after null tag", line)
		}
		return Null(), next, nil

	case TypeBulkString:
		return decodeBulkString(buf, pos+1)

	case TypeArray:
		return decodeAggregate(buf, pos+1, TypeArray, true)

	case TypeSet:
		return decodeAggregate(buf, pos+1, TypeSet, false)

	case TypeMap:
		return decodeMap(buf, pos+1)

	default:
		return Frame{}, 0, protoErrorf("unknown frame tag %q", byte(tag))
	}
}

// decodeBulkString decodes the length line and payload of a "$" frame.
func decodeBulkString(buf []byte, pos int) (Frame, int, error) {
	n, next, err := decodeLength(buf, pos)
	if err != nil {
		return Frame{}, 0, err
	}
	if n == -1 {
		return NullBulkString(), next, nil
	}

	// payload plus trailing CRLF must be fully present
	end := next + n
	if end+2 > len(buf) {
		return Frame{}, 0, ErrIncomplete
	}
	if buf[end] != '\r' || buf[end+1] != '\n' {
		return Frame{}, 0, protoErrorf("bulk string of length %d not terminated by CRLF", n)
	}
	return BulkString(cloneBytes(buf[next:end])), end + 2, nil
}

// decodeAggregate decodes "*" and "~" frames. Only the array permits the
// "-1" null marker.
func decodeAggregate(buf []byte, pos int, typ Type, allowNull bool) (Frame, int, error) {
	n, next, err := decodeLength(buf, pos)
	if err != nil {
		return Frame{}, 0, err
	}
	if n == -1 {
		if !allowNull {
			return Frame{}, 0, protoErrorf("negative %s count", typ)
		}
		return NullArray(), next, nil
	}

	// cap the pre-allocation by the bytes still in the buffer, the
	// announced count may be far larger than anything actually sent
	// (the smallest frame, "_\r\n", occupies 3 bytes)
	elems := make([]Frame, 0, min(n, (len(buf)-next)/3))
	for i := 0; i < n; i++ {
		var elem Frame
		elem, next, err = decodeAt(buf, next)
		if err != nil {
			return Frame{}, 0, err
		}
		elems = append(elems, elem)
	}
	return Frame{Type: typ, Elems: elems}, next, nil
}

// decodeMap decodes a "%" frame. Every key must be a SimpleString.
func decodeMap(buf []byte, pos int) (Frame, int, error) {
	n, next, err := decodeLength(buf, pos)
	if err != nil {
		return Frame{}, 0, err
	}
	if n == -1 {
		return Frame{}, 0, protoErrorf("negative map count")
	}

	m := NewMap()
	for i := 0; i < n; i++ {
		var key, value Frame
		key, next, err = decodeAt(buf, next)
		if err != nil {
			return Frame{}, 0, err
		}
		if key.Type != TypeSimpleString {
			return Frame{}, 0, protoErrorf("map key must be a simple string, got %s", key.Type)
		}
		value, next, err = decodeAt(buf, next)
		if err != nil {
			return Frame{}, 0, err
		}
		m.MapSet(string(key.Str), value)
	}
	return m, next, nil
}

// decodeLength parses the CRLF terminated length/count line of the
// length-prefixed variants. The only valid negative value is -1.
func decodeLength(buf []byte, pos int) (int, int, error) {
	line, next, err := decodeLine(buf, pos)
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, 0, protoErrorf("invalid length %q", line)
	}
	if n < -1 {
		return 0, 0, protoErrorf("invalid negative length %d", n)
	}
	return n, next, nil
}

// decodeLine returns the bytes between pos and the next CRLF, and the
// position after the CRLF. Without a full CRLF in the buffer the line is
// not yet decidable and the result is ErrIncomplete. A bare CR or LF
// inside the line would desynchronize the framing on re-encode and is
// rejected.
func decodeLine(buf []byte, pos int) ([]byte, int, error) {
	if pos > len(buf) {
		return nil, 0, ErrIncomplete
	}
	idx := bytes.Index(buf[pos:], crlf)
	if idx < 0 {
		return nil, 0, ErrIncomplete
	}
	line := buf[pos : pos+idx]
	if bytes.ContainsAny(line, "\r\n") {
		return nil, 0, protoErrorf("bare CR or LF inside line %q", line)
	}
	return line, pos + idx + 2, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
