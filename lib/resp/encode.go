package resp

import (
	"math"
	"strconv"
	"strings"
)

var crlf = []byte("\r\n")

// --------------------------------------------------------------------------
// Encoder
// --------------------------------------------------------------------------

// Encode returns the exact wire encoding of the frame. Encoding is total:
// there is no failure mode.
func (f Frame) Encode() []byte {
	return f.Append(nil)
}

// Append appends the wire encoding of the frame to buf and returns the
// extended buffer.
func (f Frame) Append(buf []byte) []byte {
	switch f.Type {
	case TypeSimpleString, TypeSimpleError:
		buf = append(buf, byte(f.Type))
		buf = append(buf, f.Str...)
		return append(buf, crlf...)

	case TypeInteger:
		buf = append(buf, ':')
		// the sign is always rendered, also for zero and positive values
		if f.Int >= 0 {
			buf = append(buf, '+')
		}
		buf = strconv.AppendInt(buf, f.Int, 10)
		return append(buf, crlf...)

	case TypeBulkString:
		if f.Null {
			return append(buf, "$-1\r\n"...)
		}
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(f.Str)), 10)
		buf = append(buf, crlf...)
		buf = append(buf, f.Str...)
		return append(buf, crlf...)

	case TypeArray:
		if f.Null {
			return append(buf, "*-1\r\n"...)
		}
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, int64(len(f.Elems)), 10)
		buf = append(buf, crlf...)
		for _, e := range f.Elems {
			buf = e.Append(buf)
		}
		return buf

	case TypeNull:
		return append(buf, "_\r\n"...)

	case TypeBoolean:
		if f.Bool {
			return append(buf, "#t\r\n"...)
		}
		return append(buf, "#f\r\n"...)

	case TypeDouble:
		buf = append(buf, ',')
		buf = appendDouble(buf, f.Float)
		return append(buf, crlf...)

	case TypeMap:
		buf = append(buf, '%')
		buf = strconv.AppendInt(buf, int64(len(f.Pairs)), 10)
		buf = append(buf, crlf...)
		for _, p := range f.Pairs {
			buf = SimpleString(p.Key).Append(buf)
			buf = p.Value.Append(buf)
		}
		return buf

	case TypeSet:
		buf = append(buf, '~')
		buf = strconv.AppendInt(buf, int64(len(f.Elems)), 10)
		buf = append(buf, crlf...)
		for _, e := range f.Elems {
			buf = e.Append(buf)
		}
		return buf

	default:
		// unreachable for frames built through this package
		return buf
	}
}

// appendDouble renders a double with an explicit sign. Magnitudes above
// 1e8 or below 1e-8 (and nonzero) use scientific notation with a signed
// mantissa and an unpadded exponent, e.g. "+1.23456e8" and "-1.23456e-9".
// Everything else is signed fixed-point, e.g. "+3.44". The non-finite
// values render as "+inf", "-inf" and "nan".
func appendDouble(buf []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(buf, "nan"...)
	case math.IsInf(v, 1):
		return append(buf, "+inf"...)
	case math.IsInf(v, -1):
		return append(buf, "-inf"...)
	}

	abs := math.Abs(v)
	if abs != 0 && (abs > 1e8 || abs < 1e-8) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exponent, _ := strings.Cut(s, "e")
		if mantissa[0] != '-' {
			buf = append(buf, '+')
		}
		buf = append(buf, mantissa...)
		buf = append(buf, 'e')

		// strconv pads the exponent ("e+08"), the wire format does not
		negExp := exponent[0] == '-'
		exponent = strings.TrimLeft(strings.TrimLeft(exponent, "+-"), "0")
		if exponent == "" {
			exponent = "0"
		}
		if negExp {
			buf = append(buf, '-')
		}
		return append(buf, exponent...)
	}

	if v >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendFloat(buf, v, 'f', -1, 64)
}
