package typing

import (
	"fmt"
	"math"
)

// Built-in primitive type names.
const (
	PrimitiveBoolean    = "Boolean"
	PrimitiveString     = "String"
	PrimitiveInt8       = "Byte"
	PrimitiveInt16      = "Short"
	PrimitiveInt32      = "Integer"
	PrimitiveInt64      = "Long"
	PrimitiveUInt8      = "UInt8"
	PrimitiveUInt16     = "UInt16"
	PrimitiveUInt32     = "UInt32"
	PrimitiveUInt64     = "UInt64"
	PrimitiveFloat      = "Float"
	PrimitiveDouble     = "Double"
	PrimitiveByteBuffer = "ByteBuffer"
)

// ArraySuffix marks an array type name, e.g. "Integer[]".
const ArraySuffix = "[]"

type primitive struct {
	// convert turns a raw decoded value into the Go type.
	convert func(v any) (any, error)
	// accepts reports whether v already is a valid Go value of the type.
	accepts func(v any) bool
}

var primitives = map[string]primitive{
	PrimitiveBoolean: {
		convert: func(v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, mismatch(PrimitiveBoolean, v)
			}
			return b, nil
		},
		accepts: func(v any) bool { _, ok := v.(bool); return ok },
	},
	PrimitiveString: {
		convert: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, mismatch(PrimitiveString, v)
			}
			return s, nil
		},
		accepts: func(v any) bool { _, ok := v.(string); return ok },
	},
	PrimitiveInt8:   signed(PrimitiveInt8, math.MinInt8, math.MaxInt8, func(n int64) any { return int8(n) }),
	PrimitiveInt16:  signed(PrimitiveInt16, math.MinInt16, math.MaxInt16, func(n int64) any { return int16(n) }),
	PrimitiveInt32:  signed(PrimitiveInt32, math.MinInt32, math.MaxInt32, func(n int64) any { return int32(n) }),
	PrimitiveInt64:  signed(PrimitiveInt64, math.MinInt64, math.MaxInt64, func(n int64) any { return n }),
	PrimitiveUInt8:  unsigned(PrimitiveUInt8, math.MaxUint8, func(n uint64) any { return uint8(n) }),
	PrimitiveUInt16: unsigned(PrimitiveUInt16, math.MaxUint16, func(n uint64) any { return uint16(n) }),
	PrimitiveUInt32: unsigned(PrimitiveUInt32, math.MaxUint32, func(n uint64) any { return uint32(n) }),
	PrimitiveUInt64: unsigned(PrimitiveUInt64, math.MaxUint64, func(n uint64) any { return n }),
	PrimitiveFloat: {
		convert: func(v any) (any, error) {
			f, ok := toFloat64(v)
			if !ok {
				return nil, mismatch(PrimitiveFloat, v)
			}
			return float32(f), nil
		},
		accepts: isNumericType,
	},
	PrimitiveDouble: {
		convert: func(v any) (any, error) {
			f, ok := toFloat64(v)
			if !ok {
				return nil, mismatch(PrimitiveDouble, v)
			}
			return f, nil
		},
		accepts: isNumericType,
	},
	PrimitiveByteBuffer: {
		convert: func(v any) (any, error) {
			b, ok := v.([]byte)
			if !ok {
				return nil, mismatch(PrimitiveByteBuffer, v)
			}
			return b, nil
		},
		accepts: func(v any) bool { _, ok := v.([]byte); return ok },
	},
}

func signed(name string, min, max int64, cast func(int64) any) primitive {
	return primitive{
		convert: func(v any) (any, error) {
			n, ok := toInt64(v)
			if !ok {
				return nil, mismatch(name, v)
			}
			if n < min || n > max {
				return nil, fmt.Errorf("%w: %v out of range for %s", ErrTypeMismatch, v, name)
			}
			return cast(n), nil
		},
		accepts: isIntegerType,
	}
}

func unsigned(name string, max uint64, cast func(uint64) any) primitive {
	return primitive{
		convert: func(v any) (any, error) {
			n, ok := toUint64(v)
			if !ok {
				return nil, mismatch(name, v)
			}
			if n > max {
				return nil, fmt.Errorf("%w: %v out of range for %s", ErrTypeMismatch, v, name)
			}
			return cast(n), nil
		},
		accepts: isIntegerType,
	}
}

func mismatch(name string, v any) error {
	return fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, name, v)
}

// IsPrimitive reports whether name is a built-in primitive type name.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

func isIntegerType(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isNumericType(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		i, ok := toInt64(v)
		if !ok || i < 0 {
			return 0, false
		}
		return uint64(i), true
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	if u, ok := toUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}
