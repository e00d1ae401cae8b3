package codec

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlgen/internal/types"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

type column struct {
	typ types.Type
}

func (c column) Type() types.Type             { return c.typ }
func (c column) Properties() types.Properties { return types.Properties{Length: c.typ.Length} }

// boolCodec encodes booleans as "1"/"0" on text backends, which every
// supported engine accepts for its boolean or bit type.
type boolCodec struct{ column }

// Bool maps bool to a BOOLEAN column.
func Bool() Codec[bool] { return boolCodec{column{types.Type{Kind: types.Boolean}}} }

func (boolCodec) Encode(target Target, v bool) any {
	if target == Native {
		return v
	}
	if v {
		return "1"
	}
	return "0"
}

func (boolCodec) Decode(_ Target, raw any) (bool, error) {
	raw, err := normalize(raw)
	if err != nil {
		return false, parseError("bool", raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return false, nullError("bool")
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "t", "true":
			return true, nil
		case "0", "f", "false":
			return false, nil
		}
		return false, parseError("bool", raw, nil)
	case int64:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
		return false, parseError("bool", raw, nil)
	default:
		if n, ok := nativeInt(raw); ok && (n == 0 || n == 1) {
			return n == 1, nil
		}
		return false, mistyped("bool", raw)
	}
}

type intCodec[T signed] struct {
	column
	bits int
	name string
}

func (c intCodec[T]) Encode(target Target, v T) any {
	if target == Native {
		return nativeSigned(c.bits, int64(v))
	}
	return strconv.FormatInt(int64(v), 10)
}

func (c intCodec[T]) Decode(_ Target, raw any) (T, error) {
	n, err := decodeInt(c.name, c.bits, raw)
	return T(n), err
}

// Int8 maps int8 to a TINYINT-class column.
func Int8() Codec[int8] { return intCodec[int8]{column{types.Type{Kind: types.Int8}}, 8, "int8"} }

// Int16 maps int16 to a SMALLINT column.
func Int16() Codec[int16] {
	return intCodec[int16]{column{types.Type{Kind: types.Int16}}, 16, "int16"}
}

// Int32 maps int32 to an INTEGER column.
func Int32() Codec[int32] {
	return intCodec[int32]{column{types.Type{Kind: types.Int32}}, 32, "int32"}
}

// Int64 maps int64 to a BIGINT column.
func Int64() Codec[int64] {
	return intCodec[int64]{column{types.Type{Kind: types.Int64}}, 64, "int64"}
}

// Int maps int to a BIGINT column.
func Int() Codec[int] { return intCodec[int]{column{types.Type{Kind: types.Int64}}, 64, "int"} }

type uintCodec[T unsigned] struct {
	column
	bits int
	name string
}

func (c uintCodec[T]) Encode(target Target, v T) any {
	if target == Native {
		return nativeUnsigned(c.bits, uint64(v))
	}
	return strconv.FormatUint(uint64(v), 10)
}

func (c uintCodec[T]) Decode(_ Target, raw any) (T, error) {
	n, err := decodeUint(c.name, c.bits, raw)
	return T(n), err
}

// Uint8 maps uint8 to an unsigned 8-bit column.
func Uint8() Codec[uint8] {
	return uintCodec[uint8]{column{types.Type{Kind: types.UInt8}}, 8, "uint8"}
}

// Uint16 maps uint16 to an unsigned 16-bit column.
func Uint16() Codec[uint16] {
	return uintCodec[uint16]{column{types.Type{Kind: types.UInt16}}, 16, "uint16"}
}

// Uint32 maps uint32 to an unsigned 32-bit column.
func Uint32() Codec[uint32] {
	return uintCodec[uint32]{column{types.Type{Kind: types.UInt32}}, 32, "uint32"}
}

// Uint64 maps uint64 to an unsigned 64-bit column.
func Uint64() Codec[uint64] {
	return uintCodec[uint64]{column{types.Type{Kind: types.UInt64}}, 64, "uint64"}
}

type floatCodec[T float] struct {
	column
	bits int
	name string
}

func (c floatCodec[T]) Encode(target Target, v T) any {
	if target == Native {
		if c.bits == 32 {
			return float32(v)
		}
		return float64(v)
	}
	return strconv.FormatFloat(float64(v), 'g', -1, c.bits)
}

func (c floatCodec[T]) Decode(_ Target, raw any) (T, error) {
	raw, err := normalize(raw)
	if err != nil {
		return 0, parseError(c.name, raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return 0, nullError(c.name)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), c.bits)
		if err != nil {
			return 0, parseError(c.name, raw, err)
		}
		return T(f), nil
	case float64:
		return T(x), nil
	case float32:
		return T(x), nil
	default:
		if n, ok := nativeInt(raw); ok {
			return T(n), nil
		}
		return 0, mistyped(c.name, raw)
	}
}

// Float32 maps float32 to a REAL column.
func Float32() Codec[float32] {
	return floatCodec[float32]{column{types.Type{Kind: types.Float32}}, 32, "float32"}
}

// Float64 maps float64 to a DOUBLE column.
func Float64() Codec[float64] {
	return floatCodec[float64]{column{types.Type{Kind: types.Float64}}, 64, "float64"}
}

type stringCodec struct{ column }

// String maps string to a TEXT column.
func String() Codec[string] { return stringCodec{column{types.Type{Kind: types.Text}}} }

func (stringCodec) Encode(_ Target, v string) any { return v }

func (stringCodec) Decode(_ Target, raw any) (string, error) {
	raw, err := normalize(raw)
	if err != nil {
		return "", parseError("string", raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return "", nullError("string")
	case string:
		return x, nil
	default:
		return "", mistyped("string", raw)
	}
}

func decodeInt(name string, bits int, raw any) (int64, error) {
	raw, err := normalize(raw)
	if err != nil {
		return 0, parseError(name, raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return 0, nullError(name)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, bits)
		if err != nil {
			return 0, parseError(name, raw, unwrapNumError(err))
		}
		return n, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, parseError(name, raw, nil)
		}
		return checkSigned(name, bits, raw, int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return 0, parseError(name, raw, strconv.ErrRange)
		}
		return checkSigned(name, bits, raw, int64(x))
	default:
		n, ok := nativeInt(raw)
		if !ok {
			return 0, mistyped(name, raw)
		}
		return checkSigned(name, bits, raw, n)
	}
}

func checkSigned(name string, bits int, raw any, n int64) (int64, error) {
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n < -limit || n >= limit {
			return 0, parseError(name, raw, strconv.ErrRange)
		}
	}
	return n, nil
}

func decodeUint(name string, bits int, raw any) (uint64, error) {
	raw, err := normalize(raw)
	if err != nil {
		return 0, parseError(name, raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return 0, nullError(name)
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(x), 10, bits)
		if err != nil {
			return 0, parseError(name, raw, unwrapNumError(err))
		}
		return n, nil
	case uint64:
		return checkUnsigned(name, bits, raw, x)
	case float64:
		if x != math.Trunc(x) || x < 0 {
			return 0, parseError(name, raw, nil)
		}
		return checkUnsigned(name, bits, raw, uint64(x))
	default:
		n, ok := nativeInt(raw)
		if !ok {
			return 0, mistyped(name, raw)
		}
		if n < 0 {
			return 0, parseError(name, raw, strconv.ErrRange)
		}
		return checkUnsigned(name, bits, raw, uint64(n))
	}
}

func checkUnsigned(name string, bits int, raw any, n uint64) (uint64, error) {
	if bits < 64 && n >= uint64(1)<<bits {
		return 0, parseError(name, raw, strconv.ErrRange)
	}
	return n, nil
}

// nativeSigned narrows n to the Go type matching a column of the given
// width, which is what the columnar appender expects.
func nativeSigned(bits int, n int64) any {
	switch bits {
	case 8:
		return int8(n)
	case 16:
		return int16(n)
	case 32:
		return int32(n)
	default:
		return n
	}
}

func nativeUnsigned(bits int, n uint64) any {
	switch bits {
	case 8:
		return uint8(n)
	case 16:
		return uint16(n)
	case 32:
		return uint32(n)
	default:
		return n
	}
}

// nativeInt widens the integer types drivers return.
func nativeInt(raw any) (int64, bool) {
	switch x := raw.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	default:
		return 0, false
	}
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
