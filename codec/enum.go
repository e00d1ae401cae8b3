package codec

import (
	"fmt"
	"strconv"

	"github.com/zoobzio/sqlgen/internal/types"
)

// MaxOrdinals bounds the names an ordinal enum may carry so every ordinal
// fits a UInt8 column with one value to spare.
const MaxOrdinals = 255

type integer interface {
	signed | unsigned
}

type enumOptions struct {
	ordinal bool
}

// EnumOption configures Enum.
type EnumOption func(*enumOptions)

// AsOrdinal stores the position of the name in a UInt8 column instead of the
// name itself. Meant for the columnar backend.
func AsOrdinal() EnumOption {
	return func(o *enumOptions) { o.ordinal = true }
}

type enumCodec[E integer] struct {
	names   []string
	index   map[string]E
	ordinal bool
	typ     types.Type
}

// TryEnum maps the integer enumeration E to its symbolic names: E(i) is
// names[i].
func TryEnum[E integer](names []string, opts ...EnumOption) (Codec[E], error) {
	var o enumOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("codec: enum needs at least one name")
	}
	if o.ordinal && len(names) >= MaxOrdinals {
		return nil, fmt.Errorf("codec: ordinal enum has %d names, the limit is %d", len(names), MaxOrdinals-1)
	}

	c := enumCodec[E]{
		names:   append([]string(nil), names...),
		index:   make(map[string]E, len(names)),
		ordinal: o.ordinal,
	}
	longest := 0
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("codec: enum name %d is empty", i)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("codec: enum name %q is repeated", name)
		}
		c.index[name] = E(i)
		longest = max(longest, len(name))
	}
	if c.ordinal {
		c.typ = types.Type{Kind: types.UInt8}
	} else {
		c.typ = types.Type{Kind: types.VarChar, Length: longest}
	}
	return c, nil
}

// Enum is TryEnum that panics on an invalid name list.
func Enum[E integer](names []string, opts ...EnumOption) Codec[E] {
	c, err := TryEnum[E](names, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c enumCodec[E]) Type() types.Type { return c.typ }

func (c enumCodec[E]) Properties() types.Properties {
	return types.Properties{Length: c.typ.Length}
}

// Encode maps a value outside the name list to NULL on both storages.
func (c enumCodec[E]) Encode(target Target, v E) any {
	i := int(v)
	if i < 0 || i >= len(c.names) {
		return nil
	}
	if c.ordinal {
		if target == Native {
			return uint8(i)
		}
		return strconv.Itoa(i)
	}
	return c.names[i]
}

func (c enumCodec[E]) Decode(_ Target, raw any) (E, error) {
	raw, err := normalize(raw)
	if err != nil {
		return 0, parseError("enum", raw, err)
	}
	if raw == nil {
		return 0, nullError("enum")
	}
	if !c.ordinal {
		s, ok := raw.(string)
		if !ok {
			return 0, mistyped("enum", raw)
		}
		v, ok := c.index[s]
		if !ok {
			return 0, parseError("enum", raw, fmt.Errorf("unknown name %q", s))
		}
		return v, nil
	}
	n, err := decodeUint("enum", 8, raw)
	if err != nil {
		return 0, err
	}
	if int(n) >= len(c.names) {
		return 0, parseError("enum", raw, fmt.Errorf("ordinal %d out of range", n))
	}
	return E(n), nil
}
