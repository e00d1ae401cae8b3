package codec

import (
	"fmt"

	"github.com/zoobzio/sqlgen/internal/types"
)

type optional[T any] struct {
	inner Codec[T]
}

// Optional maps *T to a nullable column: nil encodes as NULL and NULL
// decodes as nil.
func Optional[T any](c Codec[T]) Codec[*T] {
	return optional[T]{inner: c}
}

func (o optional[T]) Type() types.Type { return o.inner.Type() }

func (o optional[T]) Properties() types.Properties {
	p := o.inner.Properties()
	p.Nullable = true
	return p
}

func (o optional[T]) Encode(target Target, v *T) any {
	if v == nil {
		return nil
	}
	return o.inner.Encode(target, *v)
}

func (o optional[T]) Decode(target Target, raw any) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	if b, ok := raw.([]byte); ok && b == nil {
		return nil, nil
	}
	v, err := o.inner.Decode(target, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// marker changes only the column description of an inner codec.
type marker[T any] struct {
	Codec[T]
	typ   types.Type
	props types.Properties
}

func (m marker[T]) Type() types.Type             { return m.typ }
func (m marker[T]) Properties() types.Properties { return m.props }

// Unique marks the column of c as unique.
func Unique[T any](c Codec[T]) Codec[T] {
	p := c.Properties()
	p.Unique = true
	return marker[T]{Codec: c, typ: c.Type(), props: p}
}

// PrimaryKey marks the column of c as the primary key, optionally
// auto-incrementing.
func PrimaryKey[T any](c Codec[T], autoIncr bool) Codec[T] {
	p := c.Properties()
	p.Primary = true
	p.AutoIncr = autoIncr
	return marker[T]{Codec: c, typ: c.Type(), props: p}
}

// TryVarChar narrows a string codec to VARCHAR(n).
func TryVarChar(c Codec[string], n int) (Codec[string], error) {
	if n <= 0 {
		return nil, fmt.Errorf("codec: VARCHAR length must be positive, got %d", n)
	}
	if c.Type().Kind != types.Text && c.Type().Kind != types.VarChar {
		return nil, fmt.Errorf("codec: VARCHAR requires a text codec, got %s", c.Type())
	}
	p := c.Properties()
	p.Length = n
	return marker[string]{Codec: c, typ: types.Type{Kind: types.VarChar, Length: n}, props: p}, nil
}

// VarChar narrows a string codec to VARCHAR(n) or panics.
func VarChar(c Codec[string], n int) Codec[string] {
	v, err := TryVarChar(c, n)
	if err != nil {
		panic(err)
	}
	return v
}
