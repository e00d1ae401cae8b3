package codec

import (
	"github.com/google/uuid"

	"github.com/zoobzio/sqlgen/internal/types"
)

type uuidCodec struct{ column }

// UUID maps uuid.UUID to its canonical 36-character text form.
func UUID() Codec[uuid.UUID] {
	return uuidCodec{column{types.Type{Kind: types.VarChar, Length: 36}}}
}

func (uuidCodec) Encode(_ Target, v uuid.UUID) any { return v.String() }

func (uuidCodec) Decode(_ Target, raw any) (uuid.UUID, error) {
	switch x := raw.(type) {
	case uuid.UUID:
		return x, nil
	case [16]byte:
		return uuid.UUID(x), nil
	}
	raw, err := normalize(raw)
	if err != nil {
		return uuid.Nil, parseError("uuid.UUID", raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return uuid.Nil, nullError("uuid.UUID")
	case string:
		id, err := uuid.Parse(x)
		if err != nil {
			return uuid.Nil, parseError("uuid.UUID", raw, err)
		}
		return id, nil
	default:
		return uuid.Nil, mistyped("uuid.UUID", raw)
	}
}
