package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/zoobzio/sqlgen/internal/types"
)

// Directives that make a format carry a time of day or a zone.
const (
	timeDirectives = "HIMSpPlkrRTXcsfLN"
	zoneDirectives = "zZ"
	flagChars      = "-:_0^#"
)

// ClassifyFormat derives the column kind a strftime format stores: a zone
// directive gives TimestampWithTZ, a time-of-day directive gives Timestamp,
// anything else is a Date.
func ClassifyFormat(format string) types.TypeKind {
	kind := types.Date
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte(flagChars, format[i]) >= 0 {
			i++
		}
		if i >= len(format) {
			break
		}
		switch c := format[i]; {
		case strings.IndexByte(zoneDirectives, c) >= 0:
			return types.TimestampWithTZ
		case strings.IndexByte(timeDirectives, c) >= 0:
			kind = types.Timestamp
		}
	}
	return kind
}

// Fallback layouts tried when a text cell does not match the codec format,
// covering the canonical renderings of the supported engines.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

type timestampCodec struct {
	column
	format string
}

// TryTimestamp maps time.Time to a column whose kind is ClassifyFormat(format).
// Text backends exchange the strftime rendering of the value; the format must
// be parseable as well as printable.
func TryTimestamp(format string) (Codec[time.Time], error) {
	if format == "" {
		return nil, fmt.Errorf("codec: empty timestamp format")
	}
	if _, err := strftime.Layout(format); err != nil {
		return nil, fmt.Errorf("codec: timestamp format %q: %w", format, err)
	}
	return timestampCodec{column: column{types.Type{Kind: ClassifyFormat(format)}}, format: format}, nil
}

// Timestamp is TryTimestamp that panics on an unusable format.
func Timestamp(format string) Codec[time.Time] {
	c, err := TryTimestamp(format)
	if err != nil {
		panic(err)
	}
	return c
}

// Zoneless values are stored in UTC.
func (c timestampCodec) Encode(target Target, v time.Time) any {
	if c.typ.Kind != types.TimestampWithTZ {
		v = v.UTC()
	}
	if target == Native {
		return v
	}
	return strftime.Format(c.format, v)
}

func (c timestampCodec) Decode(_ Target, raw any) (time.Time, error) {
	raw, err := normalize(raw)
	if err != nil {
		return time.Time{}, parseError("time.Time", raw, err)
	}
	switch x := raw.(type) {
	case nil:
		return time.Time{}, nullError("time.Time")
	case time.Time:
		if c.typ.Kind != types.TimestampWithTZ {
			return x.UTC(), nil
		}
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		t, perr := strftime.Parse(c.format, s)
		if perr == nil {
			return t, nil
		}
		for _, layout := range fallbackLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, parseError("time.Time", raw, perr)
	default:
		return time.Time{}, mistyped("time.Time", raw)
	}
}
