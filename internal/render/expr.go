package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlgen/internal/types"
)

func (ctx *renderContext) column(c types.Column) string {
	if c.Table == "" || ctx.unqualified {
		return ctx.r.quote(c.Name)
	}
	return c.Table + "." + ctx.r.quote(c.Name)
}

func (ctx *renderContext) operation(op types.Operation) (string, error) {
	d := ctx.dialect()
	switch o := op.(type) {
	case types.Column:
		return ctx.column(o), nil
	case types.Literal:
		return ctx.literal(o.Value)
	case types.Aggregation:
		if o.Operand == nil {
			return o.Kind.String() + "(*)", nil
		}
		inner, err := ctx.operation(o.Operand)
		if err != nil {
			return "", err
		}
		if o.Distinct {
			inner = "DISTINCT " + inner
		}
		return o.Kind.String() + "(" + inner + ")", nil
	case types.Unary:
		tmpl, ok := d.Unary[o.Func]
		if !ok {
			return "", unhandled(d.Name, "function "+o.Func.String())
		}
		return ctx.template(tmpl, o.Operand)
	case types.Binary:
		left, err := ctx.operation(o.Left)
		if err != nil {
			return "", err
		}
		right, err := ctx.operation(o.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + ") " + o.Op.Symbol() + " (" + right + ")", nil
	case types.Concat:
		parts, err := ctx.operations(o.Operands)
		if err != nil {
			return "", err
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		if d.Concat == ConcatFunction {
			return "concat(" + strings.Join(parts, ", ") + ")", nil
		}
		return "(" + strings.Join(parts, ") || (") + ")", nil
	case types.Coalesce:
		parts, err := ctx.operations(o.Operands)
		if err != nil {
			return "", err
		}
		return "coalesce(" + strings.Join(parts, ", ") + ")", nil
	case types.Cast:
		inner, err := ctx.operation(o.Operand)
		if err != nil {
			return "", err
		}
		target, err := ctx.castType(o.Target)
		if err != nil {
			return "", err
		}
		return "CAST(" + inner + " AS " + target + ")", nil
	case types.Round:
		inner, err := ctx.operation(o.Operand)
		if err != nil {
			return "", err
		}
		return "round(" + inner + ", " + strconv.Itoa(o.Digits) + ")", nil
	case types.Extract:
		tmpl, ok := d.Extract[o.Part]
		if !ok {
			return "", unhandled(d.Name, "date part "+o.Part.String())
		}
		return ctx.template(tmpl, o.Operand)
	case types.Replace:
		inner, err := ctx.operation(o.Operand)
		if err != nil {
			return "", err
		}
		return "replace(" + inner + ", " + quoteString(o.From) + ", " + quoteString(o.To) + ")", nil
	case types.DatePlusDuration:
		return ctx.dateMath(o)
	case types.DaysBetween:
		if d.DaysBetween == "" {
			return "", unhandled(d.Name, "days between")
		}
		from, err := ctx.operation(o.From)
		if err != nil {
			return "", err
		}
		to, err := ctx.operation(o.To)
		if err != nil {
			return "", err
		}
		return strings.NewReplacer("{from}", from, "{to}", to).Replace(d.DaysBetween), nil
	case types.Unixepoch:
		if d.Unixepoch == "" {
			return "", unhandled(d.Name, "unixepoch")
		}
		return ctx.template(d.Unixepoch, o.Operand)
	default:
		return "", unhandled(d.Name, fmt.Sprintf("operation %T", op))
	}
}

func (ctx *renderContext) operations(ops []types.Operation) ([]string, error) {
	out := make([]string, len(ops))
	for i, op := range ops {
		s, err := ctx.operation(op)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (ctx *renderContext) template(tmpl string, operand types.Operation) (string, error) {
	inner, err := ctx.operation(operand)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(tmpl, "{x}", inner), nil
}

func (ctx *renderContext) literal(v types.Value) (string, error) {
	d := ctx.dialect()
	switch x := v.(type) {
	case types.Integer:
		return strconv.FormatInt(int64(x), 10), nil
	case types.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", ctx.unsupported("non-finite float literal")
		}
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s, nil
	case types.String:
		return quoteString(string(x)), nil
	case types.Bool:
		if x {
			return d.True, nil
		}
		return d.False, nil
	case types.Duration:
		if !d.Capabilities.IntervalLiterals {
			return "", ctx.unsupported("interval literal", "add the duration to a date instead")
		}
		return fmt.Sprintf("INTERVAL '%d %s'", x.N, x.Unit), nil
	default:
		return "", unhandled(d.Name, fmt.Sprintf("value %T", v))
	}
}

// quoteString escapes s as a SQL string literal by doubling embedded quotes.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (ctx *renderContext) columnType(t types.Type) (string, error) {
	return ctx.typeName(t, ctx.dialect().Types)
}

func (ctx *renderContext) castType(t types.Type) (string, error) {
	if _, ok := ctx.dialect().CastTypes[t.Kind]; ok {
		return ctx.typeName(t, ctx.dialect().CastTypes)
	}
	return ctx.columnType(t)
}

func (ctx *renderContext) typeName(t types.Type, table map[types.TypeKind]string) (string, error) {
	name, ok := table[t.Kind]
	if !ok {
		return "", unhandled(ctx.dialect().Name, "type "+t.Kind.String())
	}
	if t.Kind == types.VarChar && strings.Contains(name, "%d") {
		return fmt.Sprintf(name, t.Length), nil
	}
	return name, nil
}

var (
	mysqlUnits = [...]string{
		types.Milliseconds: "MICROSECOND",
		types.Seconds:      "SECOND",
		types.Minutes:      "MINUTE",
		types.Hours:        "HOUR",
		types.Days:         "DAY",
		types.Weeks:        "WEEK",
		types.Months:       "MONTH",
		types.Years:        "YEAR",
	}
	dateaddUnits = [...]string{
		types.Milliseconds: "millisecond",
		types.Seconds:      "second",
		types.Minutes:      "minute",
		types.Hours:        "hour",
		types.Days:         "day",
		types.Weeks:        "week",
		types.Months:       "month",
		types.Years:        "year",
	}
)

func (ctx *renderContext) dateMath(o types.DatePlusDuration) (string, error) {
	d := ctx.dialect()
	out, err := ctx.operation(o.Operand)
	if err != nil {
		return "", err
	}
	switch d.DateMath {
	case DateInterval:
		for _, dur := range o.Durations {
			out = fmt.Sprintf("(%s) + INTERVAL '%d %s'", out, dur.N, dur.Unit)
		}
		return out, nil
	case DateModifier:
		mods := make([]string, 0, len(o.Durations)+1)
		mods = append(mods, out)
		for _, dur := range o.Durations {
			mods = append(mods, "'"+sqliteModifier(dur)+"'")
		}
		return "datetime(" + strings.Join(mods, ", ") + ")", nil
	case DateAddInterval:
		for _, dur := range o.Durations {
			n := dur.N
			if dur.Unit == types.Milliseconds {
				n *= 1000
			}
			out = fmt.Sprintf("date_add(%s, INTERVAL %d %s)", out, n, mysqlUnits[dur.Unit])
		}
		return out, nil
	case DateAddFunction:
		for _, dur := range o.Durations {
			out = fmt.Sprintf("DATEADD(%s, %d, %s)", dateaddUnits[dur.Unit], dur.N, out)
		}
		return out, nil
	default:
		return "", unhandled(d.Name, "date arithmetic style")
	}
}

// sqliteModifier converts a duration into a datetime() modifier. SQLite has
// no week or millisecond modifier, so those are scaled.
func sqliteModifier(dur types.Duration) string {
	switch dur.Unit {
	case types.Weeks:
		return fmt.Sprintf("%+d days", dur.N*7)
	case types.Milliseconds:
		sign := "+"
		if dur.N < 0 {
			sign = ""
		}
		return sign + strconv.FormatFloat(float64(dur.N)/1000, 'f', 3, 64) + " seconds"
	default:
		return fmt.Sprintf("%+d %s", dur.N, dur.Unit)
	}
}

func (ctx *renderContext) condition(cond types.Condition) (string, error) {
	d := ctx.dialect()
	switch c := cond.(type) {
	case types.And:
		return ctx.junction(c.Conditions, " AND ")
	case types.Or:
		return ctx.junction(c.Conditions, " OR ")
	case types.Not:
		inner, err := ctx.condition(c.Condition)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case types.Compare:
		left, err := ctx.operation(c.Left)
		if err != nil {
			return "", err
		}
		right, err := ctx.operation(c.Right)
		if err != nil {
			return "", err
		}
		return left + " " + c.Op.Symbol() + " " + right, nil
	case types.Like:
		inner, err := ctx.operation(c.Operand)
		if err != nil {
			return "", err
		}
		op := " LIKE "
		if c.Negated {
			op = " NOT LIKE "
		}
		return inner + op + quoteString(c.Pattern), nil
	case types.In:
		inner, err := ctx.operation(c.Operand)
		if err != nil {
			return "", err
		}
		vals := make([]string, len(c.Values))
		for i, v := range c.Values {
			if vals[i], err = ctx.literal(v); err != nil {
				return "", err
			}
		}
		op := " IN ("
		if c.Negated {
			op = " NOT IN ("
		}
		return inner + op + strings.Join(vals, ", ") + ")", nil
	case types.IsNull:
		inner, err := ctx.operation(c.Operand)
		if err != nil {
			return "", err
		}
		if c.Negated {
			return inner + " IS NOT NULL", nil
		}
		return inner + " IS NULL", nil
	case types.BooleanColumnOrValue:
		inner, err := ctx.operation(c.Operand)
		if err != nil {
			return "", err
		}
		return inner + d.BoolPredicate, nil
	default:
		return "", unhandled(d.Name, fmt.Sprintf("condition %T", cond))
	}
}

func (ctx *renderContext) junction(conds []types.Condition, sep string) (string, error) {
	parts := make([]string, len(conds))
	for i, c := range conds {
		s, err := ctx.condition(c)
		if err != nil {
			return "", err
		}
		parts[i] = "(" + s + ")"
	}
	return strings.Join(parts, sep), nil
}
