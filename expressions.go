package sqlgen

import (
	"github.com/zoobzio/sqlgen/internal/types"
)

// Literal constructors. Strings are escaped at render time.

// Int is an integer literal.
func Int(v int64) Operation { return types.Literal{Value: types.Integer(v)} }

// Float is a floating point literal.
func Float(v float64) Operation { return types.Literal{Value: types.Float(v)} }

// Str is a string literal.
func Str(v string) Operation { return types.Literal{Value: types.String(v)} }

// Bool is a boolean literal.
func Bool(v bool) Operation { return types.Literal{Value: types.Bool(v)} }

// Dur is a duration value, used with DatePlus or as an interval literal.
func Dur(n int64, unit DurationUnit) types.Duration {
	return types.Duration{Unit: unit, N: n}
}

// Lit wraps any value as a literal operation.
func Lit(v Value) Operation { return types.Literal{Value: v} }

// Aggregate functions.

// Avg creates an AVG aggregation.
func Avg(op Operation) types.Aggregation { return types.Aggregation{Kind: types.Avg, Operand: op} }

// Count creates a COUNT aggregation of op.
func Count(op Operation) types.Aggregation { return types.Aggregation{Kind: types.Count, Operand: op} }

// CountAll creates COUNT(*).
func CountAll() types.Aggregation { return types.Aggregation{Kind: types.Count} }

// CountDistinct creates COUNT(DISTINCT op).
func CountDistinct(op Operation) types.Aggregation {
	return types.Aggregation{Kind: types.Count, Operand: op, Distinct: true}
}

// Max creates a MAX aggregation.
func Max(op Operation) types.Aggregation { return types.Aggregation{Kind: types.Max, Operand: op} }

// Min creates a MIN aggregation.
func Min(op Operation) types.Aggregation { return types.Aggregation{Kind: types.Min, Operand: op} }

// Sum creates a SUM aggregation.
func Sum(op Operation) types.Aggregation { return types.Aggregation{Kind: types.Sum, Operand: op} }

func unary(f types.UnaryFunc, op Operation) Operation {
	return types.Unary{Func: f, Operand: op}
}

// Abs and the functions below apply a scalar function to op.
func Abs(op Operation) Operation    { return unary(types.Abs, op) }
func Ceil(op Operation) Operation   { return unary(types.Ceil, op) }
func Floor(op Operation) Operation  { return unary(types.Floor, op) }
func Sqrt(op Operation) Operation   { return unary(types.Sqrt, op) }
func Exp(op Operation) Operation    { return unary(types.Exp, op) }
func Ln(op Operation) Operation     { return unary(types.Ln, op) }
func Log2(op Operation) Operation   { return unary(types.Log2, op) }
func Lower(op Operation) Operation  { return unary(types.Lower, op) }
func Upper(op Operation) Operation  { return unary(types.Upper, op) }
func Length(op Operation) Operation { return unary(types.Length, op) }
func LTrim(op Operation) Operation  { return unary(types.LTrim, op) }
func RTrim(op Operation) Operation  { return unary(types.RTrim, op) }
func Trim(op Operation) Operation   { return unary(types.Trim, op) }

// chain nests operands left to right: chain(op, a, b, c) is op(op(a, b), c).
func chain(op types.BinaryOp, a, b Operation, more []Operation) Operation {
	out := types.Binary{Op: op, Left: a, Right: b}
	for _, m := range more {
		out = types.Binary{Op: op, Left: out, Right: m}
	}
	return out
}

// Plus adds operands left to right.
func Plus(a, b Operation, more ...Operation) Operation { return chain(types.Plus, a, b, more) }

// Minus subtracts operands left to right.
func Minus(a, b Operation, more ...Operation) Operation { return chain(types.Minus, a, b, more) }

// Multiplies multiplies operands left to right.
func Multiplies(a, b Operation, more ...Operation) Operation {
	return chain(types.Multiplies, a, b, more)
}

// Divides divides operands left to right.
func Divides(a, b Operation, more ...Operation) Operation { return chain(types.Divides, a, b, more) }

// Mod computes a modulo b.
func Mod(a, b Operation) Operation { return types.Binary{Op: types.Mod, Left: a, Right: b} }

// Concat joins string operands.
func Concat(ops ...Operation) Operation { return types.Concat{Operands: ops} }

// Coalesce returns the first non-NULL operand.
func Coalesce(ops ...Operation) Operation { return types.Coalesce{Operands: ops} }

// Cast converts op to kind.
func Cast(op Operation, kind TypeKind) Operation {
	return types.Cast{Operand: op, Target: Type{Kind: kind}}
}

// CastVarChar converts op to VARCHAR(n).
func CastVarChar(op Operation, n int) Operation {
	return types.Cast{Operand: op, Target: Type{Kind: types.VarChar, Length: n}}
}

// Round rounds op to digits decimal places.
func Round(op Operation, digits int) Operation { return types.Round{Operand: op, Digits: digits} }

// Extract reads one component of a date or timestamp.
func Extract(part DatePart, op Operation) Operation { return types.Extract{Part: part, Operand: op} }

// Replace substitutes every occurrence of from with to.
func Replace(op Operation, from, to string) Operation {
	return types.Replace{Operand: op, From: from, To: to}
}

// DatePlus shifts a date or timestamp by each duration in order.
func DatePlus(op Operation, durations ...types.Duration) Operation {
	return types.DatePlusDuration{Operand: op, Durations: durations}
}

// DaysBetween counts the days from one date to another.
func DaysBetween(from, to Operation) Operation { return types.DaysBetween{From: from, To: to} }

// Unixepoch converts a timestamp to seconds since 1970-01-01.
func Unixepoch(op Operation) Operation { return types.Unixepoch{Operand: op} }
