package sqlgen

import (
	"github.com/zoobzio/sqlgen/internal/types"
)

func compare(op types.CompareOp, left, right Operation) Condition {
	return types.Compare{Op: op, Left: left, Right: right}
}

// Equal creates left = right.
func Equal(left, right Operation) Condition { return compare(types.Equal, left, right) }

// NotEqual creates left != right.
func NotEqual(left, right Operation) Condition { return compare(types.NotEqual, left, right) }

// GreaterThan creates left > right.
func GreaterThan(left, right Operation) Condition { return compare(types.GreaterThan, left, right) }

// GreaterEqual creates left >= right.
func GreaterEqual(left, right Operation) Condition {
	return compare(types.GreaterEqual, left, right)
}

// LesserThan creates left < right.
func LesserThan(left, right Operation) Condition { return compare(types.LesserThan, left, right) }

// LesserEqual creates left <= right.
func LesserEqual(left, right Operation) Condition { return compare(types.LesserEqual, left, right) }

// Like matches op against a LIKE pattern.
func Like(op Operation, pattern string) Condition { return types.Like{Operand: op, Pattern: pattern} }

// NotLike negates Like.
func NotLike(op Operation, pattern string) Condition {
	return types.Like{Operand: op, Pattern: pattern, Negated: true}
}

// In tests op against a list of literal values.
func In(op Operation, values ...Value) Condition { return types.In{Operand: op, Values: values} }

// InInts tests op against integer values.
func InInts(op Operation, vals ...int64) Condition {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = types.Integer(v)
	}
	return types.In{Operand: op, Values: values}
}

// InStrings tests op against string values.
func InStrings(op Operation, vals ...string) Condition {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = types.String(v)
	}
	return types.In{Operand: op, Values: values}
}

// NotIn negates In.
func NotIn(op Operation, values ...Value) Condition {
	return types.In{Operand: op, Values: values, Negated: true}
}

// IsNull creates op IS NULL.
func IsNull(op Operation) Condition { return types.IsNull{Operand: op} }

// IsNotNull creates op IS NOT NULL.
func IsNotNull(op Operation) Condition { return types.IsNull{Operand: op, Negated: true} }

// IsTrue uses a boolean column or value directly as a condition.
func IsTrue(op Operation) Condition { return types.BooleanColumnOrValue{Operand: op} }

// And combines conditions; a single condition is returned unchanged.
func And(conditions ...Condition) Condition {
	if len(conditions) == 1 {
		return conditions[0]
	}
	return types.And{Conditions: conditions}
}

// Or combines conditions; a single condition is returned unchanged.
func Or(conditions ...Condition) Condition {
	if len(conditions) == 1 {
		return conditions[0]
	}
	return types.Or{Conditions: conditions}
}

// Not negates c.
func Not(c Condition) Condition { return types.Not{Condition: c} }
