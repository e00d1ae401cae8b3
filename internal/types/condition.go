package types

import "fmt"

// Condition is a node of a predicate tree.
type Condition interface {
	isCondition()
}

// And holds when every child holds.
type And struct {
	Conditions []Condition
}

// Or holds when any child holds.
type Or struct {
	Conditions []Condition
}

// Not negates its child.
type Not struct {
	Condition Condition
}

// CompareOp is a comparison operator.
type CompareOp int

const (
	Equal CompareOp = iota
	NotEqual
	GreaterThan
	GreaterEqual
	LesserThan
	LesserEqual
	compareOpEnd
)

var compareOpSymbols = [...]string{
	Equal:        "=",
	NotEqual:     "!=",
	GreaterThan:  ">",
	GreaterEqual: ">=",
	LesserThan:   "<",
	LesserEqual:  "<=",
}

// Symbol returns the SQL operator for op.
func (op CompareOp) Symbol() string {
	if op < 0 || op >= compareOpEnd {
		return ""
	}
	return compareOpSymbols[op]
}

func (op CompareOp) String() string {
	if s := op.Symbol(); s != "" {
		return s
	}
	return fmt.Sprintf("CompareOp(%d)", int(op))
}

// Compare relates two operations.
type Compare struct {
	Op    CompareOp
	Left  Operation
	Right Operation
}

// Like matches Operand against a LIKE pattern; Negated renders NOT LIKE.
type Like struct {
	Operand Operation
	Pattern string
	Negated bool
}

// In tests membership in a literal list; Negated renders NOT IN.
type In struct {
	Operand Operation
	Values  []Value
	Negated bool
}

// IsNull tests for NULL; Negated renders IS NOT NULL.
type IsNull struct {
	Operand Operation
	Negated bool
}

// BooleanColumnOrValue uses a boolean column or literal directly as a
// predicate.
type BooleanColumnOrValue struct {
	Operand Operation
}

func (And) isCondition()                  {}
func (Or) isCondition()                   {}
func (Not) isCondition()                  {}
func (Compare) isCondition()              {}
func (Like) isCondition()                 {}
func (In) isCondition()                   {}
func (IsNull) isCondition()               {}
func (BooleanColumnOrValue) isCondition() {}
