package types

import "fmt"

// Operation is a node of an expression tree. Every node owns its children;
// a chain such as a - b - c is nested left to right as
// Minus(Minus(a, b), c), so evaluation order is fixed by the tree itself.
type Operation interface {
	isOperation()
}

// Literal wraps a Value as an expression.
type Literal struct {
	Value Value
}

// AggregationKind is the aggregate function applied by an Aggregation.
type AggregationKind int

const (
	Avg AggregationKind = iota
	Count
	Max
	Min
	Sum
	aggregationKindEnd
)

var aggregationKindNames = [...]string{
	Avg:   "AVG",
	Count: "COUNT",
	Max:   "MAX",
	Min:   "MIN",
	Sum:   "SUM",
}

func (k AggregationKind) String() string {
	if k < 0 || k >= aggregationKindEnd {
		return fmt.Sprintf("AggregationKind(%d)", int(k))
	}
	return aggregationKindNames[k]
}

// Aggregation applies an aggregate function. Only Count accepts a nil
// Operand, meaning COUNT(*).
type Aggregation struct {
	Kind     AggregationKind
	Operand  Operation
	Distinct bool
	Alias    string
}

// UnaryFunc is a single-argument scalar function.
type UnaryFunc int

const (
	Abs UnaryFunc = iota
	Ceil
	Floor
	Sqrt
	Exp
	Ln
	Log2
	Lower
	Upper
	Length
	LTrim
	RTrim
	Trim
	unaryFuncEnd
)

var unaryFuncNames = [...]string{
	Abs:    "abs",
	Ceil:   "ceil",
	Floor:  "floor",
	Sqrt:   "sqrt",
	Exp:    "exp",
	Ln:     "ln",
	Log2:   "log2",
	Lower:  "lower",
	Upper:  "upper",
	Length: "length",
	LTrim:  "ltrim",
	RTrim:  "rtrim",
	Trim:   "trim",
}

func (f UnaryFunc) String() string {
	if f < 0 || f >= unaryFuncEnd {
		return fmt.Sprintf("UnaryFunc(%d)", int(f))
	}
	return unaryFuncNames[f]
}

// Unary applies a UnaryFunc to its operand.
type Unary struct {
	Func    UnaryFunc
	Operand Operation
}

// BinaryOp is an arithmetic operator.
type BinaryOp int

const (
	Plus BinaryOp = iota
	Minus
	Multiplies
	Divides
	Mod
	binaryOpEnd
)

var binaryOpSymbols = [...]string{
	Plus:       "+",
	Minus:      "-",
	Multiplies: "*",
	Divides:    "/",
	Mod:        "%",
}

// Symbol returns the infix operator for op.
func (op BinaryOp) Symbol() string {
	if op < 0 || op >= binaryOpEnd {
		return ""
	}
	return binaryOpSymbols[op]
}

func (op BinaryOp) String() string {
	if s := op.Symbol(); s != "" {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Binary applies an arithmetic operator to exactly two children.
type Binary struct {
	Op    BinaryOp
	Left  Operation
	Right Operation
}

// Concat joins the string value of every operand.
type Concat struct {
	Operands []Operation
}

// Cast converts its operand to Target.
type Cast struct {
	Operand Operation
	Target  Type
}

// Round rounds its operand to Digits decimal places.
type Round struct {
	Operand Operation
	Digits  int
}

// DatePart is a component extracted from a date or timestamp.
type DatePart int

const (
	Year DatePart = iota
	Month
	Day
	Hour
	Minute
	Second
	Weekday
	datePartEnd
)

var datePartNames = [...]string{
	Year:    "YEAR",
	Month:   "MONTH",
	Day:     "DAY",
	Hour:    "HOUR",
	Minute:  "MINUTE",
	Second:  "SECOND",
	Weekday: "WEEKDAY",
}

func (p DatePart) String() string {
	if p < 0 || p >= datePartEnd {
		return fmt.Sprintf("DatePart(%d)", int(p))
	}
	return datePartNames[p]
}

// Extract pulls one DatePart out of a date or timestamp. Weekday counts from
// Sunday = 0.
type Extract struct {
	Part    DatePart
	Operand Operation
}

// Coalesce returns the first non-null operand.
type Coalesce struct {
	Operands []Operation
}

// Replace substitutes every occurrence of From with To.
type Replace struct {
	Operand Operation
	From    string
	To      string
}

// DatePlusDuration shifts a date or timestamp by each duration in order.
type DatePlusDuration struct {
	Operand   Operation
	Durations []Duration
}

// DaysBetween counts the days from From to To.
type DaysBetween struct {
	From Operation
	To   Operation
}

// Unixepoch converts a timestamp to seconds since 1970-01-01 UTC.
type Unixepoch struct {
	Operand Operation
}

func (Column) isOperation()           {}
func (Literal) isOperation()          {}
func (Aggregation) isOperation()      {}
func (Unary) isOperation()            {}
func (Binary) isOperation()           {}
func (Concat) isOperation()           {}
func (Cast) isOperation()             {}
func (Round) isOperation()            {}
func (Extract) isOperation()          {}
func (Coalesce) isOperation()         {}
func (Replace) isOperation()          {}
func (DatePlusDuration) isOperation() {}
func (DaysBetween) isOperation()      {}
func (Unixepoch) isOperation()        {}
