package types

import "fmt"

// Value is the literal leaf of an expression tree.
type Value interface {
	isValue()
}

// Integer is a 64-bit integer literal.
type Integer int64

// Float is a 64-bit floating point literal.
type Float float64

// String is a text literal. It is escaped when rendered.
type String string

// Bool is a boolean literal.
type Bool bool

// DurationUnit is the unit of a Duration literal.
type DurationUnit int

const (
	Milliseconds DurationUnit = iota
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
	durationUnitEnd
)

var durationUnitNames = [...]string{
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
	Weeks:        "weeks",
	Months:       "months",
	Years:        "years",
}

func (u DurationUnit) String() string {
	if u < 0 || u >= durationUnitEnd {
		return fmt.Sprintf("DurationUnit(%d)", int(u))
	}
	return durationUnitNames[u]
}

// Duration is an interval literal such as "3 days".
type Duration struct {
	Unit DurationUnit
	N    int64
}

func (Integer) isValue()  {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Bool) isValue()     {}
func (Duration) isValue() {}
