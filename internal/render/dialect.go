package render

import (
	"maps"

	"github.com/zoobzio/sqlgen/internal/types"
)

// PlaceholderStyle selects how bind parameters are written.
type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota // ?
	PlaceholderDollar                           // $1, $2, ...
	PlaceholderAtP                              // @p1, @p2, ...
)

// ConcatStyle selects how string concatenation is written.
type ConcatStyle int

const (
	ConcatOperator ConcatStyle = iota // (a) || (b)
	ConcatFunction                    // concat(a, b)
)

// DateArithmeticStyle selects how a date is shifted by durations.
type DateArithmeticStyle int

const (
	DateInterval    DateArithmeticStyle = iota // (x) + INTERVAL '2 days'
	DateModifier                               // datetime(x, '+2 days')
	DateAddInterval                            // date_add(x, INTERVAL 2 DAY)
	DateAddFunction                            // DATEADD(day, 2, x)
)

// UpsertStyle selects how conflict policies are written.
type UpsertStyle int

const (
	UpsertNone       UpsertStyle = iota
	UpsertOnConflict             // ON CONFLICT (k) DO UPDATE SET a=excluded.a
	UpsertDuplicate              // ON DUPLICATE KEY UPDATE a=VALUES(a)
)

// AutoIncrementStyle selects how an auto-incrementing primary key is declared.
type AutoIncrementStyle int

const (
	AutoIncrementIdentity     AutoIncrementStyle = iota // GENERATED BY DEFAULT AS IDENTITY
	AutoIncrementRowid                                  // INTEGER PRIMARY KEY AUTOINCREMENT
	AutoIncrementKeyword                                // AUTO_INCREMENT
	AutoIncrementIdentityFunc                           // IDENTITY(1,1)
	AutoIncrementSequence                               // DEFAULT nextval('seq_T_c')
)

// PaginationStyle selects how LIMIT and OFFSET are written.
type PaginationStyle int

const (
	PaginationLimitOffset PaginationStyle = iota // LIMIT n OFFSET m
	PaginationOffsetFetch                        // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// CreateGuardStyle selects how CREATE TABLE IF NOT EXISTS is written.
type CreateGuardStyle int

const (
	CreateGuardInline   CreateGuardStyle = iota // CREATE TABLE IF NOT EXISTS
	CreateGuardObjectID                         // IF OBJECT_ID(N'T', N'U') IS NULL CREATE TABLE
)

// WriteStyle selects the statement rendered for a bulk-load channel.
type WriteStyle int

const (
	WriteInsert WriteStyle = iota // prepared INSERT template
	WriteCopy                     // COPY ... FROM STDIN
)

// Dialect is the lookup table a Renderer consults. Templates use {x} for
// the operand, {from} and {to} for the two sides of DaysBetween.
type Dialect struct {
	Name       string
	QuoteOpen  string
	QuoteClose string

	Placeholder PlaceholderStyle

	// Types maps every concrete kind to its column type. The VarChar entry
	// is a format string taking the length.
	Types map[types.TypeKind]string
	// CastTypes overrides Types inside CAST.
	CastTypes map[types.TypeKind]string

	True  string
	False string
	// BoolPredicate is appended when a boolean column or value is used as a
	// predicate.
	BoolPredicate string

	Unary       map[types.UnaryFunc]string
	Extract     map[types.DatePart]string
	DaysBetween string
	Unixepoch   string
	Concat      ConcatStyle
	DateMath    DateArithmeticStyle

	Upsert             UpsertStyle
	AutoIncrement      AutoIncrementStyle
	Pagination         PaginationStyle
	OffsetWithoutLimit string
	CreateGuard        CreateGuardStyle
	Write              WriteStyle
	// DefaultSchema qualifies bulk-load targets that carry no schema.
	DefaultSchema string

	// LastInsertID is the single-row fallback for dialects without
	// RETURNING. {table}, {column} and {sequence} expand to string literals
	// holding the quoted table, the column name and the key's sequence.
	LastInsertID string

	Capabilities Capabilities
}

// clone copies d with its lookup maps, so a renderer never observes later
// changes to the table it was built from.
func (d *Dialect) clone() *Dialect {
	c := *d
	c.Types = maps.Clone(d.Types)
	c.CastTypes = maps.Clone(d.CastTypes)
	c.Unary = maps.Clone(d.Unary)
	c.Extract = maps.Clone(d.Extract)
	return &c
}
