package types

import "fmt"

// Statement is the root of one SQL operation.
type Statement interface {
	isStatement()
}

// Query is a statement that produces rows and may be nested as a source.
type Query interface {
	Statement
	isQuery()
}

// Field is one projected expression of a SELECT.
type Field struct {
	Operation Operation
	Alias     string
}

// OrderBy is one ORDER BY item.
type OrderBy struct {
	Operation Operation
	Desc      bool
}

// JoinKind selects the join flavour.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	joinKindEnd
)

var joinKindNames = [...]string{
	InnerJoin: "INNER JOIN",
	LeftJoin:  "LEFT JOIN",
	RightJoin: "RIGHT JOIN",
	FullJoin:  "FULL JOIN",
}

func (k JoinKind) String() string {
	if k < 0 || k >= joinKindEnd {
		return fmt.Sprintf("JoinKind(%d)", int(k))
	}
	return joinKindNames[k]
}

// Join attaches a table or nested query to a SELECT.
type Join struct {
	How    JoinKind
	Source Source
	On     Condition
}

// SelectFrom is a single SELECT. A nil Limit or Offset is omitted.
type SelectFrom struct {
	From     Source
	Joins    []Join
	Fields   []Field
	Where    Condition
	GroupBy  []Column
	OrderBy  []OrderBy
	Limit    *int
	Offset   *int
	Distinct bool
}

// Union combines branches positionally. Field names come from the first
// branch.
type Union struct {
	Branches []SelectFrom
	All      bool
}

// ConflictPolicy decides what an INSERT does on a key violation.
type ConflictPolicy int

const (
	ConflictNone ConflictPolicy = iota
	ConflictIgnore
	ConflictReplace
	conflictPolicyEnd
)

var conflictPolicyNames = [...]string{
	ConflictNone:    "none",
	ConflictIgnore:  "ignore",
	ConflictReplace: "replace",
}

func (p ConflictPolicy) String() string {
	if p < 0 || p >= conflictPolicyEnd {
		return fmt.Sprintf("ConflictPolicy(%d)", int(p))
	}
	return conflictPolicyNames[p]
}

// Insert is a parameterised INSERT of one row. NonPrimaryKeys are the
// columns overwritten by a replace; Constraints are the conflict target.
type Insert struct {
	Table             Table
	Columns           []Column
	Conflict          ConflictPolicy
	NonPrimaryKeys    []string
	Constraints       []string
	Returning         []Column
	ExplicitReturning bool
}

// Write opens a bulk-load channel into Table.
type Write struct {
	Table   Table
	Columns []Column
}

// Set is one assignment of an UPDATE.
type Set struct {
	Column Column
	Value  Operation
}

// Update modifies rows matching Where, or every row when Where is nil.
type Update struct {
	Table Table
	Sets  []Set
	Where Condition
}

// DeleteFrom removes rows matching Where, or every row when Where is nil.
type DeleteFrom struct {
	Table Table
	Where Condition
}

// CreateTable declares a table from its columns.
type CreateTable struct {
	Table       Table
	Columns     []Column
	IfNotExists bool
}

// CreateIndex declares an index. Where makes it a partial index.
type CreateIndex struct {
	Name        string
	Table       Table
	Columns     []string
	Unique      bool
	IfNotExists bool
	Where       Condition
}

// ObjectKind is the kind of relation created by CreateAs or removed by Drop.
type ObjectKind int

const (
	ObjectTable ObjectKind = iota
	ObjectView
	ObjectMaterializedView
	ObjectIndex
	objectKindEnd
)

var objectKindNames = [...]string{
	ObjectTable:            "TABLE",
	ObjectView:             "VIEW",
	ObjectMaterializedView: "MATERIALIZED VIEW",
	ObjectIndex:            "INDEX",
}

func (k ObjectKind) String() string {
	if k < 0 || k >= objectKindEnd {
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
	return objectKindNames[k]
}

// CreateAs materialises a query as a table, view or materialized view.
type CreateAs struct {
	Kind        ObjectKind
	Table       Table
	Query       Query
	OrReplace   bool
	IfNotExists bool
}

// Drop removes a relation or index.
type Drop struct {
	What     ObjectKind
	IfExists bool
	Cascade  bool
	Table    Table
}

func (CreateTable) isStatement() {}
func (CreateIndex) isStatement() {}
func (CreateAs) isStatement()    {}
func (Drop) isStatement()        {}
func (Insert) isStatement()      {}
func (Write) isStatement()       {}
func (SelectFrom) isStatement()  {}
func (Update) isStatement()      {}
func (DeleteFrom) isStatement()  {}
func (Union) isStatement()       {}

func (SelectFrom) isQuery() {}
func (Union) isQuery()      {}
