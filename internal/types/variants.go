package types

// The sample trees below enumerate every variant and every enum member of
// the statement model. Renderers walk them at startup so that a missing case
// surfaces immediately instead of on the first query that needs it.

var (
	sampleTable  = Table{Name: "t", Alias: "t1"}
	sampleInt    = Column{Name: "n", Table: "t1", Type: Type{Kind: Int64}}
	sampleText   = Column{Name: "s", Table: "t1", Type: Type{Kind: Text}}
	sampleTime   = Column{Name: "ts", Table: "t1", Type: Type{Kind: Timestamp}}
	sampleBool   = Column{Name: "b", Table: "t1", Type: Type{Kind: Boolean}}
	samplePKey   = Column{Name: "id", Type: Type{Kind: Int64}, Properties: Properties{Primary: true, AutoIncr: true}}
	sampleValues = []Value{Integer(1), Float(1.5), String("x"), Bool(true), Duration{Unit: Days, N: 1}}
)

// OperationVariants returns one sample per Operation variant and enum member.
func OperationVariants() []Operation {
	ops := []Operation{
		sampleInt,
		Concat{Operands: []Operation{sampleText, Literal{Value: String("-")}}},
		Round{Operand: sampleInt, Digits: 2},
		Coalesce{Operands: []Operation{sampleText, Literal{Value: String("")}}},
		Replace{Operand: sampleText, From: "a", To: "b"},
		DaysBetween{From: sampleTime, To: sampleTime},
		Unixepoch{Operand: sampleTime},
		Aggregation{Kind: Count},
	}
	for _, v := range sampleValues {
		ops = append(ops, Literal{Value: v})
	}
	for k := AggregationKind(0); k < aggregationKindEnd; k++ {
		ops = append(ops, Aggregation{Kind: k, Operand: sampleInt}, Aggregation{Kind: k, Operand: sampleInt, Distinct: true})
	}
	for f := UnaryFunc(0); f < unaryFuncEnd; f++ {
		ops = append(ops, Unary{Func: f, Operand: sampleInt})
	}
	for op := BinaryOp(0); op < binaryOpEnd; op++ {
		ops = append(ops, Binary{Op: op, Left: sampleInt, Right: Literal{Value: Integer(1)}})
	}
	for _, k := range TypeKinds() {
		ops = append(ops, Cast{Operand: sampleInt, Target: Type{Kind: k, Length: 8}})
	}
	for p := DatePart(0); p < datePartEnd; p++ {
		ops = append(ops, Extract{Part: p, Operand: sampleTime})
	}
	for u := DurationUnit(0); u < durationUnitEnd; u++ {
		ops = append(ops, DatePlusDuration{Operand: sampleTime, Durations: []Duration{{Unit: u, N: 2}}})
	}
	return ops
}

// ConditionVariants returns one sample per Condition variant and operator.
func ConditionVariants() []Condition {
	leaf := Compare{Op: Equal, Left: sampleInt, Right: Literal{Value: Integer(1)}}
	conds := []Condition{
		And{Conditions: []Condition{leaf, leaf}},
		Or{Conditions: []Condition{leaf, leaf}},
		Not{Condition: leaf},
		Like{Operand: sampleText, Pattern: "a%"},
		Like{Operand: sampleText, Pattern: "a%", Negated: true},
		In{Operand: sampleInt, Values: []Value{Integer(1), Integer(2)}},
		In{Operand: sampleInt, Values: []Value{Integer(1)}, Negated: true},
		IsNull{Operand: sampleText},
		IsNull{Operand: sampleText, Negated: true},
		BooleanColumnOrValue{Operand: sampleBool},
		BooleanColumnOrValue{Operand: Literal{Value: Bool(false)}},
	}
	for op := CompareOp(0); op < compareOpEnd; op++ {
		conds = append(conds, Compare{Op: op, Left: sampleInt, Right: Literal{Value: Integer(1)}})
	}
	return conds
}

// StatementVariants returns one sample per Statement variant. Dialects that
// lack a feature reject some samples with an unsupported-feature error; only
// an unhandled variant counts as a gap.
func StatementVariants() []Statement {
	limit, offset := 10, 5
	sel := SelectFrom{
		From:    sampleTable,
		Fields:  []Field{{Operation: sampleInt, Alias: "n"}},
		Where:   Compare{Op: GreaterThan, Left: sampleInt, Right: Literal{Value: Integer(0)}},
		OrderBy: []OrderBy{{Operation: sampleInt, Desc: true}},
		Limit:   &limit,
		Offset:  &offset,
	}
	grouped := SelectFrom{
		From:    sampleTable,
		Fields:  []Field{{Operation: sampleText}, {Operation: Aggregation{Kind: Count}, Alias: "c"}},
		GroupBy: []Column{sampleText},
	}
	stmts := []Statement{
		sel,
		grouped,
		Union{Branches: []SelectFrom{sel, sel}},
		Union{Branches: []SelectFrom{sel, sel}, All: true},
		SelectFrom{From: Subquery{Query: sel, Alias: "q"}, Fields: []Field{{Operation: Column{Name: "n", Table: "q"}}}},
		CreateTable{Table: Table{Name: "t"}, Columns: []Column{samplePKey, sampleText.Qualified("")}, IfNotExists: true},
		CreateTable{Table: Table{Name: "t"}, Columns: []Column{sampleText.Qualified("")}},
		CreateIndex{Name: "i", Table: Table{Name: "t"}, Columns: []string{"s"}, Unique: true, IfNotExists: true},
		Insert{Table: Table{Name: "t"}, Columns: []Column{samplePKey, sampleText.Qualified("")}, Returning: []Column{samplePKey}},
		Write{Table: Table{Name: "t"}, Columns: []Column{sampleText.Qualified("")}},
		Update{Table: Table{Name: "t"}, Sets: []Set{{Column: sampleText.Qualified(""), Value: Literal{Value: String("x")}}}},
		DeleteFrom{Table: Table{Name: "t"}},
	}
	for p := ConflictPolicy(0); p < conflictPolicyEnd; p++ {
		stmts = append(stmts, Insert{
			Table:          Table{Name: "t"},
			Columns:        []Column{samplePKey, sampleText.Qualified("")},
			Conflict:       p,
			NonPrimaryKeys: []string{"s"},
			Constraints:    []string{"id"},
		})
	}
	for k := JoinKind(0); k < joinKindEnd; k++ {
		stmts = append(stmts, SelectFrom{
			From:   sampleTable,
			Joins:  []Join{{How: k, Source: Table{Name: "u", Alias: "t2"}, On: Compare{Op: Equal, Left: sampleInt, Right: Column{Name: "n", Table: "t2"}}}},
			Fields: []Field{{Operation: sampleInt}},
		})
	}
	for k := ObjectKind(0); k < objectKindEnd; k++ {
		if k != ObjectIndex {
			stmts = append(stmts, CreateAs{Kind: k, Table: Table{Name: "v"}, Query: sel})
		}
		stmts = append(stmts, Drop{What: k, IfExists: true, Cascade: true, Table: Table{Name: "v"}})
	}
	for _, op := range OperationVariants() {
		stmts = append(stmts, SelectFrom{From: sampleTable, Fields: []Field{{Operation: op}}})
	}
	for _, c := range ConditionVariants() {
		stmts = append(stmts, SelectFrom{From: sampleTable, Fields: []Field{{Operation: sampleInt}}, Where: c})
	}
	return stmts
}
