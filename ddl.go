package sqlgen

// CreateTableOf creates t with cols.
func CreateTableOf(t Table, cols ...Column) CreateTable {
	return CreateTable{Table: t, Columns: cols}
}

// CreateTableIfNotExists creates t unless it already exists.
func CreateTableIfNotExists(t Table, cols ...Column) CreateTable {
	return CreateTable{Table: t, Columns: cols, IfNotExists: true}
}

// CreateIndexOn creates index name on the given columns of t.
func CreateIndexOn(name string, t Table, cols ...string) CreateIndex {
	return CreateIndex{Name: name, Table: t, Columns: cols}
}

// CreateUniqueIndexOn creates a unique index.
func CreateUniqueIndexOn(name string, t Table, cols ...string) CreateIndex {
	return CreateIndex{Name: name, Table: t, Columns: cols, Unique: true}
}

// CreateAsSelect creates a table, view or materialized view from q.
func CreateAsSelect(kind ObjectKind, t Table, q Query) CreateAs {
	return CreateAs{Kind: kind, Table: t, Query: q}
}

// DropTable drops t if it exists.
func DropTable(t Table) Drop {
	return Drop{What: ObjectTable, IfExists: true, Table: t}
}

// DropObject drops an object of the given kind.
func DropObject(kind ObjectKind, t Table, ifExists, cascade bool) Drop {
	return Drop{What: kind, IfExists: ifExists, Cascade: cascade, Table: t}
}
