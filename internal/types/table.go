package types

// Source is anything a SELECT can read from or join against: a Table or a
// Subquery.
type Source interface {
	isSource()
}

// Table identifies a relation. Alias is required when a statement references
// the same relation more than once (self-join).
type Table struct {
	Name   string
	Schema string
	Alias  string
}

// Subquery is a nested SELECT or UNION used as a FROM or JOIN source.
type Subquery struct {
	Query Query
	Alias string
}

func (Table) isSource()    {}
func (Subquery) isSource() {}

// Ref returns the name a source is referred to by within a statement: its
// alias when set, otherwise its qualified name.
func (t Table) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}
