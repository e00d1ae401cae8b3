package sqlgen

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// Catalog resolves table and column references against a DBML schema so a
// typo fails at construction instead of at the database.
type Catalog struct {
	project *dbml.Project
	tables  map[string]map[string]bool // table -> column set
}

// NewCatalog indexes project.
func NewCatalog(project *dbml.Project) (*Catalog, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}
	c := &Catalog{
		project: project,
		tables:  make(map[string]map[string]bool),
	}
	for _, table := range project.Tables {
		cols := make(map[string]bool)
		for _, col := range table.Columns {
			cols[col.Name] = true
		}
		c.tables[table.Name] = cols
	}
	return c, nil
}

// Project returns the indexed schema.
func (c *Catalog) Project() *dbml.Project {
	return c.project
}

// TryT creates a table reference, returning an error if the table is not
// in the schema.
func (c *Catalog) TryT(name string, alias ...string) (Table, error) {
	if _, ok := c.tables[name]; !ok {
		return Table{}, fmt.Errorf("invalid table: table '%s' not found in schema", name)
	}
	return TryT(name, alias...)
}

// T creates a table reference or panics.
func (c *Catalog) T(name string, alias ...string) Table {
	t, err := c.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryC references column name of t, returning an error if t has no such
// column.
func (c *Catalog) TryC(t Table, name string) (Column, error) {
	cols, ok := c.tables[t.Name]
	if !ok {
		return Column{}, fmt.Errorf("invalid column: table '%s' not found in schema", t.Name)
	}
	if !cols[name] {
		return Column{}, fmt.Errorf("invalid column: '%s' not found in table '%s'", name, t.Name)
	}
	return C(t, name), nil
}

// C references a column or panics.
func (c *Catalog) C(t Table, name string) Column {
	col, err := c.TryC(t, name)
	if err != nil {
		panic(err)
	}
	return col
}
