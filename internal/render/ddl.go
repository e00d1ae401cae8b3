package render

import (
	"strings"

	"github.com/zoobzio/sqlgen/internal/types"
)

func (ctx *renderContext) createTable(s types.CreateTable) (string, error) {
	d := ctx.dialect()
	r := ctx.r

	var prefix strings.Builder
	defs := make([]string, 0, len(s.Columns)+1)
	var primary []string
	rowid := false

	for _, c := range s.Columns {
		typ, err := ctx.columnType(c.Type)
		if err != nil {
			return "", err
		}
		def := r.quote(c.Name) + " " + typ
		autoIncr := c.Properties.Primary && c.Properties.AutoIncr
		if autoIncr {
			switch d.AutoIncrement {
			case AutoIncrementIdentity:
				def += " GENERATED BY DEFAULT AS IDENTITY"
			case AutoIncrementRowid:
				def = r.quote(c.Name) + " INTEGER PRIMARY KEY AUTOINCREMENT"
				rowid = true
			case AutoIncrementIdentityFunc:
				def += " IDENTITY(1,1)"
			case AutoIncrementSequence:
				seq := sequenceName(s.Table, c)
				prefix.WriteString("CREATE SEQUENCE IF NOT EXISTS " + r.quote(seq) + "; ")
				def += " DEFAULT nextval(" + quoteString(seq) + ")"
			}
		}
		if !c.Properties.Nullable {
			def += " NOT NULL"
		}
		if autoIncr && d.AutoIncrement == AutoIncrementKeyword {
			def += " AUTO_INCREMENT"
		}
		if c.Properties.Unique && !c.Properties.Primary {
			def += " UNIQUE"
		}
		defs = append(defs, def)
		if c.Properties.Primary && !(autoIncr && d.AutoIncrement == AutoIncrementRowid) {
			primary = append(primary, c.Name)
		}
	}
	if rowid && len(primary) > 0 {
		return "", ctx.unsupported("auto-increment column inside a composite primary key")
	}
	if len(primary) > 0 {
		defs = append(defs, "PRIMARY KEY ("+r.quoteAll(primary, ", ")+")")
	}

	var sql strings.Builder
	sql.WriteString(prefix.String())
	if s.IfNotExists {
		switch d.CreateGuard {
		case CreateGuardObjectID:
			name := s.Table.Name
			if s.Table.Schema != "" {
				name = s.Table.Schema + "." + name
			}
			sql.WriteString("IF OBJECT_ID(N" + quoteString(name) + ", N'U') IS NULL CREATE TABLE ")
		default:
			sql.WriteString("CREATE TABLE IF NOT EXISTS ")
		}
	} else {
		sql.WriteString("CREATE TABLE ")
	}
	sql.WriteString(r.tableName(s.Table))
	sql.WriteString(" (")
	sql.WriteString(strings.Join(defs, ", "))
	sql.WriteString(")")
	return sql.String(), nil
}

func (ctx *renderContext) createIndex(s types.CreateIndex) (string, error) {
	caps := ctx.dialect().Capabilities
	if s.IfNotExists && !caps.IndexIfNotExists {
		return "", ctx.unsupported("CREATE INDEX IF NOT EXISTS")
	}
	if s.Where != nil && !caps.PartialIndex {
		return "", ctx.unsupported("partial index")
	}

	var sql strings.Builder
	sql.WriteString("CREATE ")
	if s.Unique {
		sql.WriteString("UNIQUE ")
	}
	sql.WriteString("INDEX ")
	if s.IfNotExists {
		sql.WriteString("IF NOT EXISTS ")
	}
	sql.WriteString(ctx.r.quote(s.Name))
	sql.WriteString(" ON ")
	sql.WriteString(ctx.r.tableName(s.Table))
	sql.WriteString(" (")
	sql.WriteString(ctx.r.quoteAll(s.Columns, ", "))
	sql.WriteString(")")
	if s.Where != nil {
		ctx.unqualified = true
		where, err := ctx.condition(s.Where)
		if err != nil {
			return "", err
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	return sql.String(), nil
}

func (ctx *renderContext) createAs(s types.CreateAs) (string, error) {
	caps := ctx.dialect().Capabilities
	switch s.Kind {
	case types.ObjectTable:
		if !caps.CreateAsTable {
			return "", ctx.unsupported("CREATE TABLE AS", "use SELECT ... INTO")
		}
		if s.OrReplace && !caps.ReplaceTable {
			return "", ctx.unsupported("CREATE OR REPLACE TABLE", "drop the table first")
		}
	case types.ObjectView:
		if s.OrReplace && !caps.ReplaceView {
			return "", ctx.unsupported("CREATE OR REPLACE VIEW", "drop the view first")
		}
		if s.IfNotExists && !caps.ViewIfNotExists {
			return "", ctx.unsupported("CREATE VIEW IF NOT EXISTS")
		}
	case types.ObjectMaterializedView:
		if !caps.MaterializedViews {
			return "", ctx.unsupported("MATERIALIZED VIEW")
		}
		if s.OrReplace {
			return "", ctx.unsupported("CREATE OR REPLACE MATERIALIZED VIEW", "drop the view first")
		}
	default:
		return "", unhandled(ctx.dialect().Name, "create as "+s.Kind.String())
	}
	if s.OrReplace && s.IfNotExists {
		return "", ctx.unsupported("OR REPLACE combined with IF NOT EXISTS")
	}

	query, err := ctx.query(s.Query)
	if err != nil {
		return "", err
	}

	var sql strings.Builder
	sql.WriteString("CREATE ")
	if s.OrReplace {
		sql.WriteString("OR REPLACE ")
	}
	sql.WriteString(s.Kind.String())
	sql.WriteString(" ")
	if s.IfNotExists {
		sql.WriteString("IF NOT EXISTS ")
	}
	sql.WriteString(ctx.r.tableName(s.Table))
	sql.WriteString(" AS ")
	sql.WriteString(query)
	return sql.String(), nil
}

func (ctx *renderContext) drop(s types.Drop) (string, error) {
	caps := ctx.dialect().Capabilities
	switch s.What {
	case types.ObjectTable, types.ObjectView:
	case types.ObjectMaterializedView:
		if !caps.MaterializedViews {
			return "", ctx.unsupported("MATERIALIZED VIEW")
		}
	case types.ObjectIndex:
		if !caps.DropIndex {
			return "", ctx.unsupported("DROP INDEX without a table", "drop the table instead")
		}
	default:
		return "", unhandled(ctx.dialect().Name, "drop "+s.What.String())
	}
	if s.Cascade && !caps.DropCascade {
		return "", ctx.unsupported("DROP ... CASCADE")
	}

	var sql strings.Builder
	sql.WriteString("DROP ")
	sql.WriteString(s.What.String())
	sql.WriteString(" ")
	if s.IfExists {
		sql.WriteString("IF EXISTS ")
	}
	sql.WriteString(ctx.r.tableName(s.Table))
	if s.Cascade {
		sql.WriteString(" CASCADE")
	}
	return sql.String(), nil
}
