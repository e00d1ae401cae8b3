// Package render turns validated statement trees into SQL text using a
// per-dialect lookup table.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlgen/internal/types"
)

// Bulk-load control characters used by the COPY channel. They are chosen so
// they never collide with ordinary text.
const (
	CopyDelimiter = "\t"
	CopyNull      = "\a"
	CopyQuote     = "\b"
)

// Renderer renders statements for one dialect. It holds no mutable state and
// is safe for concurrent use.
type Renderer struct {
	d *Dialect
}

// New creates a renderer for d.
func New(d *Dialect) *Renderer {
	return &Renderer{d: d.clone()}
}

// Dialect returns the dialect name.
func (r *Renderer) Dialect() string {
	return r.d.Name
}

// Capabilities returns the SQL features supported by the dialect.
func (r *Renderer) Capabilities() Capabilities {
	return r.d.Capabilities
}

// Render validates stmt and returns its SQL text terminated by ";".
func (r *Renderer) Render(stmt types.Statement) (string, error) {
	if _, err := types.Validate(stmt); err != nil {
		return "", err
	}
	ctx := &renderContext{r: r}
	sql, err := ctx.statement(stmt)
	if err != nil {
		return "", err
	}
	return sql + ";", nil
}

// LastInsertID renders the query returning the key generated by the most
// recent single-row INSERT into t. Callers use it when Capabilities reports
// no RETURNING support.
func (r *Renderer) LastInsertID(t types.Table, c types.Column) (string, error) {
	if r.d.LastInsertID == "" {
		return "", NewUnsupportedFeatureError(r.d.Name, "last insert id", "use RETURNING")
	}
	return strings.NewReplacer(
		"{table}", quoteString(r.tableName(t)),
		"{column}", quoteString(c.Name),
		"{sequence}", quoteString(sequenceName(t, c)),
	).Replace(r.d.LastInsertID) + ";", nil
}

// sequenceName names the sequence backing an AutoIncrementSequence key.
func sequenceName(t types.Table, c types.Column) string {
	return "seq_" + t.Name + "_" + c.Name
}

// renderContext carries per-call state.
type renderContext struct {
	r      *Renderer
	params int
	// unqualified drops table qualifiers from column references, for
	// statements that address a single table without an alias.
	unqualified bool
}

func (ctx *renderContext) dialect() *Dialect {
	return ctx.r.d
}

func (ctx *renderContext) unsupported(feature string, hint ...string) error {
	return NewUnsupportedFeatureError(ctx.r.d.Name, feature, hint...)
}

func (ctx *renderContext) placeholder() string {
	ctx.params++
	switch ctx.r.d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(ctx.params)
	case PlaceholderAtP:
		return "@p" + strconv.Itoa(ctx.params)
	default:
		return "?"
	}
}

func (r *Renderer) quote(name string) string {
	d := r.d
	return d.QuoteOpen + strings.ReplaceAll(name, d.QuoteClose, d.QuoteClose+d.QuoteClose) + d.QuoteClose
}

// bare writes an identifier unquoted when it is a plain lower-case name and
// quoted otherwise.
func (r *Renderer) bare(name string) string {
	if name == "" {
		return r.quote(name)
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return r.quote(name)
		}
	}
	return name
}

func (r *Renderer) tableName(t types.Table) string {
	if t.Schema != "" {
		return r.quote(t.Schema) + "." + r.quote(t.Name)
	}
	return r.quote(t.Name)
}

func (r *Renderer) quoteAll(names []string, sep string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = r.quote(n)
	}
	return strings.Join(quoted, sep)
}

func columnNames(cols []types.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func (ctx *renderContext) statement(stmt types.Statement) (string, error) {
	switch s := stmt.(type) {
	case types.SelectFrom:
		return ctx.selectFrom(s)
	case types.Union:
		return ctx.union(s)
	case types.Insert:
		return ctx.insert(s)
	case types.Write:
		return ctx.write(s)
	case types.Update:
		return ctx.update(s)
	case types.DeleteFrom:
		return ctx.deleteFrom(s)
	case types.CreateTable:
		return ctx.createTable(s)
	case types.CreateIndex:
		return ctx.createIndex(s)
	case types.CreateAs:
		return ctx.createAs(s)
	case types.Drop:
		return ctx.drop(s)
	default:
		return "", unhandled(ctx.r.d.Name, fmt.Sprintf("statement %T", stmt))
	}
}

func (ctx *renderContext) query(q types.Query) (string, error) {
	switch s := q.(type) {
	case types.SelectFrom:
		return ctx.selectFrom(s)
	case types.Union:
		return ctx.union(s)
	default:
		return "", unhandled(ctx.r.d.Name, fmt.Sprintf("query %T", q))
	}
}

func (ctx *renderContext) source(src types.Source) (string, error) {
	switch s := src.(type) {
	case types.Table:
		out := ctx.r.tableName(s)
		if s.Alias != "" {
			out += " " + s.Alias
		}
		return out, nil
	case types.Subquery:
		inner := &renderContext{r: ctx.r}
		sql, err := inner.query(s.Query)
		if err != nil {
			return "", err
		}
		out := "(" + sql + ")"
		if s.Alias != "" {
			out += " " + s.Alias
		}
		return out, nil
	default:
		return "", unhandled(ctx.r.d.Name, fmt.Sprintf("source %T", src))
	}
}

func (ctx *renderContext) selectFrom(s types.SelectFrom) (string, error) {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	if s.Distinct {
		sql.WriteString("DISTINCT ")
	}

	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		field, err := ctx.field(f)
		if err != nil {
			return "", err
		}
		fields = append(fields, field)
	}
	sql.WriteString(strings.Join(fields, ","))

	from, err := ctx.source(s.From)
	if err != nil {
		return "", err
	}
	sql.WriteString(" FROM ")
	sql.WriteString(from)

	for _, j := range s.Joins {
		switch {
		case j.How == types.RightJoin && !ctx.dialect().Capabilities.RightJoin:
			return "", ctx.unsupported("RIGHT JOIN", "swap the sides and use LEFT JOIN")
		case j.How == types.FullJoin && !ctx.dialect().Capabilities.FullJoin:
			return "", ctx.unsupported("FULL JOIN")
		}
		src, err := ctx.source(j.Source)
		if err != nil {
			return "", err
		}
		on, err := ctx.condition(j.On)
		if err != nil {
			return "", err
		}
		sql.WriteString(" ")
		sql.WriteString(j.How.String())
		sql.WriteString(" ")
		sql.WriteString(src)
		sql.WriteString(" ON ")
		sql.WriteString(on)
	}

	if s.Where != nil {
		where, err := ctx.condition(s.Where)
		if err != nil {
			return "", err
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}

	if len(s.GroupBy) > 0 {
		groups := make([]string, len(s.GroupBy))
		for i, c := range s.GroupBy {
			groups[i] = ctx.column(c)
		}
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(groups, ", "))
	}

	if len(s.OrderBy) > 0 {
		orders := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			op, err := ctx.operation(o.Operation)
			if err != nil {
				return "", err
			}
			if o.Desc {
				op += " DESC"
			}
			orders[i] = op
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(orders, ", "))
	}

	ctx.paginate(&sql, s)
	return sql.String(), nil
}

func (ctx *renderContext) field(f types.Field) (string, error) {
	op, err := ctx.operation(f.Operation)
	if err != nil {
		return "", err
	}
	alias := f.Alias
	if agg, ok := f.Operation.(types.Aggregation); ok && alias == "" {
		alias = agg.Alias
	}
	if alias != "" {
		op += " AS " + ctx.r.quote(alias)
	}
	return op, nil
}

func (ctx *renderContext) paginate(sql *strings.Builder, s types.SelectFrom) {
	d := ctx.dialect()
	if s.Limit == nil && s.Offset == nil {
		return
	}
	if d.Pagination == PaginationOffsetFetch {
		if len(s.OrderBy) == 0 {
			sql.WriteString(" ORDER BY (SELECT NULL)")
		}
		offset := 0
		if s.Offset != nil {
			offset = *s.Offset
		}
		fmt.Fprintf(sql, " OFFSET %d ROWS", offset)
		if s.Limit != nil {
			fmt.Fprintf(sql, " FETCH NEXT %d ROWS ONLY", *s.Limit)
		}
		return
	}
	switch {
	case s.Limit != nil:
		fmt.Fprintf(sql, " LIMIT %d", *s.Limit)
	case d.OffsetWithoutLimit != "":
		sql.WriteString(" LIMIT ")
		sql.WriteString(d.OffsetWithoutLimit)
	}
	if s.Offset != nil {
		fmt.Fprintf(sql, " OFFSET %d", *s.Offset)
	}
}

func (ctx *renderContext) union(u types.Union) (string, error) {
	sep := " UNION "
	if u.All {
		sep = " UNION ALL "
	}
	branches := make([]string, len(u.Branches))
	for i, b := range u.Branches {
		sql, err := ctx.selectFrom(b)
		if err != nil {
			return "", err
		}
		branches[i] = sql
	}
	return strings.Join(branches, sep), nil
}

func (ctx *renderContext) insert(s types.Insert) (string, error) {
	d := ctx.dialect()
	if s.Conflict != types.ConflictNone && (d.Upsert == UpsertNone || !d.Capabilities.Upsert) {
		return "", ctx.unsupported("conflict policy "+s.Conflict.String(), "check for the row before inserting")
	}
	if len(s.Returning) > 0 && !d.Capabilities.Returning {
		return "", ctx.unsupported("RETURNING", "use Renderer.LastInsertID after a single-row insert")
	}

	var sql strings.Builder
	if s.Conflict == types.ConflictIgnore && d.Upsert == UpsertDuplicate {
		sql.WriteString("INSERT IGNORE INTO ")
	} else {
		sql.WriteString("INSERT INTO ")
	}
	ctx.values(&sql, s.Table, s.Columns)

	switch s.Conflict {
	case types.ConflictIgnore:
		if d.Upsert == UpsertOnConflict {
			sql.WriteString(" ON CONFLICT DO NOTHING")
		}
	case types.ConflictReplace:
		ctx.upsert(&sql, s)
	}

	if len(s.Returning) > 0 {
		sql.WriteString(" RETURNING ")
		sql.WriteString(ctx.r.quoteAll(columnNames(s.Returning), ","))
	}
	return sql.String(), nil
}

// values writes "T" ("a","b") VALUES ($1,$2).
func (ctx *renderContext) values(sql *strings.Builder, t types.Table, cols []types.Column) {
	sql.WriteString(ctx.r.tableName(t))
	sql.WriteString(" (")
	sql.WriteString(ctx.r.quoteAll(columnNames(cols), ","))
	sql.WriteString(") VALUES (")
	for i := range cols {
		if i > 0 {
			sql.WriteString(",")
		}
		sql.WriteString(ctx.placeholder())
	}
	sql.WriteString(")")
}

func (ctx *renderContext) upsert(sql *strings.Builder, s types.Insert) {
	r := ctx.r
	switch ctx.dialect().Upsert {
	case UpsertOnConflict:
		keys := make([]string, len(s.Constraints))
		for i, k := range s.Constraints {
			keys[i] = r.bare(k)
		}
		sql.WriteString(" ON CONFLICT (")
		sql.WriteString(strings.Join(keys, ","))
		sql.WriteString(")")
		if len(s.NonPrimaryKeys) == 0 {
			sql.WriteString(" DO NOTHING")
			return
		}
		sets := make([]string, len(s.NonPrimaryKeys))
		for i, c := range s.NonPrimaryKeys {
			sets[i] = r.bare(c) + "=excluded." + r.bare(c)
		}
		sql.WriteString(" DO UPDATE SET ")
		sql.WriteString(strings.Join(sets, ","))
	case UpsertDuplicate:
		cols := s.NonPrimaryKeys
		if len(cols) == 0 {
			cols = s.Constraints[:1]
		}
		sets := make([]string, len(cols))
		for i, c := range cols {
			sets[i] = r.quote(c) + "=VALUES(" + r.quote(c) + ")"
		}
		sql.WriteString(" ON DUPLICATE KEY UPDATE ")
		sql.WriteString(strings.Join(sets, ","))
	}
}

func (ctx *renderContext) write(s types.Write) (string, error) {
	d := ctx.dialect()
	if d.Write != WriteCopy {
		var sql strings.Builder
		sql.WriteString("INSERT INTO ")
		ctx.values(&sql, s.Table, s.Columns)
		return sql.String(), nil
	}
	t := s.Table
	if t.Schema == "" {
		t.Schema = d.DefaultSchema
	}
	return fmt.Sprintf("COPY %s(%s) FROM STDIN WITH DELIMITER '%s' NULL '%s' CSV QUOTE '%s'",
		ctx.r.tableName(t), ctx.r.quoteAll(columnNames(s.Columns), ","),
		CopyDelimiter, CopyNull, CopyQuote), nil
}

func (ctx *renderContext) update(s types.Update) (string, error) {
	ctx.unqualified = true
	sets := make([]string, len(s.Sets))
	for i, set := range s.Sets {
		val, err := ctx.operation(set.Value)
		if err != nil {
			return "", err
		}
		sets[i] = ctx.r.quote(set.Column.Name) + " = " + val
	}

	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(ctx.r.tableName(s.Table))
	sql.WriteString(" SET ")
	sql.WriteString(strings.Join(sets, ", "))
	if s.Where != nil {
		where, err := ctx.condition(s.Where)
		if err != nil {
			return "", err
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	return sql.String(), nil
}

func (ctx *renderContext) deleteFrom(s types.DeleteFrom) (string, error) {
	ctx.unqualified = true
	sql := "DELETE FROM " + ctx.r.tableName(s.Table)
	if s.Where != nil {
		where, err := ctx.condition(s.Where)
		if err != nil {
			return "", err
		}
		sql += " WHERE " + where
	}
	return sql, nil
}
