package render

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	Returning         bool // RETURNING on INSERT
	Upsert            bool // ON CONFLICT / ON DUPLICATE KEY / INSERT IGNORE
	RightJoin         bool
	FullJoin          bool
	MaterializedViews bool
	ReplaceView       bool // CREATE OR REPLACE VIEW
	ReplaceTable      bool // CREATE OR REPLACE TABLE
	ViewIfNotExists   bool // CREATE VIEW IF NOT EXISTS
	DropCascade       bool
	DropIndex         bool // DROP INDEX without naming the table
	IndexIfNotExists  bool
	PartialIndex      bool // CREATE INDEX ... WHERE
	IntervalLiterals  bool // INTERVAL '3 days' as a standalone value
	CreateAsTable     bool // CREATE TABLE ... AS SELECT
}
