// Package mysql connects to MySQL and MariaDB through go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/zoobzio/sqlgen/db/sqldb"
	dialect "github.com/zoobzio/sqlgen/mysql"
)

// Open connects with a go-sql-driver DSN such as
// "user:pass@tcp(localhost:3306)/app".
func Open(ctx context.Context, dsn string, opts ...sqldb.Option) (*sqldb.Driver, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	return OpenConfig(ctx, cfg, opts...)
}

// OpenN opens n connections sharing one database handle.
func OpenN(ctx context.Context, dsn string, n int, opts ...sqldb.Option) ([]*sqldb.Driver, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	sqlDB, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return sqldb.OpenN(ctx, sqlDB, dialect.New(), n, opts...)
}

// OpenConfig connects with a parsed configuration. Statements run one at a
// time, so multi-statement mode stays off.
func OpenConfig(ctx context.Context, cfg *mysql.Config, opts ...sqldb.Option) (*sqldb.Driver, error) {
	sqlDB, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return sqldb.Open(ctx, sqlDB, dialect.New(), opts...)
}

func openDB(cfg *mysql.Config) (*sql.DB, error) {
	cfg.MultiStatements = false
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	return sql.OpenDB(connector), nil
}
