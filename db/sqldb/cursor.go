package sqldb

import (
	"database/sql"

	"github.com/zoobzio/sqlgen/codec"
)

type cursor struct {
	rows  *sql.Rows
	width int
}

func (c *cursor) Fetch(n int) ([]codec.Row, error) {
	var out []codec.Row
	for len(out) < n {
		if !c.rows.Next() {
			return out, c.rows.Err()
		}
		row := make(codec.Row, c.width)
		dest := make([]any, c.width)
		for i := range row {
			dest[i] = &row[i]
		}
		if err := c.rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (c *cursor) Close() error {
	return c.rows.Close()
}
