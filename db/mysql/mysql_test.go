package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen_BadDSN(t *testing.T) {
	_, err := Open(context.Background(), "not a dsn")
	assert.ErrorContains(t, err, "mysql: parse dsn")

	_, err = OpenN(context.Background(), "not a dsn", 2)
	assert.ErrorContains(t, err, "mysql: parse dsn")
}
