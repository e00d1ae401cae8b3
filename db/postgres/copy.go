package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zoobzio/sqlgen/codec"
)

// Control characters the COPY statement declares as NULL marker and quote.
const (
	copyNull  = '\a'
	copyQuote = '\b'
)

var errAborted = errors.New("postgres: copy aborted")

// copyFunc runs one COPY FROM STDIN reading rows from r, normally
// (*pgconn.PgConn).CopyFrom.
type copyFunc func(ctx context.Context, r io.Reader, sql string) (pgconn.CommandTag, error)

// copyChannel feeds a running COPY FROM STDIN through a pipe. The copy runs
// in its own goroutine until the writer side is closed.
type copyChannel struct {
	pw   *io.PipeWriter
	done chan struct{} // closed when the copy has returned
	err  error         // result of the copy, set before done is closed
	buf  bytes.Buffer
}

func openCopy(ctx context.Context, copyFrom copyFunc, sql string) *copyChannel {
	pr, pw := io.Pipe()
	c := &copyChannel{pw: pw, done: make(chan struct{})}
	go func() {
		_, err := copyFrom(ctx, pr, sql)
		if err != nil {
			pr.CloseWithError(err)
		} else {
			pr.Close()
		}
		c.err = err
		close(c.done)
	}()
	return c
}

func (c *copyChannel) Send(_ context.Context, rows []codec.Row) error {
	c.buf.Reset()
	for _, row := range rows {
		EncodeRow(&c.buf, row)
	}
	_, err := c.pw.Write(c.buf.Bytes())
	return err
}

func (c *copyChannel) Commit(context.Context) error {
	if err := c.pw.Close(); err != nil {
		return err
	}
	<-c.done
	return c.err
}

// Abort fails the copy; the server discards every row sent so far. It
// returns at once when the copy has already finished.
func (c *copyChannel) Abort(context.Context) error {
	c.pw.CloseWithError(errAborted)
	<-c.done
	return nil
}

// EncodeRow appends row to buf in the COPY format the postgres renderer
// declares: tab separated, NULL as BEL, every other value quoted with BS.
func EncodeRow(buf *bytes.Buffer, row codec.Row) {
	for i, cell := range row {
		if i > 0 {
			buf.WriteByte('\t')
		}
		if cell == nil {
			buf.WriteByte(copyNull)
			continue
		}
		var s string
		switch v := cell.(type) {
		case string:
			s = v
		case []byte:
			s = string(v)
		default:
			s = fmt.Sprint(v)
		}
		buf.WriteByte(copyQuote)
		buf.WriteString(strings.ReplaceAll(s, string(copyQuote), string(copyQuote)+string(copyQuote)))
		buf.WriteByte(copyQuote)
	}
	buf.WriteByte('\n')
}
