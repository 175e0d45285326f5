package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/nomemory/lambdas/internal/util"
	"github.com/nomemory/lambdas/stream"
)

// StreamSqlQuery creates a lazy stream over the rows of a query. The query
// runs anew on every collection, rows are scanned one at a time with the
// provided scanner.
func StreamSqlQuery[T any](
	dbProvider func() (*sql.DB, error),
	query string,
	paramVals []any,
	scanner func(*sql.Rows) (T, error),
) stream.Stream[T] {
	db, err := dbProvider()
	if err != nil {
		return stream.Error[T](fmt.Errorf("failed to get db for sql query stream: %w", err))
	}
	return stream.NewStream(&sqlQueryStreamProvider[T]{
		db:      db,
		query:   query,
		args:    paramVals,
		scanner: scanner,
	})
}

type sqlQueryStreamProvider[T any] struct {
	db      *sql.DB
	query   string
	args    []any
	rows    *sql.Rows
	scanner func(*sql.Rows) (T, error)
}

func (p *sqlQueryStreamProvider[T]) Open(ctx context.Context) error {
	rows, err := p.db.QueryContext(ctx, p.query, p.args...)
	if err != nil {
		return fmt.Errorf("failed opening sql query stream: %w", err)
	}
	p.rows = rows
	return nil
}

func (p *sqlQueryStreamProvider[T]) Close() {
	if p.rows != nil {
		_ = p.rows.Close()
	}
}

func (p *sqlQueryStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		return util.Zero[T](), err
	}
	if !p.rows.Next() {
		if err := p.rows.Err(); err != nil {
			return util.Zero[T](), fmt.Errorf("error reading from sql query stream: %w", err)
		}
		return util.Zero[T](), io.EOF
	}
	return p.scanner(p.rows)
}
