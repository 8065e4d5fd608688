package core

import (
	"context"
	"database/sql"
	"strings"
)

type (
	DBExecutor interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		Query(query string, args ...interface{}) (*sql.Rows, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRow(query string, args ...interface{}) *sql.Row
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}

	DB interface {
		DBExecutor

		Begin() (*sql.Tx, error)
		BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error)
	}

	DBTransactor interface {
		DBExecutor

		Commit() error
		Rollback() error
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// CleanOrderings drops orderings on fields that are not in `allowed`.
// Orderings end up in raw SQL, never pass them through unchecked.
func CleanOrderings(ordering []DBOrdering, allowed ...string) []DBOrdering {
	if len(ordering) == 0 {
		return nil
	}
	cleaned := make([]DBOrdering, 0, len(ordering))
	for _, ord := range ordering {
		for _, fld := range allowed {
			if ord.Field == fld {
				cleaned = append(cleaned, ord)
				break
			}
		}
	}
	return cleaned
}

// OrderBy renders `ordering` as an ORDER BY clause, falling back to `dflt` when empty.
func OrderBy(ordering []DBOrdering, dflt ...DBOrdering) string {
	if len(ordering) == 0 {
		ordering = dflt
	}
	if len(ordering) == 0 {
		return ""
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}
