// Package sqlxrepos implements the repositories on Postgres.
package sqlxrepos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
)

// repository runs named queries on `exec`, or on the executor passed by the service (e.g. a transaction).
type repository struct {
	exec core.DBExecutor
}

func (repo repository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

// bind turns a named query into a positional Postgres one, expanding IN (:slice) params.
func bind(query string, arg interface{}) (string, []interface{}, error) {
	q, args, err := sqlx.Named(query, arg)
	if err != nil {
		return "", nil, errors.Wrap(err, "binding named query")
	}
	if hasSliceArg(args) {
		q, args, err = sqlx.In(q, args...)
		if err != nil {
			return "", nil, errors.Wrap(err, "expanding query")
		}
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), args, nil
}

func hasSliceArg(args []interface{}) bool {
	for _, arg := range args {
		if _, ok := arg.([]string); ok {
			return true
		}
	}
	return false
}

// selectAll scans all rows into `dest`, a pointer to a slice of row structs.
func (repo repository) selectAll(ctx context.Context, exec []core.DBExecutor, dest interface{}, query string, arg interface{}) error {
	q, args, err := bind(query, arg)
	if err != nil {
		return err
	}
	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return sqlx.StructScan(rows, dest)
}

// count runs a `SELECT COUNT(*)` query.
func (repo repository) count(ctx context.Context, exec []core.DBExecutor, query string, arg interface{}) (int, error) {
	q, args, err := bind(query, arg)
	if err != nil {
		return 0, err
	}
	var n int
	if err = repo.getExec(exec).QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// execute runs a statement and returns the number of affected rows.
func (repo repository) execute(ctx context.Context, exec []core.DBExecutor, query string, arg interface{}) (int64, error) {
	q, args, err := bind(query, arg)
	if err != nil {
		return 0, err
	}
	res, err := repo.getExec(exec).ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// where collects the conditions and params of a WHERE clause.
type where struct {
	conds  []string
	params map[string]interface{}
}

func newWhere(cond string, params map[string]interface{}) *where {
	return &where{conds: []string{cond}, params: params}
}

func (w *where) and(cond string, params ...interface{}) {
	w.conds = append(w.conds, cond)
	for i := 0; i+1 < len(params); i += 2 {
		w.params[params[i].(string)] = params[i+1]
	}
}

func (w *where) String() string {
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
