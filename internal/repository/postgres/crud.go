package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// crudTable is a generic PostgreSQL implementation of repository.Crud.
// Each entity instantiates it with its table name, ordered column list
// (id column first), and scan/args functions. It uses database/sql with
// parameterized queries and contains no business logic.
type crudTable[T model.Entity] struct {
	db *sql.DB

	// filterCol, when set, is the column matched against ListFilter.InstructorID.
	filterCol string

	qList   string
	qFilter string
	qFind   string
	qInsert string
	qUpdate string
	qDelete string

	scan func(s scanner) (*T, error)
	args func(e *T) []any
}

// newCrudTable prepares the query set for one table. cols must start with the
// id column and match the order produced by args and consumed by scan.
func newCrudTable[T model.Entity](db *sql.DB, table string, cols []string, filterCol string, scan func(s scanner) (*T, error), args func(e *T) []any) *crudTable[T] {
	idCol := cols[0]
	colList := strings.Join(cols, ", ")

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(cols)-1)
	for i, col := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}

	t := &crudTable[T]{
		db:        db,
		filterCol: filterCol,
		qList:     fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", colList, table, idCol),
		qFind:     fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", colList, table, idCol),
		qInsert:   fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s", table, colList, strings.Join(placeholders, ", "), colList),
		qUpdate:   fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1", table, strings.Join(sets, ", "), idCol),
		qDelete:   fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idCol),
		scan:      scan,
		args:      args,
	}
	if filterCol != "" {
		t.qFilter = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s", colList, table, filterCol, idCol)
	}
	return t
}

// List returns all rows, optionally narrowed by the configured filter column.
func (t *crudTable[T]) List(ctx context.Context, f repository.ListFilter) ([]T, error) {
	q := t.qList
	var params []any
	if f.InstructorID != "" && t.filterCol != "" {
		q = t.qFilter
		params = append(params, f.InstructorID)
	}

	rows, err := t.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single row by its id column.
func (t *crudTable[T]) FindByID(ctx context.Context, id string) (*T, error) {
	e, err := t.scan(t.db.QueryRowContext(ctx, t.qFind, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Create inserts a row with its client-supplied id and returns the stored record.
func (t *crudTable[T]) Create(ctx context.Context, e *T) (*T, error) {
	out, err := t.scan(t.db.QueryRowContext(ctx, t.qInsert, t.args(e)...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

// Update overwrites every non-id column of the row identified by the record's id.
func (t *crudTable[T]) Update(ctx context.Context, e *T) error {
	res, err := t.db.ExecContext(ctx, t.qUpdate, t.args(e)...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a row by id.
func (t *crudTable[T]) Delete(ctx context.Context, id string) error {
	res, err := t.db.ExecContext(ctx, t.qDelete, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
