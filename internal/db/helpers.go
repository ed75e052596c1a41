package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func HasTable(ctx context.Context, q QueryRower, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

func HasColumn(ctx context.Context, q QueryRower, table, column string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

// MissingColumns returns the columns of table that the schema lacks. A
// missing table reports every column.
func MissingColumns(ctx context.Context, q QueryRower, table string, columns []string) ([]string, error) {
	ok, err := HasTable(ctx, q, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]string(nil), columns...), nil
	}
	missing := []string{}
	for _, col := range columns {
		ok, err := HasColumn(ctx, q, table, col)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		slog.Warn("schema mismatch", "table", table, "missing", missing)
	}
	return missing, nil
}
