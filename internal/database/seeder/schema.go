package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruitment-portal/internal/database"
)

// ErrSchemaMismatch means the migrated schema lacks columns a seeder writes.
var ErrSchemaMismatch = errors.New("schema mismatch")

const columnsQuery = `SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`

// EnsureTableColumns checks the public schema before a seeder inserts into
// table. Every missing column is reported, not only the first.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("table and columns are required")
	}

	existing, err := tableColumns(ctx, db, table)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	if len(existing) == 0 {
		return fmt.Errorf("%w: table %s not found, run migrations first", ErrSchemaMismatch, table)
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func tableColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(ctx, columnsQuery, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}
