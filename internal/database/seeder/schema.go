package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// RequireColumns fails when any of columns is missing from the public
// table. Seeders call it so a stale schema is reported before inserts.
func RequireColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	if q == nil {
		return errors.New("seeder: nil querier")
	}
	if table == "" || len(columns) == 0 {
		return errors.New("seeder: table and columns are required")
	}

	rows, err := q.Query(ctx, `
		SELECT want
		FROM unnest($2::text[]) AS want
		WHERE NOT EXISTS (
			SELECT 1 FROM information_schema.columns c
			WHERE c.table_schema = 'public' AND c.table_name = $1 AND c.column_name = want
		)`, table, columns)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		missing = append(missing, col)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}
