package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// queryRows runs a raw query and scans every row generically.
// Column order is preserved so results can be rendered deterministically.
func queryRows(ctx context.Context, db *gorm.DB, query string, args ...any) ([]string, [][]any, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		for i, v := range values {
			// drivers return text columns as byte slices
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

// queryColumn runs a raw query expected to return a single text column.
func queryColumn(ctx context.Context, db *gorm.DB, query string, args ...any) ([]string, error) {
	cols, rows, err := queryRows(ctx, db, query, args...)
	if err != nil {
		return nil, err
	}
	if len(cols) != 1 {
		return nil, fmt.Errorf("expected a single result column, got %d", len(cols))
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, fmt.Sprint(row[0]))
	}
	return out, nil
}

// renderRows renders a result set as JSON, or as plain text when JSON results
// are excluded by deployment policy.
func renderRows(cols []string, rows [][]any, excludeJSON bool) (string, error) {
	if excludeJSON {
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, strings.Join(cols, " | "))
		for _, row := range rows {
			fields := make([]string, len(row))
			for i, v := range row {
				fields[i] = fmt.Sprint(v)
			}
			lines = append(lines, strings.Join(fields, " | "))
		}
		return strings.Join(lines, "\n"), nil
	}

	maps := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]any, len(cols))
		for i, col := range cols {
			m[col] = row[i]
		}
		maps = append(maps, m)
	}
	b, err := json.Marshal(maps)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result rows: %w", err)
	}
	return string(b), nil
}
