package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const dialectPostgres = "postgres"

// identPattern matches identifiers that are safe to interpolate into
// statements which cannot take bind parameters (eg- PRAGMA).
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// HandleListDatabases lists all databases visible on the connection,
// minus the ones suppressed by the exclusion patterns.
func HandleListDatabases(ctx context.Context, req *Request) (any, error) {
	var names []string
	var err error

	if req.DB.Dialector.Name() == dialectPostgres {
		names, err = queryColumn(ctx, req.DB,
			"SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname")
	} else {
		names, err = sqliteDatabaseNames(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	var contents []Content
	for _, name := range names {
		if req.Exclusions != nil && req.Exclusions.MatchesDatabase(name) {
			continue
		}
		contents = append(contents, NewTextContent(name))
	}
	return contents, nil
}

func sqliteDatabaseNames(ctx context.Context, req *Request) ([]string, error) {
	cols, rows, err := queryRows(ctx, req.DB, "PRAGMA database_list")
	if err != nil {
		return nil, err
	}
	nameIdx := -1
	for i, c := range cols {
		if c == "name" {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("unexpected PRAGMA database_list columns: %v", cols)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, fmt.Sprint(row[nameIdx]))
	}
	return names, nil
}

// HandleListSchemas lists all schemas in a database,
// minus the ones suppressed by the exclusion patterns.
func HandleListSchemas(ctx context.Context, req *Request) (any, error) {
	database, err := stringArg(req, "database")
	if err != nil {
		return nil, err
	}

	var names []string
	if req.DB.Dialector.Name() == dialectPostgres {
		names, err = queryColumn(ctx, req.DB,
			"SELECT schema_name FROM information_schema.schemata WHERE catalog_name = ? ORDER BY schema_name",
			database)
		if err != nil {
			return nil, fmt.Errorf("failed to list schemas in %s: %w", database, err)
		}
	} else {
		// sqlite has no schema hierarchy, the attached database is the schema
		names = []string{database}
	}

	var contents []Content
	for _, name := range names {
		if req.Exclusions != nil && req.Exclusions.MatchesSchema(name) {
			continue
		}
		contents = append(contents, NewTextContent(name))
	}
	return contents, nil
}

// HandleListTables lists all tables in a database and schema,
// minus the ones suppressed by the exclusion patterns.
func HandleListTables(ctx context.Context, req *Request) (any, error) {
	database, err := stringArg(req, "database")
	if err != nil {
		return nil, err
	}
	schema, err := stringArg(req, "schema")
	if err != nil {
		return nil, err
	}

	var names []string
	if req.DB.Dialector.Name() == dialectPostgres {
		names, err = queryColumn(ctx, req.DB,
			"SELECT table_name FROM information_schema.tables WHERE table_catalog = ? AND table_schema = ? ORDER BY table_name",
			database, schema)
	} else {
		names, err = queryColumn(ctx, req.DB,
			"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tables in %s.%s: %w", database, schema, err)
	}

	var contents []Content
	for _, name := range names {
		if req.Exclusions != nil && req.Exclusions.MatchesTable(name) {
			continue
		}
		contents = append(contents, NewTextContent(name))
	}
	return contents, nil
}

// HandleDescribeTable returns the column definitions of a table.
// The table name may be fully qualified as "database.schema.table".
func HandleDescribeTable(ctx context.Context, req *Request) (any, error) {
	tableName, err := stringArg(req, "table_name")
	if err != nil {
		return nil, err
	}

	parts := strings.Split(tableName, ".")
	table := parts[len(parts)-1]

	var cols []string
	var rows [][]any
	if req.DB.Dialector.Name() == dialectPostgres {
		query := "SELECT column_name, data_type, is_nullable, column_default " +
			"FROM information_schema.columns WHERE table_name = ?"
		args := []any{table}
		if len(parts) >= 2 {
			query += " AND table_schema = ?"
			args = append(args, parts[len(parts)-2])
		}
		if len(parts) >= 3 {
			query += " AND table_catalog = ?"
			args = append(args, parts[len(parts)-3])
		}
		query += " ORDER BY ordinal_position"
		cols, rows, err = queryRows(ctx, req.DB, query, args...)
	} else {
		if !identPattern.MatchString(table) {
			return nil, fmt.Errorf("invalid table name: %s", table)
		}
		cols, rows, err = queryRows(ctx, req.DB, fmt.Sprintf("PRAGMA table_info(%s)", table))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table %s does not exist or has no columns", tableName)
	}

	rendered, err := renderRows(cols, rows, req.ExcludeJSONResults)
	if err != nil {
		return nil, err
	}
	return []Content{NewTextContent(rendered)}, nil
}

// HandleReadQuery executes a SELECT query and returns the result rows.
func HandleReadQuery(ctx context.Context, req *Request) (any, error) {
	query, err := stringArg(req, "query")
	if err != nil {
		return nil, err
	}

	if analysis := req.Detector.AnalyzeQuery(query); analysis.ContainsWrite {
		return nil, fmt.Errorf(
			"calls to read_query should not contain write operations (found: %s)",
			strings.Join(analysis.Keywords, ", "),
		)
	}

	cols, rows, err := queryRows(ctx, req.DB, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	rendered, err := renderRows(cols, rows, req.ExcludeJSONResults)
	if err != nil {
		return nil, err
	}
	return []Content{NewTextContent(rendered)}, nil
}

// HandleAppendInsight adds a data insight to the in-memory memo.
func HandleAppendInsight(ctx context.Context, req *Request) (any, error) {
	insight, err := stringArg(req, "insight")
	if err != nil {
		return nil, err
	}
	req.Memo.Add(insight)
	return "Insight added to memo", nil
}

// HandleWriteQuery executes an INSERT, UPDATE or DELETE query.
func HandleWriteQuery(ctx context.Context, req *Request) (any, error) {
	if !req.AllowWrite {
		return nil, fmt.Errorf("write operations are not allowed for this data connection")
	}

	query, err := stringArg(req, "query")
	if err != nil {
		return nil, err
	}

	if !req.Detector.IsWrite(query) {
		return nil, fmt.Errorf("calls to write_query must contain write operations, use read_query for SELECT statements")
	}
	if startsWithKeyword(query, "CREATE") {
		return nil, fmt.Errorf("use the create_table tool to create tables")
	}

	res := req.DB.WithContext(ctx).Exec(query)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to execute query: %w", res.Error)
	}
	return fmt.Sprintf("Query executed successfully. Rows affected: %d", res.RowsAffected), nil
}

// HandleCreateTable executes a CREATE TABLE statement.
func HandleCreateTable(ctx context.Context, req *Request) (any, error) {
	if !req.AllowWrite {
		return nil, fmt.Errorf("write operations are not allowed for this data connection")
	}

	query, err := stringArg(req, "query")
	if err != nil {
		return nil, err
	}

	if !startsWithKeyword(query, "CREATE") {
		return nil, fmt.Errorf("only CREATE TABLE statements are allowed with create_table")
	}

	if res := req.DB.WithContext(ctx).Exec(query); res.Error != nil {
		return nil, fmt.Errorf("failed to create table: %w", res.Error)
	}
	return "Table created successfully", nil
}

func startsWithKeyword(query, keyword string) bool {
	trimmed := strings.TrimSpace(query)
	return len(trimmed) >= len(keyword) && strings.EqualFold(trimmed[:len(keyword)], keyword)
}
