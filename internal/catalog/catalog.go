// Package catalog defines snowgate's fixed tool catalog and the policy filter
// that turns it into the per-deployment tool registry.
package catalog

import (
	"slices"

	"github.com/snowgate/snowgate/internal/tools"
	"github.com/snowgate/snowgate/pkg/types"
)

// Category determines the calling convention used when a tool is dispatched.
type Category string

const (
	// CategoryEnumeration tools list namespace objects (databases, schemas, tables)
	// and receive the exclusion patterns so configured namespaces are suppressed.
	CategoryEnumeration Category = "enumeration"

	// CategoryExecution tools operate on caller-supplied input and must not
	// re-filter their results by namespace.
	CategoryExecution Category = "execution"
)

// TagWrite marks tools that modify the database.
const TagWrite = "write"

// Tool describes one invocable operation in the catalog.
// A Tool is immutable once constructed.
type Tool struct {
	Name        string
	Description string
	InputSchema types.ToolInputSchema
	Category    Category
	Tags        []string
	Handler     tools.HandlerFunc
}

// HasTag reports whether the tool carries the given policy tag.
func (t *Tool) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

func queryInputSchema(description string) types.ToolInputSchema {
	return types.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"query": map[string]any{"type": "string", "description": description},
		},
		Required: []string{"query"},
	}
}

// baseCatalog returns the read-only tools available on every deployment,
// in declaration order.
func baseCatalog() []Tool {
	return []Tool{
		{
			Name:        "list_databases",
			Description: "List all available databases",
			InputSchema: types.ToolInputSchema{Type: "object", Properties: map[string]any{}},
			Category:    CategoryEnumeration,
			Handler:     tools.HandleListDatabases,
		},
		{
			Name:        "list_schemas",
			Description: "List all schemas in a database",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"database": map[string]any{
						"type":        "string",
						"description": "Database name to list schemas from",
					},
				},
				Required: []string{"database"},
			},
			Category: CategoryEnumeration,
			Handler:  tools.HandleListSchemas,
		},
		{
			Name:        "list_tables",
			Description: "List all tables in a specific database and schema",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"database": map[string]any{"type": "string", "description": "Database name"},
					"schema":   map[string]any{"type": "string", "description": "Schema name"},
				},
				Required: []string{"database", "schema"},
			},
			Category: CategoryEnumeration,
			Handler:  tools.HandleListTables,
		},
		{
			Name:        "describe_table",
			Description: "Get the schema information for a specific table",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"table_name": map[string]any{
						"type":        "string",
						"description": "Fully qualified table name in the format 'database.schema.table'",
					},
				},
				Required: []string{"table_name"},
			},
			Category: CategoryExecution,
			Handler:  tools.HandleDescribeTable,
		},
		{
			Name:        "read_query",
			Description: "Execute a SELECT query",
			InputSchema: queryInputSchema("SELECT SQL query to execute"),
			Category:    CategoryExecution,
			Handler:     tools.HandleReadQuery,
		},
		{
			Name:        "append_insight",
			Description: "Add a data insight to the memo",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"insight": map[string]any{
						"type":        "string",
						"description": "Data insight discovered from analysis",
					},
				},
				Required: []string{"insight"},
			},
			Category: CategoryExecution,
			Tags:     []string{"resource_based"},
			Handler:  tools.HandleAppendInsight,
		},
	}
}

// writeCatalog returns the write-capable tools, in declaration order.
// These are only part of the full catalog when write operations are allowed.
func writeCatalog() []Tool {
	return []Tool{
		{
			Name:        "write_query",
			Description: "Execute an INSERT, UPDATE, or DELETE query on the database",
			InputSchema: queryInputSchema("SQL query to execute"),
			Category:    CategoryExecution,
			Tags:        []string{TagWrite},
			Handler:     tools.HandleWriteQuery,
		},
		{
			Name:        "create_table",
			Description: "Create a new table in the database",
			InputSchema: queryInputSchema("CREATE TABLE SQL statement"),
			Category:    CategoryExecution,
			Tags:        []string{TagWrite},
			Handler:     tools.HandleCreateTable,
		},
	}
}
