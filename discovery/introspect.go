package discovery

import (
	"context"
	"fmt"

	"github.com/querykit/querykit/schema"
)

// Introspection queries against information_schema. Scoped to the
// public schema; view and system tables are excluded.
const (
	tablesQuery = `SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
ORDER BY table_name`

	columnsQuery = `SELECT table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = 'public'
ORDER BY table_name, ordinal_position`

	foreignKeysQuery = `SELECT
    tc.constraint_name,
    tc.table_name AS source_table,
    kcu.column_name AS source_column,
    ccu.table_name AS target_table,
    ccu.column_name AS target_column
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
    ON tc.constraint_name = kcu.constraint_name
    AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage ccu
    ON tc.constraint_name = ccu.constraint_name
    AND tc.table_schema = ccu.table_schema
WHERE tc.table_schema = 'public' AND tc.constraint_type = 'FOREIGN KEY'
ORDER BY tc.constraint_name`
)

// Introspect reads table, column, and foreign-key metadata from the
// database's information_schema and returns it in registry-ready form.
// Foreign keys become relationships keyed by constraint name, so
// registering the result derives one join path per foreign key.
// Declared aliases are a querykit concept with no catalog equivalent;
// tables come back without them.
func Introspect(ctx context.Context, db Querier) (schema.Metadata, error) {
	meta := schema.Metadata{
		Tables:        map[string]schema.Table{},
		Columns:       map[string][]schema.Column{},
		Relationships: map[string]schema.Relationship{},
	}

	if err := introspectTables(ctx, db, &meta); err != nil {
		return schema.Metadata{}, err
	}
	if err := introspectColumns(ctx, db, &meta); err != nil {
		return schema.Metadata{}, err
	}
	if err := introspectForeignKeys(ctx, db, &meta); err != nil {
		return schema.Metadata{}, err
	}

	return meta, nil
}

func introspectTables(ctx context.Context, db Querier, meta *schema.Metadata) error {
	rows, err := db.QueryContext(ctx, tablesQuery)
	if err != nil {
		return fmt.Errorf("discovering tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("discovering tables: %w", err)
		}
		meta.Tables[name] = schema.Table{}
	}
	return rows.Err()
}

func introspectColumns(ctx context.Context, db Querier, meta *schema.Metadata) error {
	rows, err := db.QueryContext(ctx, columnsQuery)
	if err != nil {
		return fmt.Errorf("discovering columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var table, name, dataType, nullable string
		if err := rows.Scan(&table, &name, &dataType, &nullable); err != nil {
			return fmt.Errorf("discovering columns: %w", err)
		}
		meta.Columns[table] = append(meta.Columns[table], schema.Column{
			Name:     name,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	return rows.Err()
}

func introspectForeignKeys(ctx context.Context, db Querier, meta *schema.Metadata) error {
	rows, err := db.QueryContext(ctx, foreignKeysQuery)
	if err != nil {
		return fmt.Errorf("discovering foreign keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var constraint string
		var rel schema.Relationship
		if err := rows.Scan(&constraint, &rel.SourceTable, &rel.SourceColumn, &rel.TargetTable, &rel.TargetColumn); err != nil {
			return fmt.Errorf("discovering foreign keys: %w", err)
		}
		meta.Relationships[constraint] = rel
	}
	return rows.Err()
}
