package discovery

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/querykit/querykit"
)

// Querier executes queries against PostgreSQL.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn, so a Connector can
// run inside an open transaction as easily as on a pooled connection.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Connector executes built queries against PostgreSQL. It accepts the
// named-placeholder SQL the builder produces, rewrites it to the
// positional form the driver understands, and returns rows as maps
// keyed by column name.
type Connector struct {
	db Querier
}

// Compile-time check that Connector satisfies the executor contract.
var _ querykit.Executor = (*Connector)(nil)

// NewConnector creates a Connector over db.
func NewConnector(db Querier) *Connector {
	return &Connector{db: db}
}

// ExecuteQuery runs a query with named :name placeholders bound from
// params. Errors for missing relations are wrapped in ErrUnknownTable;
// everything else passes through from the driver.
func (c *Connector) ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	bound, args, err := bindNamed(query, params)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, bound, args...)
	if err != nil {
		if sqlState(err) == pgUndefinedTable {
			return nil, fmt.Errorf("%w: %v", ErrUnknownTable, err)
		}
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// bindNamed rewrites :name placeholders to PostgreSQL's $N positional
// form and collects the matching argument values in order of first
// appearance. Repeated names reuse one position. "::" is left alone so
// type casts survive the rewrite. A placeholder with no entry in
// params is an error.
func bindNamed(query string, params map[string]any) (string, []any, error) {
	var sb strings.Builder
	var args []any
	positions := make(map[string]int)

	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch != ':' {
			sb.WriteByte(ch)
			continue
		}
		if i+1 < len(query) && query[i+1] == ':' {
			sb.WriteString("::")
			i++
			continue
		}

		j := i + 1
		for j < len(query) && isNameByte(query[j]) {
			j++
		}
		if j == i+1 {
			sb.WriteByte(ch)
			continue
		}

		name := query[i+1 : j]
		value, ok := params[name]
		if !ok {
			return "", nil, fmt.Errorf("discovery: query references :%s but no value was bound", name)
		}

		pos, seen := positions[name]
		if !seen {
			args = append(args, value)
			pos = len(args)
			positions[name] = pos
		}
		fmt.Fprintf(&sb, "$%d", pos)
		i = j - 1
	}

	return sb.String(), args, nil
}

func isNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// scanRows drains rows into one map per row keyed by column name.
// Text columns arrive from the driver as []byte and are converted to
// string so callers see plain values.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
