// Package querykit provides a fluent builder for parameterized SQL
// queries, backed by a schema registry that precomputes join conditions
// from declared table relationships.
//
// # Building Queries
//
// A Builder accumulates query state through chained calls and compiles
// it with Build:
//
//	sql, params := querykit.New().
//	    Select("o.id", "c.name").
//	    From("orders AS o").
//	    LeftJoin("customers AS c", "o.customer_id = c.id").
//	    Where("o.status", "shipped").
//	    OrderBy("o.created_at", querykit.Descending).
//	    Limit(50).
//	    Build()
//
// Build produces SQL with named placeholders (:p0, :p1, ...) and a map
// of placeholder names to the bound values. Values are never inlined
// into the SQL text.
//
// # Schema-Assisted Joins
//
// A schema.Registry resolves the join clause between related tables so
// callers can join by table name alone:
//
//	reg := schema.NewRegistry()
//	reg.Register(meta)
//
//	qb := querykit.New(querykit.WithRegistry(reg)).
//	    From("orders").
//	    JoinRelated("customers") // alias and ON condition from the registry
//
// # Execution
//
// Builders stay decoupled from the database: Execute forwards the built
// SQL and parameters to a configured Executor, such as the Postgres
// connector in the discovery package:
//
//	db, _ := sql.Open("postgres", dsn)
//	qb := querykit.New(querykit.WithExecutor(discovery.NewConnector(db)))
//	rows, err := qb.From("orders").Where("id", 7).Execute(ctx)
//
// A Builder is a short-lived, single-owner value; it is not safe for
// concurrent mutation.
package querykit

import (
	"context"

	"github.com/querykit/querykit/internal/sqlgen"
)

// TableRef is a parsed table specifier: a table name and an optional
// alias.
type TableRef = sqlgen.TableRef

// JoinType identifies the SQL join variant.
type JoinType = sqlgen.JoinType

// Join types accepted by the builder's join methods.
const (
	JoinInner = sqlgen.JoinInner
	JoinLeft  = sqlgen.JoinLeft
	JoinRight = sqlgen.JoinRight
	JoinFull  = sqlgen.JoinFull
)

// Direction identifies a sort order for OrderBy.
type Direction = sqlgen.Direction

// Sort directions for OrderBy.
const (
	Ascending  = sqlgen.Ascending
	Descending = sqlgen.Descending
)

// ParseTableRef parses "name" or "name AS alias" (the separator is
// matched case-insensitively) into a TableRef. It is the same rule the
// builder applies in From and the join methods.
var ParseTableRef = sqlgen.ParseTableRef

// Executor runs a built query against a database. Implementations
// receive the SQL text with named placeholders and the parameter map
// produced by Build, and return one map per result row keyed by column
// name. Failures pass through to the caller unwrapped.
//
// The discovery package provides a Postgres-backed implementation.
type Executor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
