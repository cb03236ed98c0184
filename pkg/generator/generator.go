// Package generator compiles analyzed-query records into SQL without
// going through the fluent builder. It exists for callers that already
// hold query state as plain data (for example a query-analysis phase)
// and only need the rendering step.
//
// The package is a thin entry point over internal/sqlgen, the same
// renderer the root package's Builder.Build uses, so both paths
// produce byte-identical SQL for equivalent state.
package generator

import (
	"github.com/querykit/querykit/internal/sqlgen"
)

// Query is the analyzed-query record: the same fields the fluent
// builder accumulates, as plain data.
type Query = sqlgen.Query

// TableRef is a table name with an optional alias.
type TableRef = sqlgen.TableRef

// Join is one JOIN clause of an analyzed query.
type Join = sqlgen.Join

// Condition is one WHERE predicate of an analyzed query.
type Condition = sqlgen.Condition

// Order is one ORDER BY entry of an analyzed query.
type Order = sqlgen.Order

// ParseTableRef parses "name" or "name AS alias" into a TableRef,
// matching the separator case-insensitively.
var ParseTableRef = sqlgen.ParseTableRef

// Generator renders analyzed queries for a given SQL dialect.
//
// Dialect is carried for forward compatibility and recorded on the
// generator; the current output is dialect-neutral SQL with named
// :pN placeholders.
type Generator struct {
	Dialect string
}

// New creates a Generator. An empty dialect defaults to "postgres".
func New(dialect string) *Generator {
	if dialect == "" {
		dialect = "postgres"
	}
	return &Generator{Dialect: dialect}
}

// Generate compiles an analyzed query into SQL text and its parameter
// map, with the same clause order, placeholder naming, and rendering
// rules as Builder.Build.
func (g *Generator) Generate(q Query) (string, map[string]any) {
	return sqlgen.Render(q)
}
