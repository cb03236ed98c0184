// Package sqlgen renders accumulated query state into parameterized SQL.
// It is the single rendering path shared by the fluent builder in the root
// package and the analyzed-query generator in pkg/generator, so the two
// entry points cannot drift apart.
package sqlgen

import "strings"

// JoinType identifies the SQL join variant emitted for a Join.
type JoinType string

// Supported join types. An empty JoinType renders as JoinInner.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
)

// Direction identifies the sort order of an Order entry.
type Direction string

// Sort directions. An empty Direction renders as Ascending.
// Render upper-cases whatever value is stored, so lowercase
// input ("asc", "desc") is accepted.
const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// TableRef is a parsed table specifier. Alias is empty when the
// specifier carried no "AS" separator.
type TableRef struct {
	Table string `json:"table"`
	Alias string `json:"alias,omitempty"`
}

// String renders the reference as it appears in FROM and JOIN clauses.
func (r TableRef) String() string {
	if r.Alias != "" {
		return r.Table + " AS " + r.Alias
	}
	return r.Table
}

// Join is one JOIN clause. Joins render in the order they were added.
// Condition is the raw ON expression; when empty the clause is emitted
// without an ON part.
type Join struct {
	Ref       TableRef `json:"ref"`
	Condition string   `json:"condition,omitempty"`
	Type      JoinType `json:"type,omitempty"`
}

// Condition is one WHERE predicate. Predicates are always combined
// with AND; there is no OR or grouping support.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Order is one ORDER BY entry.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction,omitempty"`
}

// Query is the normalized query state consumed by Render. Both the
// fluent builder and externally analyzed query records convert into
// this value before rendering.
//
// Limit and Offset are pointers so an explicit zero is distinguishable
// from "not set": LIMIT 0 is legal SQL and must render.
type Query struct {
	SelectFields []string    `json:"select_fields,omitempty"`
	From         *TableRef   `json:"from_table,omitempty"`
	Joins        []Join      `json:"joins,omitempty"`
	Where        []Condition `json:"where_conditions,omitempty"`
	OrderBy      []Order     `json:"order_by,omitempty"`
	Limit        *int        `json:"limit,omitempty"`
	Offset       *int        `json:"offset,omitempty"`
}

// ParseTableRef parses a table specifier of the form "name" or
// "name AS alias". The separator is matched case-insensitively at its
// first occurrence (" AS ", " as ", " As ", " aS " all split), and both
// halves are trimmed with their original casing preserved. Input with
// no separator becomes the table name as given, with no alias.
func ParseTableRef(spec string) TableRef {
	if idx := strings.Index(strings.ToLower(spec), " as "); idx >= 0 {
		return TableRef{
			Table: strings.TrimSpace(spec[:idx]),
			Alias: strings.TrimSpace(spec[idx+len(" as "):]),
		}
	}
	return TableRef{Table: spec}
}
