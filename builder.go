package querykit

import (
	"context"
	"fmt"

	"github.com/querykit/querykit/internal/sqlgen"
	"github.com/querykit/querykit/schema"
)

// Builder accumulates query state through chained calls and compiles it
// into SQL plus a parameter map. Every setter returns the same builder,
// so calls chain; none of them validate their arguments beyond table
// specifier parsing, and malformed input surfaces as a database syntax
// error rather than a build failure.
//
// Build is idempotent and does not consume the state, so a builder can
// be built, inspected, and executed.
type Builder struct {
	registry *schema.Registry
	executor Executor

	selectFields []string
	from         *sqlgen.TableRef
	joins        []sqlgen.Join
	where        []sqlgen.Condition
	orderBy      []sqlgen.Order
	limit        *int
	offset       *int
}

// Option configures a Builder at construction.
type Option func(*Builder)

// WithRegistry attaches a schema registry, enabling JoinRelated to
// resolve join clauses from declared relationships.
func WithRegistry(reg *schema.Registry) Option {
	return func(b *Builder) {
		b.registry = reg
	}
}

// WithExecutor attaches the executor Execute forwards built queries to.
func WithExecutor(e Executor) Option {
	return func(b *Builder) {
		b.executor = e
	}
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Select appends fields to the SELECT clause. With no accumulated
// fields the query renders SELECT *.
func (b *Builder) Select(fields ...string) *Builder {
	b.selectFields = append(b.selectFields, fields...)
	return b
}

// From sets the FROM table. The specifier may carry an alias
// ("orders AS o"); the separator is matched case-insensitively, the
// same rule the join methods apply.
func (b *Builder) From(table string) *Builder {
	ref := sqlgen.ParseTableRef(table)
	b.from = &ref
	return b
}

// Join adds an INNER JOIN. The table specifier is parsed like From.
// An empty condition emits the clause without an ON part.
func (b *Builder) Join(table, condition string) *Builder {
	return b.join(table, condition, sqlgen.JoinInner)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(table, condition string) *Builder {
	return b.join(table, condition, sqlgen.JoinLeft)
}

// RightJoin adds a RIGHT JOIN.
func (b *Builder) RightJoin(table, condition string) *Builder {
	return b.join(table, condition, sqlgen.JoinRight)
}

// FullJoin adds a FULL JOIN.
func (b *Builder) FullJoin(table, condition string) *Builder {
	return b.join(table, condition, sqlgen.JoinFull)
}

// JoinRelated adds an INNER JOIN against the named table, resolving
// the alias and ON condition from the schema registry's join path
// between the FROM table and the target. When no registry is attached,
// no FROM table is set, or no path is declared, the table is joined
// plainly with no condition, matching the registry's silent-omission
// behavior for unknown lookups.
func (b *Builder) JoinRelated(table string) *Builder {
	if b.registry != nil && b.from != nil {
		if path, ok := b.registry.JoinPath(b.from.Table, table); ok {
			b.joins = append(b.joins, sqlgen.Join{
				Ref:       sqlgen.TableRef{Table: path.Table, Alias: path.Alias},
				Condition: path.Condition,
				Type:      sqlgen.JoinInner,
			})
			return b
		}
	}
	return b.join(table, "", sqlgen.JoinInner)
}

func (b *Builder) join(table, condition string, jt sqlgen.JoinType) *Builder {
	b.joins = append(b.joins, sqlgen.Join{
		Ref:       sqlgen.ParseTableRef(table),
		Condition: condition,
		Type:      jt,
	})
	return b
}

// Where adds a predicate to the WHERE clause. Two calling forms:
//
//	Where("status", "active")        // implied "=" operator
//	Where("total", ">", 100)         // explicit operator
//
// The one-argument form is chosen only by argument count, so an
// explicit zero or empty value in the two-argument form is never
// reinterpreted: Where("deleted_at", "=", "") binds "" with operator
// "=". Predicates combine with AND only. Calls with no value arguments
// are ignored.
func (b *Builder) Where(field string, args ...any) *Builder {
	switch len(args) {
	case 1:
		b.where = append(b.where, sqlgen.Condition{Field: field, Operator: "=", Value: args[0]})
	case 2:
		b.where = append(b.where, sqlgen.Condition{Field: field, Operator: fmt.Sprint(args[0]), Value: args[1]})
	}
	return b
}

// OrderBy appends an ORDER BY entry. Direction defaults to ascending;
// lowercase direction strings are accepted and upper-cased on render.
func (b *Builder) OrderBy(field string, direction ...Direction) *Builder {
	o := sqlgen.Order{Field: field, Direction: sqlgen.Ascending}
	if len(direction) > 0 {
		o.Direction = direction[0]
	}
	b.orderBy = append(b.orderBy, o)
	return b
}

// Limit sets the LIMIT clause. Zero is a legal explicit value and
// renders LIMIT 0; only an unset limit omits the clause.
func (b *Builder) Limit(n int) *Builder {
	b.limit = &n
	return b
}

// Offset sets the OFFSET clause. Like Limit, an explicit zero renders.
func (b *Builder) Offset(n int) *Builder {
	b.offset = &n
	return b
}

// Build compiles the accumulated state into SQL text and its parameter
// map. Clauses emit in fixed order (SELECT, FROM, JOINs, WHERE, ORDER
// BY, LIMIT, OFFSET) regardless of call order, and WHERE parameters
// are named :p0, :p1, ... in declaration order. Build does not clear
// the builder; repeated calls yield identical output.
func (b *Builder) Build() (string, map[string]any) {
	return sqlgen.Render(sqlgen.Query{
		SelectFields: b.selectFields,
		From:         b.from,
		Joins:        b.joins,
		Where:        b.where,
		OrderBy:      b.orderBy,
		Limit:        b.limit,
		Offset:       b.offset,
	})
}

// Execute builds the query and forwards it to the configured executor.
// Returns ErrNoExecutor when the builder has none; executor failures
// pass through unwrapped.
func (b *Builder) Execute(ctx context.Context) ([]map[string]any, error) {
	if b.executor == nil {
		return nil, ErrNoExecutor
	}
	query, params := b.Build()
	return b.executor.ExecuteQuery(ctx, query, params)
}
