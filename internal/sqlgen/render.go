package sqlgen

import (
	"fmt"
	"strings"
)

// Render compiles a Query into SQL text and its parameter map.
//
// Clauses emit in fixed order regardless of accumulation order:
// SELECT, FROM, JOINs (insertion order), WHERE, ORDER BY, LIMIT,
// OFFSET, joined by single spaces. WHERE values are never inlined;
// each predicate renders "field op :pN" with N assigned by a
// positional counter starting at 0 in declaration order, and the
// value stored under "pN" in the returned map. Counter-based naming
// means duplicate fields can never collide.
//
// Render is pure: calling it repeatedly on the same Query yields the
// same output, and the Query is not modified.
func Render(q Query) (string, map[string]any) {
	params := make(map[string]any)
	clauses := NewJoiner(" ")

	if len(q.SelectFields) > 0 {
		clauses.Add("SELECT " + strings.Join(q.SelectFields, ", "))
	} else {
		clauses.Add("SELECT *")
	}

	if q.From != nil {
		clauses.Add("FROM " + q.From.String())
	}

	for _, j := range q.Joins {
		jt := j.Type
		if jt == "" {
			jt = JoinInner
		}
		clause := string(jt) + " JOIN " + j.Ref.String()
		if j.Condition != "" {
			clause += " ON " + j.Condition
		}
		clauses.Add(clause)
	}

	if len(q.Where) > 0 {
		preds := make([]string, 0, len(q.Where))
		for i, c := range q.Where {
			name := fmt.Sprintf("p%d", i)
			preds = append(preds, fmt.Sprintf("%s %s :%s", c.Field, c.Operator, name))
			params[name] = c.Value
		}
		clauses.Add("WHERE " + strings.Join(preds, " AND "))
	}

	if len(q.OrderBy) > 0 {
		specs := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			dir := o.Direction
			if dir == "" {
				dir = Ascending
			}
			specs = append(specs, o.Field+" "+strings.ToUpper(string(dir)))
		}
		clauses.Add("ORDER BY " + strings.Join(specs, ", "))
	}

	if q.Limit != nil {
		clauses.Add(fmt.Sprintf("LIMIT %d", *q.Limit))
	}
	if q.Offset != nil {
		clauses.Add(fmt.Sprintf("OFFSET %d", *q.Offset))
	}

	return clauses.String(), params
}
