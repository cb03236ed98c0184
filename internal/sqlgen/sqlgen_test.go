package sqlgen

import (
	"reflect"
	"testing"
)

func TestParseTableRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TableRef
	}{
		{"plain name", "orders", TableRef{Table: "orders"}},
		{"uppercase separator", "orders AS o", TableRef{Table: "orders", Alias: "o"}},
		{"lowercase separator", "orders as o", TableRef{Table: "orders", Alias: "o"}},
		{"mixed case separator", "orders As o", TableRef{Table: "orders", Alias: "o"}},
		{"mixed case separator reversed", "orders aS o", TableRef{Table: "orders", Alias: "o"}},
		{"extra whitespace around halves", "  orders   AS   o  ", TableRef{Table: "orders", Alias: "o"}},
		{"splits at first separator only", "a AS b AS c", TableRef{Table: "a", Alias: "b AS c"}},
		{"case preserved in halves", "Orders AS O1", TableRef{Table: "Orders", Alias: "O1"}},
		{"no separator keeps input verbatim", "count(*) OVER ()", TableRef{Table: "count(*) OVER ()"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTableRef(tt.input)
			if got != tt.want {
				t.Errorf("ParseTableRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTableRefString(t *testing.T) {
	if got := (TableRef{Table: "orders"}).String(); got != "orders" {
		t.Errorf("String() = %q, want %q", got, "orders")
	}
	if got := (TableRef{Table: "orders", Alias: "o"}).String(); got != "orders AS o" {
		t.Errorf("String() = %q, want %q", got, "orders AS o")
	}
}

func TestRender_SelectDefaults(t *testing.T) {
	sql, params := Render(Query{})
	if sql != "SELECT *" {
		t.Errorf("empty query = %q, want %q", sql, "SELECT *")
	}
	if len(params) != 0 {
		t.Errorf("empty query params = %v, want empty", params)
	}

	sql, _ = Render(Query{SelectFields: []string{"a", "b"}})
	if sql != "SELECT a, b" {
		t.Errorf("select fields = %q, want %q", sql, "SELECT a, b")
	}
}

func TestRender_From(t *testing.T) {
	sql, _ := Render(Query{From: &TableRef{Table: "orders"}})
	if sql != "SELECT * FROM orders" {
		t.Errorf("from = %q, want %q", sql, "SELECT * FROM orders")
	}

	sql, _ = Render(Query{From: &TableRef{Table: "orders", Alias: "o"}})
	if sql != "SELECT * FROM orders AS o" {
		t.Errorf("from with alias = %q, want %q", sql, "SELECT * FROM orders AS o")
	}
}

func TestRender_Joins(t *testing.T) {
	tests := []struct {
		name string
		join Join
		want string
	}{
		{
			"default type is inner",
			Join{Ref: TableRef{Table: "customers"}},
			"SELECT * FROM orders INNER JOIN customers",
		},
		{
			"alias and condition",
			Join{Ref: TableRef{Table: "customers", Alias: "c"}, Condition: "orders.customer_id = c.id"},
			"SELECT * FROM orders INNER JOIN customers AS c ON orders.customer_id = c.id",
		},
		{
			"left join",
			Join{Ref: TableRef{Table: "customers"}, Type: JoinLeft},
			"SELECT * FROM orders LEFT JOIN customers",
		},
		{
			"full join",
			Join{Ref: TableRef{Table: "customers"}, Type: JoinFull},
			"SELECT * FROM orders FULL JOIN customers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := Render(Query{From: &TableRef{Table: "orders"}, Joins: []Join{tt.join}})
			if sql != tt.want {
				t.Errorf("got %q, want %q", sql, tt.want)
			}
		})
	}
}

func TestRender_JoinOrderPreserved(t *testing.T) {
	sql, _ := Render(Query{
		From: &TableRef{Table: "orders"},
		Joins: []Join{
			{Ref: TableRef{Table: "customers"}, Type: JoinLeft},
			{Ref: TableRef{Table: "products"}},
		},
	})
	want := "SELECT * FROM orders LEFT JOIN customers INNER JOIN products"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestRender_WhereParams(t *testing.T) {
	sql, params := Render(Query{
		From: &TableRef{Table: "orders"},
		Where: []Condition{
			{Field: "status", Operator: "=", Value: "active"},
			{Field: "total", Operator: ">", Value: 100},
			{Field: "status", Operator: "!=", Value: "void"},
		},
	})

	want := "SELECT * FROM orders WHERE status = :p0 AND total > :p1 AND status != :p2"
	if sql != want {
		t.Errorf("got  %q\nwant %q", sql, want)
	}

	wantParams := map[string]any{"p0": "active", "p1": 100, "p2": "void"}
	if !reflect.DeepEqual(params, wantParams) {
		t.Errorf("params = %v, want %v", params, wantParams)
	}
}

func TestRender_ParamNamesArePositional(t *testing.T) {
	// Duplicate fields must still get distinct names: the counter is the
	// only input to parameter naming.
	q := Query{Where: []Condition{
		{Field: "id", Operator: "=", Value: 1},
		{Field: "id", Operator: "=", Value: 2},
	}}
	_, params := Render(q)
	if params["p0"] != 1 || params["p1"] != 2 {
		t.Errorf("params = %v, want p0=1 p1=2", params)
	}
}

func TestRender_OrderBy(t *testing.T) {
	sql, _ := Render(Query{
		From: &TableRef{Table: "orders"},
		OrderBy: []Order{
			{Field: "created_at", Direction: Descending},
			{Field: "id"},
			{Field: "total", Direction: "desc"},
		},
	})
	want := "SELECT * FROM orders ORDER BY created_at DESC, id ASC, total DESC"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestRender_LimitOffset(t *testing.T) {
	zero := 0
	ten := 10

	sql, _ := Render(Query{From: &TableRef{Table: "orders"}, Limit: &ten, Offset: &zero})
	want := "SELECT * FROM orders LIMIT 10 OFFSET 0"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}

	// Explicit zero is not "absent".
	sql, _ = Render(Query{From: &TableRef{Table: "orders"}, Limit: &zero})
	if sql != "SELECT * FROM orders LIMIT 0" {
		t.Errorf("explicit LIMIT 0 = %q", sql)
	}

	// Unset renders nothing.
	sql, _ = Render(Query{From: &TableRef{Table: "orders"}})
	if sql != "SELECT * FROM orders" {
		t.Errorf("unset limit/offset = %q", sql)
	}
}

func TestRender_ClauseOrderInvariant(t *testing.T) {
	five := 5
	two := 2
	sql, params := Render(Query{
		SelectFields: []string{"o.id", "c.name"},
		From:         &TableRef{Table: "orders", Alias: "o"},
		Joins: []Join{
			{Ref: TableRef{Table: "customers", Alias: "c"}, Condition: "o.customer_id = c.id", Type: JoinLeft},
		},
		Where: []Condition{
			{Field: "o.status", Operator: "=", Value: "shipped"},
		},
		OrderBy: []Order{{Field: "o.created_at", Direction: Descending}},
		Limit:   &five,
		Offset:  &two,
	})

	want := "SELECT o.id, c.name FROM orders AS o " +
		"LEFT JOIN customers AS c ON o.customer_id = c.id " +
		"WHERE o.status = :p0 " +
		"ORDER BY o.created_at DESC LIMIT 5 OFFSET 2"
	if sql != want {
		t.Errorf("got  %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(params, map[string]any{"p0": "shipped"}) {
		t.Errorf("params = %v", params)
	}
}

func TestRender_Idempotent(t *testing.T) {
	q := Query{
		From:  &TableRef{Table: "orders"},
		Where: []Condition{{Field: "id", Operator: "=", Value: 7}},
	}
	sql1, params1 := Render(q)
	sql2, params2 := Render(q)
	if sql1 != sql2 {
		t.Errorf("renders differ: %q vs %q", sql1, sql2)
	}
	if !reflect.DeepEqual(params1, params2) {
		t.Errorf("params differ: %v vs %v", params1, params2)
	}
}

func TestJoiner(t *testing.T) {
	j := NewJoiner(" ")
	if !j.Empty() {
		t.Error("new joiner should be empty")
	}
	j.Add("SELECT *", "", "FROM t")
	if got := j.String(); got != "SELECT * FROM t" {
		t.Errorf("String() = %q", got)
	}
}
