package discovery

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindNamed(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		params    map[string]any
		wantSQL   string
		wantArgs  []any
		expectErr bool
	}{
		{
			name:     "no placeholders",
			query:    "SELECT * FROM orders",
			params:   map[string]any{},
			wantSQL:  "SELECT * FROM orders",
			wantArgs: nil,
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM orders WHERE status = :p0",
			params:   map[string]any{"p0": "active"},
			wantSQL:  "SELECT * FROM orders WHERE status = $1",
			wantArgs: []any{"active"},
		},
		{
			name:     "positions follow first appearance",
			query:    "WHERE a = :p0 AND b = :p1 AND c = :p2",
			params:   map[string]any{"p0": 1, "p1": 2, "p2": 3},
			wantSQL:  "WHERE a = $1 AND b = $2 AND c = $3",
			wantArgs: []any{1, 2, 3},
		},
		{
			name:     "repeated name reuses position",
			query:    "WHERE a = :p0 OR b = :p0",
			params:   map[string]any{"p0": 7},
			wantSQL:  "WHERE a = $1 OR b = $1",
			wantArgs: []any{7},
		},
		{
			name:     "cast is not a placeholder",
			query:    "SELECT id::text FROM orders WHERE status = :p0",
			params:   map[string]any{"p0": "active"},
			wantSQL:  "SELECT id::text FROM orders WHERE status = $1",
			wantArgs: []any{"active"},
		},
		{
			name:     "bare colon passes through",
			query:    "SELECT ': ' FROM t",
			params:   map[string]any{},
			wantSQL:  "SELECT ': ' FROM t",
			wantArgs: nil,
		},
		{
			name:      "unbound placeholder",
			query:     "WHERE a = :p0",
			params:    map[string]any{},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs, err := bindNamed(tt.query, tt.params)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestConnector_ExecuteQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM orders WHERE status = \$1`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(int64(1), "active").
			AddRow(int64(2), "active"))

	conn := NewConnector(db)
	rows, err := conn.ExecuteQuery(context.Background(),
		"SELECT * FROM orders WHERE status = :p0",
		map[string]any{"p0": "active"})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, "active", rows[0]["status"])
	assert.Equal(t, int64(2), rows[1]["id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnector_ExecuteQuery_TextBytesBecomeStrings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow([]byte("Ada")))

	rows, err := NewConnector(db).ExecuteQuery(context.Background(),
		"SELECT name FROM customers", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada", rows[0]["name"])
}

func TestConnector_ExecuteQuery_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := NewConnector(db).ExecuteQuery(context.Background(), "SELECT * FROM orders", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConnector_ExecuteQuery_UndefinedTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM missing").
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "missing" does not exist`})

	_, err = NewConnector(db).ExecuteQuery(context.Background(), "SELECT * FROM missing", nil)
	require.Error(t, err)
	assert.True(t, IsUnknownTableErr(err), "expected ErrUnknownTable, got %v", err)
}

func TestConnector_ExecuteQuery_OtherErrorsPassThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM orders").
		WillReturnError(&pq.Error{Code: "42601", Message: "syntax error"})

	_, err = NewConnector(db).ExecuteQuery(context.Background(), "SELECT * FROM orders", nil)
	require.Error(t, err)
	assert.False(t, IsUnknownTableErr(err))
}
