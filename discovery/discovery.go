// Package discovery connects querykit to a live PostgreSQL database.
// It provides two things: a Connector that implements the root
// package's Executor contract over database/sql, and Introspect, which
// reads table, column, and foreign-key metadata out of
// information_schema in the shape the schema registry consumes.
//
//	db, _ := sql.Open("postgres", dsn)
//
//	meta, err := discovery.Introspect(ctx, db)
//	reg := schema.NewRegistry()
//	reg.Register(meta)
//
//	qb := querykit.New(
//	    querykit.WithRegistry(reg),
//	    querykit.WithExecutor(discovery.NewConnector(db)),
//	)
package discovery

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUnknownTable is returned when a query or introspection run hits a
// relation that does not exist. It wraps the driver error, so the
// underlying detail stays available via errors.Unwrap.
var ErrUnknownTable = errors.New("discovery: table or view not found")

// IsUnknownTableErr returns true if err is or wraps ErrUnknownTable.
func IsUnknownTableErr(err error) bool {
	return errors.Is(err, ErrUnknownTable)
}

// PostgreSQL error code checked when classifying driver failures.
const pgUndefinedTable = "42P01" // undefined_table

// sqlState extracts the SQLSTATE code from a PostgreSQL driver error.
// lib/pq errors are matched directly; pgx and other drivers are
// covered by SQLState() interface detection.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	type sqlStateErr interface{ SQLState() string }
	var stateErr sqlStateErr
	if errors.As(err, &stateErr) {
		return stateErr.SQLState()
	}

	return ""
}
