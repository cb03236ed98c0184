// Package main provides the querykit CLI.
//
// The CLI supports:
//   - introspect: Read table/column/foreign-key metadata from PostgreSQL
//     and write it as schema YAML
//   - build: Assemble a query from flags and print the SQL and parameters
//     (optionally executing it against the database)
//   - config: Show the effective configuration
//   - version: Print version information
//
// Commands that require database access (introspect, build --execute) need
// --db or a database section in querykit.yaml. build without --execute works
// entirely offline.
package main

func main() {
	Execute()
}
