package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/querykit/querykit/discovery"
	"github.com/querykit/querykit/internal/cli"
	"github.com/querykit/querykit/schema"
)

var (
	introspectDB     string
	introspectOutput string
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Discover schema metadata from a database",
	Long: `Read table, column, and foreign-key metadata from PostgreSQL's
information_schema and write it as querykit schema YAML. The resulting
file is loaded with schema.LoadMetadata and registered at startup, or
edited by hand to declare table aliases.`,
	Example: `  # Print discovered schema to stdout
  querykit introspect --db postgres://localhost/mydb

  # Write it to the configured schema file
  querykit introspect --db postgres://localhost/mydb -o querykit.schema.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := resolveDSN(introspectDB)
		if err != nil {
			return err
		}
		output := resolveString(introspectOutput, cfg.Introspect.Output)

		return runIntrospect(dsn, output)
	},
}

func init() {
	f := introspectCmd.Flags()
	f.StringVar(&introspectDB, "db", "", "database URL")
	f.StringVarP(&introspectOutput, "output", "o", "", "output file (default: stdout)")
}

func runIntrospect(dsn, output string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	meta, err := discovery.Introspect(context.Background(), db)
	if err != nil {
		return cli.DBConnectError("introspecting schema", err)
	}

	if output == "" {
		data, err := yaml.Marshal(meta)
		if err != nil {
			return cli.SchemaError("encoding schema metadata", err)
		}
		fmt.Print(string(data))
		return nil
	}

	if err := schema.SaveMetadata(output, meta); err != nil {
		return cli.SchemaError("writing schema metadata", err)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "wrote %d tables, %d relationships to %s\n",
			len(meta.Tables), len(meta.Relationships), output)
	}
	return nil
}
