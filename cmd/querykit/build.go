package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/querykit/querykit"
	"github.com/querykit/querykit/discovery"
	"github.com/querykit/querykit/internal/cli"
	"github.com/querykit/querykit/schema"
)

var (
	buildDB       string
	buildSelect   []string
	buildFrom     string
	buildJoins    []string
	buildWheres   []string
	buildOrderBys []string
	buildLimit    int
	buildOffset   int
	buildExecute  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a query and print its SQL and parameters",
	Long: `Assemble a query from flags using the fluent builder and print the
generated SQL with its parameter map. Joins given as a bare table name
are resolved through the schema metadata file when one is configured;
joins given as "table ON condition" use the condition verbatim.`,
	Example: `  # Build offline
  querykit build --from "orders AS o" --select o.id --where "o.status=shipped" --limit 10

  # Schema-resolved join (requires querykit.schema.yaml)
  querykit build --from orders --join customers

  # Execute against the database and print rows
  querykit build --from orders --where "status=active" --execute --db postgres://localhost/mydb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildFrom == "" {
			return cli.ConfigError("--from is required", nil)
		}
		return runBuild()
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildDB, "db", "", "database URL (with --execute)")
	f.StringArrayVar(&buildSelect, "select", nil, "field to select (repeatable)")
	f.StringVar(&buildFrom, "from", "", `from table, optionally aliased ("orders AS o")`)
	f.StringArrayVar(&buildJoins, "join", nil, `join: "table" (schema-resolved) or "table ON condition"`)
	f.StringArrayVar(&buildWheres, "where", nil, `predicate: "field=value" or "field OP value"`)
	f.StringArrayVar(&buildOrderBys, "order-by", nil, `order: "field" or "field:desc"`)
	f.IntVar(&buildLimit, "limit", -1, "LIMIT value")
	f.IntVar(&buildOffset, "offset", -1, "OFFSET value")
	f.BoolVar(&buildExecute, "execute", false, "execute the query and print rows")
}

func runBuild() error {
	var opts []querykit.Option

	// Schema metadata is optional for offline builds; bare --join table
	// names resolve only when it loads.
	if meta, err := schema.LoadMetadata(cfg.Schema); err == nil {
		reg := schema.NewRegistry()
		reg.Register(meta)
		opts = append(opts, querykit.WithRegistry(reg))
	}

	var db *sql.DB
	if buildExecute {
		dsn, err := resolveDSN(buildDB)
		if err != nil {
			return err
		}
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = db.Close() }()
		opts = append(opts, querykit.WithExecutor(discovery.NewConnector(db)))
	}

	qb := querykit.New(opts...).Select(buildSelect...).From(buildFrom)

	for _, join := range buildJoins {
		if table, condition, ok := strings.Cut(join, " ON "); ok {
			qb.Join(strings.TrimSpace(table), strings.TrimSpace(condition))
		} else {
			qb.JoinRelated(strings.TrimSpace(join))
		}
	}

	for _, where := range buildWheres {
		field, op, value, err := parseWhere(where)
		if err != nil {
			return err
		}
		qb.Where(field, op, value)
	}

	for _, order := range buildOrderBys {
		if field, dir, ok := strings.Cut(order, ":"); ok && strings.EqualFold(dir, "desc") {
			qb.OrderBy(field, querykit.Descending)
		} else {
			qb.OrderBy(order)
		}
	}

	if buildLimit >= 0 {
		qb.Limit(buildLimit)
	}
	if buildOffset >= 0 {
		qb.Offset(buildOffset)
	}

	if buildExecute {
		rows, err := qb.Execute(context.Background())
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	query, params := qb.Build()
	fmt.Println(query)
	if len(params) > 0 {
		data, err := yaml.Marshal(params)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "---\n%s", data)
	}
	return nil
}

// parseWhere splits a --where flag value. "field OP value" (three
// space-separated tokens) is taken literally; "field=value" implies the
// equality operator.
func parseWhere(spec string) (field, op, value string, err error) {
	if parts := strings.SplitN(spec, " ", 3); len(parts) == 3 {
		return parts[0], parts[1], parts[2], nil
	}
	if field, value, ok := strings.Cut(spec, "="); ok {
		return field, "=", value, nil
	}
	return "", "", "", cli.ConfigError(fmt.Sprintf("cannot parse --where %q", spec), nil)
}
