// Package schema holds table, column, and relationship metadata for a
// database, and derives the join paths a query builder needs to connect
// related tables without hand-written ON conditions.
//
// Metadata usually comes from one of two places: introspection of a live
// database (see the discovery package) or a YAML file written by a prior
// introspection run (LoadMetadata). Either way it is loaded into a
// Registry once at startup:
//
//	meta, _ := schema.LoadMetadata("querykit.schema.yaml")
//	reg := schema.NewRegistry()
//	reg.Register(meta)
//
//	if path, ok := reg.JoinPath("orders", "customers"); ok {
//	    qb.Join(path.Table+" AS "+path.Alias, path.Condition)
//	}
package schema

// Table is per-table metadata. Alias, when declared, is used for the
// table in derived join conditions and is indexed in the registry's
// alias lookup.
type Table struct {
	Alias   string `json:"alias,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Column is per-column metadata. The registry stores columns untouched;
// they exist for callers (and the CLI) inspecting a discovered schema.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
}

// Relationship declares that SourceTable.SourceColumn references
// TargetTable.TargetColumn. Each complete relationship yields one
// derived join path from source to target; no reverse path is
// synthesized.
type Relationship struct {
	SourceTable  string `json:"source_table"`
	SourceColumn string `json:"source_column"`
	TargetTable  string `json:"target_table"`
	TargetColumn string `json:"target_column"`
}

// JoinPathEntry is a precomputed join: the target table, the alias to
// join it under, and the full ON condition.
type JoinPathEntry struct {
	Table     string `json:"table"`
	Alias     string `json:"alias"`
	Condition string `json:"condition"`
}

// Metadata is the input to Registry.Register. All keys are optional.
// When JoinPaths is supplied it is adopted verbatim; otherwise paths
// are derived from Relationships.
type Metadata struct {
	Tables        map[string]Table                    `json:"tables,omitempty"`
	Columns       map[string][]Column                 `json:"columns,omitempty"`
	Relationships map[string]Relationship             `json:"relationships,omitempty"`
	JoinPaths     map[string]map[string]JoinPathEntry `json:"join_paths,omitempty"`
}
