package schema

// Registry is the in-memory schema catalog. It is populated once via
// Register and treated as read-mostly afterwards; it has no internal
// locking, so re-registration must be serialized against concurrent
// readers by the caller.
type Registry struct {
	tables        map[string]Table
	columns       map[string][]Column
	relationships map[string]Relationship
	joinPaths     map[string]map[string]JoinPathEntry
	aliasMap      map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables:        map[string]Table{},
		columns:       map[string][]Column{},
		relationships: map[string]Relationship{},
		joinPaths:     map[string]map[string]JoinPathEntry{},
		aliasMap:      map[string]string{},
	}
}

// Register loads metadata into the registry, replacing prior contents
// wholesale (not merging). The alias lookup is rebuilt from declared
// table aliases only. Join paths are adopted verbatim when the metadata
// carries them, otherwise derived from the relationships: each
// relationship with all four fields present yields exactly one
// source→target entry, and relationships missing any field are skipped
// without error. When several relationships share a source/target pair
// the last one iterated wins.
func (r *Registry) Register(meta Metadata) {
	r.tables = meta.Tables
	if r.tables == nil {
		r.tables = map[string]Table{}
	}
	r.columns = meta.Columns
	if r.columns == nil {
		r.columns = map[string][]Column{}
	}
	r.relationships = meta.Relationships
	if r.relationships == nil {
		r.relationships = map[string]Relationship{}
	}

	r.aliasMap = map[string]string{}
	for name, table := range r.tables {
		if table.Alias != "" {
			r.aliasMap[table.Alias] = name
		}
	}

	if meta.JoinPaths != nil {
		r.joinPaths = meta.JoinPaths
		return
	}
	r.buildJoinPaths()
}

func (r *Registry) buildJoinPaths() {
	r.joinPaths = map[string]map[string]JoinPathEntry{}
	for _, rel := range r.relationships {
		if rel.SourceTable == "" || rel.SourceColumn == "" ||
			rel.TargetTable == "" || rel.TargetColumn == "" {
			continue
		}
		r.addJoinPath(rel)
	}
}

func (r *Registry) addJoinPath(rel Relationship) {
	alias := r.tables[rel.TargetTable].Alias
	if alias == "" {
		alias = GenerateAlias(rel.TargetTable)
	}

	condition := rel.SourceTable + "." + rel.SourceColumn + " = " + alias + "." + rel.TargetColumn

	if r.joinPaths[rel.SourceTable] == nil {
		r.joinPaths[rel.SourceTable] = map[string]JoinPathEntry{}
	}
	r.joinPaths[rel.SourceTable][rel.TargetTable] = JoinPathEntry{
		Table:     rel.TargetTable,
		Alias:     alias,
		Condition: condition,
	}
}

// JoinPath returns the precomputed join connecting target to source.
// The lookup is one-directional: a relationship from orders to
// customers answers JoinPath("orders", "customers") but not the
// reverse. Unknown pairs return false rather than an error.
func (r *Registry) JoinPath(sourceTable, targetTable string) (JoinPathEntry, bool) {
	entry, ok := r.joinPaths[sourceTable][targetTable]
	return entry, ok
}

// TableForAlias resolves a declared alias back to its table name.
// Derived join aliases are not indexed here.
func (r *Registry) TableForAlias(alias string) (string, bool) {
	name, ok := r.aliasMap[alias]
	return name, ok
}

// Table returns the metadata for a table, if registered.
func (r *Registry) Table(name string) (Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns the names of all registered tables.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}

// Columns returns the column metadata for a table. The registry passes
// columns through untouched; nil means the table has none registered.
func (r *Registry) Columns(table string) []Column {
	return r.columns[table]
}

// Relationship returns a declared relationship by its identifier.
func (r *Registry) Relationship(id string) (Relationship, bool) {
	rel, ok := r.relationships[id]
	return rel, ok
}
