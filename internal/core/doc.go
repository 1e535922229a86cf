// Package core provides the tabular presentation engine behind the dashboard.
//
// The package has no UI or transport dependencies. Web handlers, tests and
// any future frontend drive it through [Service].
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Normalizer: [Normalize] folds case and diacritics so search is
//     forgiving about accents and whitespace.
//   - Filter engine: [Filter] keeps the rows that pass a categorical
//     [Predicate] and whose haystack contains the normalized query.
//   - CSV exporter: [ToCSV] writes the filtered rows with a fixed field order.
//   - Table modules: a [TableModule] binds one row type to its search fields,
//     CSV layout, categorical axes and columns. Modules are registered in a
//     [Registry] and consumed through the type-erased [Table] interface.
//   - View state: [ViewStore] keeps per-browser toggle overrides in memory.
//
// # Table Modules
//
// Each entity is configured once and validated at startup:
//
//	m, err := core.NewTableModule(core.ModuleConfig[schema.Contract]{
//	    Info:      core.TableInfo{Key: "contracts", Group: "Payments", Label: "Contracts"},
//	    RowID:     func(c schema.Contract) string { return c.ID },
//	    Search:    func(c schema.Contract) []string { return []string{c.Contract, c.Vendor} },
//	    CSVFields: []string{"contract", "vendor"},
//	    Columns:   columns,
//	}, rows)
//
// An empty or duplicate row id rejects the module.
//
// # Error Handling
//
// Display formatting never fails: unparseable values render verbatim.
// Technical errors are mapped to user-facing messages with [MapError].
package core
