// Package schema defines the flat row types rendered by the dashboard tables.
//
// Each type decodes directly from its JSON fixture. The JSON keys double as
// the CSV field keys, so renaming a tag changes the export header.
//
// Nullable numeric fields use pgtype values: Valid=false means the fixture
// carried null (or omitted the key) and the table renders a placeholder.
package schema
