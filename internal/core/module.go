package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Axis is one categorical filter dimension. Bucket maps a row to its
// canonical option value; rows mapping to a value outside Options never
// match a specific selection.
type Axis[R any] struct {
	Key     string
	Label   string
	Options []AxisOption
	Bucket  func(R) string
}

// Column is one rendered column. Format may be nil, in which case the raw
// field value is shown as CSV text.
type Column[R any] struct {
	Key      string
	Header   string
	Format   func(f *Formatter, row R) string
	Value    func(R) any  // Sort value; defaults to the field named Key
	Tone     func(R) Tone // Optional badge tone
	Hideable bool
}

// Toggle describes a per-row enabled switch held in view state.
type Toggle[R any] struct {
	Name    string          // Column header, e.g. "Enabled"
	Initial func(R) bool    // State before any view override
	Apply   func(R, bool) R // Returns a copy of the row reflecting the state
}

// ModuleConfig configures a TableModule.
type ModuleConfig[R any] struct {
	Info      TableInfo
	RowID     func(R) string
	Search    SearchFields[R]
	CSVFields []string
	Value     FieldValue[R] // Defaults to JSONFields[R]()
	Axes      []Axis[R]
	Columns   []Column[R]
	Toggle    *Toggle[R]
}

// Table is the type-erased view of a TableModule used by the registry,
// the service and the web layer.
type Table interface {
	Info() TableInfo
	Columns() []ColumnMeta
	Axes() []AxisMeta
	ToggleName() string
	Len() int
	HasRow(id string) bool
	Query(ctx context.Context, q Query, f *Formatter) (TableData, error)
	Export(ctx context.Context, q Query, format ExportFormat) (ExportFile, error)
}

// TableModule binds a row type to its search fields, CSV layout, axes and
// columns. Source rows are never mutated after construction.
type TableModule[R any] struct {
	info    TableInfo
	rows    []R
	index   map[string]int
	rowID   func(R) string
	search  SearchFields[R]
	csv     []string
	value   FieldValue[R]
	axes    []Axis[R]
	columns []Column[R]
	toggle  *Toggle[R]
}

// NewTableModule validates cfg and rows. Rows with an empty or duplicate id
// reject the whole module.
func NewTableModule[R any](cfg ModuleConfig[R], rows []R) (*TableModule[R], error) {
	if cfg.Info.Key == "" {
		return nil, fmt.Errorf("%w: empty table key", ErrInvalidConfiguration)
	}
	key := cfg.Info.Key

	if cfg.RowID == nil || cfg.Search == nil {
		return nil, fmt.Errorf("%s: %w: row id and search fields are required", key, ErrInvalidConfiguration)
	}
	if cfg.Info.FileBase == "" {
		cfg.Info.FileBase = key
	}
	if cfg.Value == nil {
		cfg.Value = JSONFields[R]()
	}
	if missing := missingFields(cfg.Value, cfg.CSVFields); len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w: unknown csv fields %v", key, ErrInvalidConfiguration, missing)
	}
	if err := validateColumns(cfg.Columns); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if err := validateAxes(cfg.Axes); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if t := cfg.Toggle; t != nil && (t.Initial == nil || t.Apply == nil) {
		return nil, fmt.Errorf("%s: %w: toggle needs Initial and Apply", key, ErrInvalidConfiguration)
	}

	index := make(map[string]int, len(rows))
	for i, row := range rows {
		id := cfg.RowID(row)
		if id == "" {
			return nil, fmt.Errorf("%s: row %d: %w", key, i+1, ErrMissingID)
		}
		if prev, dup := index[id]; dup {
			return nil, fmt.Errorf("%s: %w %q (rows %d and %d)", key, ErrDuplicateID, id, prev+1, i+1)
		}
		index[id] = i
	}

	return &TableModule[R]{
		info:    cfg.Info,
		rows:    slices.Clone(rows),
		index:   index,
		rowID:   cfg.RowID,
		search:  cfg.Search,
		csv:     slices.Clone(cfg.CSVFields),
		value:   cfg.Value,
		axes:    cfg.Axes,
		columns: cfg.Columns,
		toggle:  cfg.Toggle,
	}, nil
}

func validateColumns[R any](cols []Column[R]) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Key == "" || seen[c.Key] {
			return fmt.Errorf("%w: empty or duplicate column key %q", ErrInvalidConfiguration, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

func validateAxes[R any](axes []Axis[R]) error {
	seen := make(map[string]bool, len(axes))
	for _, a := range axes {
		if a.Key == "" || seen[a.Key] {
			return fmt.Errorf("%w: empty or duplicate axis key %q", ErrInvalidConfiguration, a.Key)
		}
		if a.Bucket == nil || len(a.Options) == 0 {
			return fmt.Errorf("%w: axis %q needs a bucket function and options", ErrInvalidConfiguration, a.Key)
		}
		seen[a.Key] = true
	}
	return nil
}

// Info returns the table's display information.
func (m *TableModule[R]) Info() TableInfo { return m.info }

// Len returns the number of source rows.
func (m *TableModule[R]) Len() int { return len(m.rows) }

// HasRow reports whether id identifies a source row.
func (m *TableModule[R]) HasRow(id string) bool {
	_, ok := m.index[id]
	return ok
}

// ToggleName returns the toggle column header, or "" if rows have no toggle.
func (m *TableModule[R]) ToggleName() string {
	if m.toggle == nil {
		return ""
	}
	return m.toggle.Name
}

// CSVFields returns the export field order.
func (m *TableModule[R]) CSVFields() []string { return slices.Clone(m.csv) }

func (m *TableModule[R]) Columns() []ColumnMeta {
	out := make([]ColumnMeta, len(m.columns))
	for i, c := range m.columns {
		out[i] = ColumnMeta{Key: c.Key, Header: c.Header, Hideable: c.Hideable, Sortable: m.sortable(c.Key)}
	}
	return out
}

func (m *TableModule[R]) Axes() []AxisMeta {
	out := make([]AxisMeta, len(m.axes))
	for i, a := range m.axes {
		out[i] = AxisMeta{Key: a.Key, Label: a.Label, Options: slices.Clone(a.Options)}
	}
	return out
}

// Rows returns the source rows with the view's toggles applied.
// The module's own rows are never modified.
func (m *TableModule[R]) Rows(toggles Toggles) []R {
	if m.toggle == nil {
		return m.rows
	}
	out := make([]R, len(m.rows))
	for i, row := range m.rows {
		enabled, ok := toggles[m.rowID(row)]
		if !ok {
			enabled = m.toggle.Initial(row)
		}
		out[i] = m.toggle.Apply(row, enabled)
	}
	return out
}

// Enabled returns the effective toggle state of a row in a view.
func (m *TableModule[R]) Enabled(id string, toggles Toggles) (bool, error) {
	if m.toggle == nil {
		return false, fmt.Errorf("%s: %w", m.info.Key, ErrToggleUnsupported)
	}
	i, ok := m.index[id]
	if !ok {
		return false, fmt.Errorf("%s: %w: %q", m.info.Key, ErrRowNotFound, id)
	}
	if enabled, set := toggles[id]; set {
		return enabled, nil
	}
	return m.toggle.Initial(m.rows[i]), nil
}

// predicate builds the categorical filter for the selected axes.
func (m *TableModule[R]) predicate(selected map[string]string) (Predicate[R], error) {
	for key := range selected {
		if !slices.ContainsFunc(m.axes, func(a Axis[R]) bool { return a.Key == key }) {
			return nil, fmt.Errorf("%s: %w: unknown axis %q", m.info.Key, ErrInvalidFilter, key)
		}
	}

	var preds []Predicate[R]
	for _, a := range m.axes {
		sel := Normalize(selected[a.Key])
		if sel == "" || sel == AxisAll {
			continue
		}
		if !slices.ContainsFunc(a.Options, func(o AxisOption) bool { return o.Value == sel }) {
			return nil, fmt.Errorf("%s: %w: %s=%q", m.info.Key, ErrInvalidFilter, a.Key, selected[a.Key])
		}
		bucket := a.Bucket
		preds = append(preds, func(row R) bool { return bucket(row) == sel })
	}
	return And(preds...), nil
}

// Filtered applies the view overlay, axes and search, in source order.
func (m *TableModule[R]) Filtered(q Query) ([]R, error) {
	pred, err := m.predicate(q.Axes)
	if err != nil {
		return nil, err
	}
	return Filter(m.Rows(q.Toggles), pred, q.Search, m.search), nil
}

// Query filters, sorts and paginates the table and renders the page.
func (m *TableModule[R]) Query(ctx context.Context, q Query, f *Formatter) (TableData, error) {
	if err := ctx.Err(); err != nil {
		return TableData{}, err
	}
	if f == nil {
		f = DefaultFormatter
	}

	rows, err := m.Filtered(q)
	if err != nil {
		return TableData{}, err
	}

	sortSpecs := normalizeSort(q.Sort, m.sortable)
	rows = sortRows(rows, sortSpecs, m.sortValue)
	page := Paginate(len(rows), q.Page, q.PageSize)
	pageRows := rows[page.Start:page.End]

	data := TableData{
		Info:       m.info,
		Columns:    m.Columns(),
		Axes:       m.Axes(),
		ToggleName: m.ToggleName(),
		Rows:       make([]RowView, len(pageRows)),
		Records:    make([]any, len(pageRows)),
		Total:      len(rows),
		SourceRows: len(m.rows),
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages,
		Sort:       sortSpecs,
	}

	for i, row := range pageRows {
		id := m.rowID(row)
		view := RowView{ID: id, Cells: make([]Cell, len(m.columns))}
		for j, col := range m.columns {
			view.Cells[j] = Cell{Key: col.Key, Text: m.renderCell(f, col, row), Tone: m.cellTone(col, row)}
		}
		if m.toggle != nil {
			enabled, _ := m.Enabled(id, q.Toggles)
			view.Enabled = &enabled
		}
		data.Rows[i] = view
		data.Records[i] = row
	}

	return data, nil
}

// Export renders the filtered rows, in filter order, as CSV.
func (m *TableModule[R]) Export(ctx context.Context, q Query, format ExportFormat) (ExportFile, error) {
	if err := ctx.Err(); err != nil {
		return ExportFile{}, err
	}

	rows, err := m.Filtered(q)
	if err != nil {
		return ExportFile{}, err
	}

	return ExportFile{
		ID:       uuid.NewString(),
		Filename: format.Filename(m.info.FileBase),
		MIMEType: format.MIMEType,
		Rows:     len(rows),
		Body:     []byte(ToCSV(rows, m.csv, m.value)),
	}, nil
}

// renderCell isolates formatter failures: a panicking Format falls back to
// the raw cell text.
func (m *TableModule[R]) renderCell(f *Formatter, col Column[R], row R) (text string) {
	defer func() {
		if r := recover(); r != nil {
			raw, _ := m.value(row, col.Key)
			text = CellToText(raw)
			slog.Warn("cell render failed",
				"table", m.info.Key,
				"column", col.Key,
				"row", m.rowID(row),
				"panic", r,
			)
		}
	}()

	if col.Format == nil {
		raw, _ := m.value(row, col.Key)
		return CellToText(raw)
	}
	return col.Format(f, row)
}

// cellTone falls back to ToneNone when Tone panics.
func (m *TableModule[R]) cellTone(col Column[R], row R) (tone Tone) {
	if col.Tone == nil {
		return ToneNone
	}
	defer func() {
		if r := recover(); r != nil {
			tone = ToneNone
			slog.Warn("cell tone failed",
				"table", m.info.Key,
				"column", col.Key,
				"row", m.rowID(row),
				"panic", r,
			)
		}
	}()
	return col.Tone(row)
}

func (m *TableModule[R]) column(key string) (Column[R], bool) {
	for _, c := range m.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

func (m *TableModule[R]) sortable(key string) bool {
	c, ok := m.column(key)
	if !ok {
		return false
	}
	if c.Value != nil {
		return true
	}
	var zero R
	_, ok = m.value(zero, key)
	return ok
}

// sortValue treats a panicking Value as a null key, which sorts last.
func (m *TableModule[R]) sortValue(row R, key string) (v any, ok bool) {
	c, found := m.column(key)
	if !found || c.Value == nil {
		return m.value(row, key)
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, true
			slog.Warn("sort value failed",
				"table", m.info.Key,
				"column", key,
				"row", m.rowID(row),
				"panic", r,
			)
		}
	}()
	return c.Value(row), true
}
