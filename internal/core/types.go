package core

// TableInfo contains display information about a table.
type TableInfo struct {
	Key         string `json:"key"`         // Unique identifier: "vendors"
	Group       string `json:"group"`       // Navigation group: "Overview", "Payments", "Monitoring"
	Label       string `json:"label"`       // Display name: "Vendors"
	Description string `json:"description"` // One-line summary shown above the table
	FileBase    string `json:"fileBase"`    // Export filename without extension
}

// ColumnMeta is the type-erased description of a rendered column.
type ColumnMeta struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Hideable bool   `json:"hideable"`
	Sortable bool   `json:"sortable"`
}

// AxisOption is one selectable bucket of a categorical axis.
type AxisOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AxisMeta is the type-erased description of a categorical filter axis.
type AxisMeta struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Options []AxisOption `json:"options"`
}

// AxisAll is the selection that passes every row.
const AxisAll = "all"

// SortSpec represents a single sort column and direction.
type SortSpec struct {
	Column string `json:"column"`
	Dir    string `json:"dir"` // "asc" or "desc"
}

// MaxSortKeys bounds the number of sort keys honoured per query.
const MaxSortKeys = 2

// Toggles maps row id to an overridden enabled state.
type Toggles map[string]bool

// Query describes one table request. Zero value means: all rows, source
// order, first page of DefaultPageSize.
type Query struct {
	Search   string            // Free-text search; normalized before matching
	Axes     map[string]string // Axis key to selected bucket; "" or "all" passes
	Sort     []SortSpec        // Up to MaxSortKeys, first wins
	Page     int               // 1-based
	PageSize int
	Toggles  Toggles // View overlay for toggleable tables
}

// Tone classifies a cell for badge colouring.
type Tone string

const (
	ToneNone     Tone = ""
	TonePositive Tone = "positive"
	ToneWarning  Tone = "warning"
	ToneNegative Tone = "negative"
	ToneMuted    Tone = "muted"
)

// Cell is one formatted table cell.
type Cell struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Tone Tone   `json:"tone,omitempty"`
}

// RowView is a rendered row.
type RowView struct {
	ID      string `json:"id"`
	Cells   []Cell `json:"cells"`
	Enabled *bool  `json:"enabled,omitempty"` // Set only on toggleable tables
}

// TableData is the result of a table query.
type TableData struct {
	Info       TableInfo    `json:"info"`
	Columns    []ColumnMeta `json:"columns"`
	Axes       []AxisMeta   `json:"axes"`
	ToggleName string       `json:"toggleName,omitempty"`
	Rows       []RowView    `json:"rows"`
	Records    []any        `json:"records"` // Raw rows of the page, overlay applied
	Total      int          `json:"total"`   // Rows after filtering
	SourceRows int          `json:"sourceRows"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
	Sort       []SortSpec   `json:"sort,omitempty"`
}

// HasToggle reports whether the rows carry an enabled switch.
func (d TableData) HasToggle() bool {
	return d.ToggleName != ""
}
