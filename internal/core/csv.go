package core

// csv.go serializes filtered rows into CSV text.
//
// A cell is quoted only when it contains a double quote, a comma or a line
// break. encoding/csv also quotes leading spaces, so it is not used here.

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ExportFormat describes how an export is packaged for download.
type ExportFormat struct {
	Name      string // Query parameter value: "csv", "excel"
	Extension string // Filename extension including the dot
	MIMEType  string
}

var (
	// ExportCSV is plain CSV.
	ExportCSV = ExportFormat{Name: "csv", Extension: ".csv", MIMEType: "text/csv;charset=utf-8"}

	// ExportExcel serves the same CSV bytes under an .xls name so Excel opens
	// it directly. There is no spreadsheet binary format involved.
	ExportExcel = ExportFormat{Name: "excel", Extension: ".xls", MIMEType: "application/vnd.ms-excel;charset=utf-8"}
)

// ParseExportFormat resolves a format name. Empty means CSV.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "csv":
		return ExportCSV, nil
	case "excel", "xls":
		return ExportExcel, nil
	default:
		return ExportFormat{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Filename returns base + extension, e.g. "accounts.xls".
func (f ExportFormat) Filename(base string) string {
	return base + f.Extension
}

// ExportFile is a ready-to-download export.
type ExportFile struct {
	ID       string
	Filename string
	MIMEType string
	Rows     int
	Body     []byte
}

// CellToText renders a raw field value for CSV. Nil and null-valued fields
// become "", numbers render as plain digits with no locale formatting.
func CellToText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case pgtype.Float8:
		if !val.Valid {
			return ""
		}
		return formatFloat(val.Float64)
	case pgtype.Int8:
		if !val.Valid {
			return ""
		}
		return strconv.FormatInt(val.Int64, 10)
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprint(val)
	}
}

// formatFloat prints the shortest representation that round-trips,
// without exponent for ordinary magnitudes: 1234.5 -> "1234.5", 100 -> "100".
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EscapeCSVCell quotes text when it contains a double quote, comma or line
// break, doubling any internal quotes. Other text is returned unchanged.
func EscapeCSVCell(text string) string {
	if !strings.ContainsAny(text, "\",\n\r") {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

// FieldValue returns the raw value of the field named key.
type FieldValue[R any] func(row R, key string) (any, bool)

// ToCSV renders rows with a header of the literal field keys. Lines are
// joined with "\n" and there is no trailing newline.
func ToCSV[R any](rows []R, keys []string, value FieldValue[R]) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = WriteCSV(&b, rows, keys, value)
	return b.String()
}

// WriteCSV streams the same output as ToCSV to w.
func WriteCSV[R any](w io.Writer, rows []R, keys []string, value FieldValue[R]) error {
	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = EscapeCSVCell(k)
	}
	if _, err := io.WriteString(w, strings.Join(header, ",")); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	cells := make([]string, len(keys))
	for n, row := range rows {
		for i, k := range keys {
			v, _ := value(row, k)
			cells[i] = EscapeCSVCell(CellToText(v))
		}
		if _, err := io.WriteString(w, "\n"+strings.Join(cells, ",")); err != nil {
			return fmt.Errorf("write csv row %d: %w", n+1, err)
		}
	}
	return nil
}
