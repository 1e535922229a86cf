package core

import (
	"encoding/csv"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
)

type csvRow struct {
	Name    string        `json:"name"`
	Amount  float64       `json:"amount"`
	Fee     pgtype.Float8 `json:"fee"`
	Count   int64         `json:"count"`
	Alerts  pgtype.Int8   `json:"alerts"`
	Renewal pgtype.Text   `json:"renewal"`
	Tags    []string      `json:"tags"`
	Skipped string        `json:"-"`
}

func TestCellToText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string verbatim", "  Acme  ", "  Acme  "},
		{"integer float has no decimal point", 100.0, "100"},
		{"float shortest form", 1234.5, "1234.5"},
		{"negative float", -0.25, "-0.25"},
		{"large float has no exponent", 12500000.0, "12500000"},
		{"NaN is empty", math.NaN(), ""},
		{"int64", int64(42), "42"},
		{"int", 7, "7"},
		{"bool", true, "true"},
		{"null float8", pgtype.Float8{}, ""},
		{"valid float8", pgtype.Float8{Float64: 0.5, Valid: true}, "0.5"},
		{"null int8", pgtype.Int8{}, ""},
		{"valid int8", pgtype.Int8{Int64: 3, Valid: true}, "3"},
		{"null text", pgtype.Text{}, ""},
		{"valid text", pgtype.Text{String: "Auto", Valid: true}, "Auto"},
		{"string list", []string{"Email", "Slack"}, "Email,Slack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellToText(tt.input); got != tt.want {
				t.Errorf("CellToText(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeCSVCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"", ""},
		{" leading space", " leading space"},
		{"Acme, Inc.", `"Acme, Inc."`},
		{`He said "hi"`, `"He said ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"carriage\rreturn", "\"carriage\rreturn\""},
	}

	for _, tt := range tests {
		if got := EscapeCSVCell(tt.input); got != tt.want {
			t.Errorf("EscapeCSVCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToCSV(t *testing.T) {
	rows := []csvRow{
		{Name: "Acme, Inc.", Amount: 1234.5, Fee: pgtype.Float8{Float64: 1.25, Valid: true}, Count: 3, Tags: []string{"a", "b"}},
		{Name: `He said "hi"`, Amount: 100, Count: 0, Alerts: pgtype.Int8{Int64: 2, Valid: true}, Renewal: pgtype.Text{String: "Auto", Valid: true}},
	}
	keys := []string{"name", "amount", "fee", "count", "alerts", "renewal", "tags"}

	got := ToCSV(rows, keys, JSONFields[csvRow]())
	want := strings.Join([]string{
		"name,amount,fee,count,alerts,renewal,tags",
		`"Acme, Inc.",1234.5,1.25,3,,,"a,b"`,
		`"He said ""hi""",100,,0,2,Auto,`,
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToCSV() mismatch (-want +got):\n%s", diff)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("ToCSV() output should not end with a newline")
	}
}

func TestToCSVHeaderOnly(t *testing.T) {
	got := ToCSV([]csvRow(nil), []string{"name", "amount"}, JSONFields[csvRow]())
	if got != "name,amount" {
		t.Errorf("ToCSV(no rows) = %q, want %q", got, "name,amount")
	}
}

// A standard CSV reader must recover the original cell values.
func TestToCSVRoundTrip(t *testing.T) {
	rows := []csvRow{
		{Name: "Acme, Inc."},
		{Name: `He said "hi"`},
		{Name: "multi\nline"},
	}

	out := ToCSV(rows, []string{"name"}, JSONFields[csvRow]())
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("csv.ReadAll() error = %v", err)
	}

	got := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		got = append(got, rec[0])
	}
	want := []string{"Acme, Inc.", `He said "hi"`, "multi\nline"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFields(t *testing.T) {
	value := JSONFields[csvRow]()
	row := csvRow{Name: "x", Skipped: "hidden"}

	if v, ok := value(row, "name"); !ok || v != "x" {
		t.Errorf("value(name) = %v, %v; want x, true", v, ok)
	}
	if _, ok := value(row, "Skipped"); ok {
		t.Error(`value("Skipped") should be unknown for json:"-" fields`)
	}
	if _, ok := value(row, "missing"); ok {
		t.Error("value(missing) should be unknown")
	}

	if got := missingFields(value, []string{"name", "nope", "fee"}); !cmp.Equal(got, []string{"nope"}) {
		t.Errorf("missingFields() = %v, want [nope]", got)
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input    string
		want     ExportFormat
		wantErr  bool
		filename string
	}{
		{"", ExportCSV, false, "vendors.csv"},
		{"csv", ExportCSV, false, "vendors.csv"},
		{"CSV", ExportCSV, false, "vendors.csv"},
		{"excel", ExportExcel, false, "vendors.xls"},
		{"xls", ExportExcel, false, "vendors.xls"},
		{"pdf", ExportFormat{}, true, ""},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseExportFormat(%q) error = %v, want ErrUnsupportedFormat", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseExportFormat(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseExportFormat(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
		if fn := got.Filename("vendors"); fn != tt.filename {
			t.Errorf("Filename() = %q, want %q", fn, tt.filename)
		}
	}
}
