package fixtures

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JonMunkholm/vendorboard/internal/core"
)

func TestLoadEmbedded(t *testing.T) {
	set, err := Load(Embedded())
	if err != nil {
		t.Fatalf("Load(Embedded()) error = %v", err)
	}

	counts := map[string]int{
		"vendors":       len(set.Vendors),
		"accounts":      len(set.Accounts),
		"transactions":  len(set.Transactions),
		"contracts":     len(set.Contracts),
		"alert_rules":   len(set.AlertRules),
		"alert_history": len(set.AlertHistory),
	}
	for name, n := range counts {
		if n == 0 {
			t.Errorf("%s: no rows loaded", name)
		}
	}

	// Spot-check nullable decoding.
	if set.Vendors[1].FeeLeakage.Valid {
		t.Error("vendors[1].feeLeakage should decode null as invalid")
	}
	if !set.Vendors[0].FeeLeakage.Valid || set.Vendors[0].FeeLeakage.Float64 != 1240.5 {
		t.Errorf("vendors[0].feeLeakage = %+v, want 1240.5", set.Vendors[0].FeeLeakage)
	}
	if !set.AlertRules[0].Vendors.IsAll() {
		t.Errorf("alert_rules[0].Vendors = %v, want All Vendors", set.AlertRules[0].Vendors)
	}
	if got := set.AlertRules[1].Vendors.String(); got != "Adyen, Checkout.com" {
		t.Errorf("alert_rules[1].Vendors = %q", got)
	}
}

func TestLoadDirEmptyUsesEmbedded(t *testing.T) {
	set, err := LoadDir("")
	if err != nil {
		t.Fatalf("LoadDir(\"\") error = %v", err)
	}
	if len(set.Vendors) == 0 {
		t.Error("LoadDir(\"\") returned no vendors")
	}
}

func TestLoadDirOverride(t *testing.T) {
	dir := t.TempDir()
	src := Embedded()

	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		b, err := fs.ReadFile(src, e.Name())
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", e.Name(), err)
		}
		if e.Name() == VendorsFile {
			b = []byte(`[{"id": "only", "vendor": "Solo", "category": "Bank", "status": "Active", "accounts": 1, "volumeMtd": 1, "feeMtd": 1, "feeLeakage": null, "slaBreaches": 0, "alerts": null, "score": 99}]`)
		}
		writeFile(t, dir, e.Name(), b)
	}

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(set.Vendors) != 1 || set.Vendors[0].Vendor != "Solo" {
		t.Errorf("LoadDir() vendors = %+v, want the override", set.Vendors)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(t.TempDir() + "/nope"); err == nil {
		t.Error("LoadDir(missing) should fail")
	}
}

func TestDecodeFile(t *testing.T) {
	type row struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"plain array", `[{"id": "a", "name": "x"}]`, 1, false},
		{"leading BOM", "\xEF\xBB\xBF" + `[{"id": "a"}, {"id": "b"}]`, 2, false},
		{"empty array", `[]`, 0, false},
		{"syntax error", `[{"id": }]`, 0, true},
		{"unknown key", `[{"id": "a", "nmae": "typo"}]`, 0, true},
		{"not an array", `{"id": "a"}`, 0, true},
		{"trailing data", `[] []`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"rows.json": {Data: []byte(tt.content)}}
			rows, err := decodeFile[row](fsys, "rows.json")
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidFixture) {
					t.Errorf("decodeFile() error = %v, want ErrInvalidFixture", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeFile() error = %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("decodeFile() rows = %d, want %d", len(rows), tt.want)
			}
		})
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := decodeFile[struct{}](fstest.MapFS{}, "absent.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("decodeFile(absent) error = %v, want fs.ErrNotExist", err)
	}
}

func TestSanitizingReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no BOM", "hello", "hello"},
		{"BOM stripped", "\xEF\xBB\xBFhello", "hello"},
		{"only BOM", "\xEF\xBB\xBF", ""},
		{"invalid byte replaced", "caf\xE9", "caf�"},
		{"valid multibyte kept", "Nación", "Nación"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewSanitizingReader(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}
