// Package fixtures loads the static data the dashboard renders.
//
// The default data set is embedded in the binary. A directory with the same
// file names can replace it at startup (FIXTURES_DIR). Data is read once and
// never written back.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

//go:embed data/*.json
var embedded embed.FS

// Fixture file names, relative to the data root.
const (
	VendorsFile      = "vendors.json"
	AccountsFile     = "accounts.json"
	TransactionsFile = "transactions.json"
	ContractsFile    = "contracts.json"
	AlertRulesFile   = "alert_rules.json"
	AlertHistoryFile = "alert_history.json"
)

// Set is one complete fixture data set.
type Set struct {
	Vendors      []schema.Vendor
	Accounts     []schema.Account
	Transactions []schema.Transaction
	Contracts    []schema.Contract
	AlertRules   []schema.AlertRule
	AlertHistory []schema.AlertHistoryEntry
}

// Embedded returns the data root compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// Load reads every fixture file from fsys.
func Load(fsys fs.FS) (*Set, error) {
	var (
		set Set
		err error
	)

	if set.Vendors, err = decodeFile[schema.Vendor](fsys, VendorsFile); err != nil {
		return nil, err
	}
	if set.Accounts, err = decodeFile[schema.Account](fsys, AccountsFile); err != nil {
		return nil, err
	}
	if set.Transactions, err = decodeFile[schema.Transaction](fsys, TransactionsFile); err != nil {
		return nil, err
	}
	if set.Contracts, err = decodeFile[schema.Contract](fsys, ContractsFile); err != nil {
		return nil, err
	}
	if set.AlertRules, err = decodeFile[schema.AlertRule](fsys, AlertRulesFile); err != nil {
		return nil, err
	}
	if set.AlertHistory, err = decodeFile[schema.AlertHistoryEntry](fsys, AlertHistoryFile); err != nil {
		return nil, err
	}

	return &set, nil
}

// LoadDir reads fixtures from dir, or the embedded set when dir is empty.
func LoadDir(dir string) (*Set, error) {
	if dir == "" {
		return Load(Embedded())
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixtures dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures dir %s: not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// decodeFile decodes one JSON array of rows. Unknown keys are rejected so a
// typo in a fixture shows up at startup instead of as an empty column.
func decodeFile[T any](fsys fs.FS, name string) ([]T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(NewSanitizingReader(f))
	dec.DisallowUnknownFields()

	var rows []T
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidFixture, name, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: trailing data after array", core.ErrInvalidFixture, name)
	}

	return rows, nil
}

// NewSanitizingReader strips a leading UTF-8 byte order mark and replaces
// invalid UTF-8 with U+FFFD, so files saved by spreadsheet tools decode.
func NewSanitizingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}
