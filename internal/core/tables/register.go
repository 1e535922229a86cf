// Package tables defines the dashboard tables and registers them with a
// core.Registry.
//
// Tables are built from a fixtures.Set at startup rather than in init so the
// data directory can be overridden at runtime.
package tables

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/fixtures"
)

// Table groups, in sidebar order.
const (
	GroupOverview   = "Overview"
	GroupPayments   = "Payments"
	GroupMonitoring = "Monitoring"
)

// Register builds every table from set and adds it to reg. All tables are
// attempted; the returned error joins every failure.
func Register(reg *core.Registry, set *fixtures.Set) error {
	if set == nil {
		return fmt.Errorf("tables: %w: nil fixture set", core.ErrInvalidFixture)
	}

	return errors.Join(
		registerVendors(reg, set),
		registerAccounts(reg, set),
		registerTransactions(reg, set),
		registerContracts(reg, set),
		registerAlertRules(reg, set),
		registerAlertHistory(reg, set),
	)
}

func registerVendors(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewVendors(set.Vendors)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

func registerAccounts(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewAccounts(set.Accounts)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

func registerTransactions(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewTransactions(set.Transactions)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

func registerContracts(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewContracts(set.Contracts)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

func registerAlertRules(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewAlertRules(set.AlertRules)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

func registerAlertHistory(reg *core.Registry, set *fixtures.Set) error {
	m, err := NewAlertHistory(set.AlertHistory)
	if err != nil {
		return err
	}
	return reg.Register(m)
}

// SummaryInput selects the dashboard card sources from set.
func SummaryInput(set *fixtures.Set) core.SummaryInput {
	return core.SummaryInput{
		Vendors:      set.Vendors,
		Accounts:     set.Accounts,
		Transactions: set.Transactions,
		Contracts:    set.Contracts,
		AlertHistory: set.AlertHistory,
	}
}
