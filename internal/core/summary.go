package core

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// RecentAlertLimit is the number of open alerts shown on the dashboard.
const RecentAlertLimit = 5

// SummaryInput is the source data for the dashboard cards.
type SummaryInput struct {
	Vendors      []schema.Vendor
	Accounts     []schema.Account
	Transactions []schema.Transaction
	Contracts    []schema.Contract
	AlertHistory []schema.AlertHistoryEntry
}

// Summary holds the dashboard totals. Money sums use decimal arithmetic so
// card values do not drift with float rounding.
type Summary struct {
	TotalFeesMtd     decimal.Decimal            `json:"totalFeesMtd"`
	FeeVariance      decimal.Decimal            `json:"feeVariance"`
	ActiveContracts  int                        `json:"activeContracts"`
	TransactionCount int64                      `json:"transactionCount"`
	OpenAlerts       int                        `json:"openAlerts"`
	RecentAlerts     []schema.AlertHistoryEntry `json:"recentAlerts"`
}

// ComputeSummary derives the dashboard totals.
func ComputeSummary(in SummaryInput) Summary {
	var s Summary

	for _, v := range in.Vendors {
		s.TotalFeesMtd = s.TotalFeesMtd.Add(decimal.NewFromFloat(v.FeeMtd))
	}

	for _, t := range in.Transactions {
		if t.VarianceUsd.Valid {
			s.FeeVariance = s.FeeVariance.Add(decimal.NewFromFloat(t.VarianceUsd.Float64).Abs())
		}
	}

	for _, c := range in.Contracts {
		if Normalize(c.Status) == "active" {
			s.ActiveContracts++
		}
	}

	for _, a := range in.Accounts {
		s.TransactionCount += a.Transactions
	}

	var open []schema.AlertHistoryEntry
	for _, e := range in.AlertHistory {
		if Normalize(e.Status) == "open" {
			open = append(open, e)
		}
	}
	s.OpenAlerts = len(open)

	// Newest first; unparseable timestamps sink to the end in source order.
	slices.SortStableFunc(open, func(a, b schema.AlertHistoryEntry) int {
		ta, okA := ParseDate(a.Triggered)
		tb, okB := ParseDate(b.Triggered)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	if len(open) > RecentAlertLimit {
		open = open[:RecentAlertLimit]
	}
	s.RecentAlerts = open

	return s
}

// CompactNumber renders large counts the way the dashboard cards do:
// 1200000 -> "1.2M", 950 -> "950".
func CompactNumber(n int64) string {
	return strings.ReplaceAll(humanize.SIWithDigits(float64(n), 1, ""), " ", "")
}

// RelativeTime renders a timestamp relative to now ("2 hours ago").
// Unparseable input is returned verbatim.
func RelativeTime(s string, now time.Time) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
