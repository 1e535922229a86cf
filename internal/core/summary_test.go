package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/vendorboard/internal/schema"
)

func TestComputeSummary(t *testing.T) {
	in := SummaryInput{
		Vendors: []schema.Vendor{
			{ID: "v1", FeeMtd: 0.1},
			{ID: "v2", FeeMtd: 0.2},
		},
		Accounts: []schema.Account{
			{ID: "a1", Transactions: 1000},
			{ID: "a2", Transactions: 250},
		},
		Transactions: []schema.Transaction{
			{ID: "t1", VarianceUsd: pgtype.Float8{Float64: -1.5, Valid: true}},
			{ID: "t2", VarianceUsd: pgtype.Float8{Float64: 2, Valid: true}},
			{ID: "t3"},
		},
		Contracts: []schema.Contract{
			{ID: "c1", Status: "Active"},
			{ID: "c2", Status: "Expired"},
			{ID: "c3", Status: " active "},
		},
		AlertHistory: []schema.AlertHistoryEntry{
			{Title: "a", Triggered: "2025-01-10T08:00:00Z", Status: "Open"},
			{Title: "b", Triggered: "2025-01-12T08:00:00Z", Status: "Resolved"},
			{Title: "c", Triggered: "2025-01-14T08:00:00Z", Status: "Open"},
			{Title: "d", Triggered: "yesterday", Status: "Open"},
		},
	}

	s := ComputeSummary(in)

	if !s.TotalFeesMtd.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("TotalFeesMtd = %s, want 0.3", s.TotalFeesMtd)
	}
	if !s.FeeVariance.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("FeeVariance = %s, want 3.5", s.FeeVariance)
	}
	if s.ActiveContracts != 2 {
		t.Errorf("ActiveContracts = %d, want 2", s.ActiveContracts)
	}
	if s.TransactionCount != 1250 {
		t.Errorf("TransactionCount = %d, want 1250", s.TransactionCount)
	}
	if s.OpenAlerts != 3 {
		t.Errorf("OpenAlerts = %d, want 3", s.OpenAlerts)
	}

	titles := make([]string, len(s.RecentAlerts))
	for i, a := range s.RecentAlerts {
		titles[i] = a.Title
	}
	if diff := cmp.Diff([]string{"c", "a", "d"}, titles); diff != "" {
		t.Errorf("RecentAlerts mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeSummaryLimitsRecentAlerts(t *testing.T) {
	var history []schema.AlertHistoryEntry
	for i := 0; i < 8; i++ {
		history = append(history, schema.AlertHistoryEntry{Title: string(rune('a' + i)), Triggered: "2025-01-01", Status: "Open"})
	}

	s := ComputeSummary(SummaryInput{AlertHistory: history})
	if len(s.RecentAlerts) != RecentAlertLimit {
		t.Errorf("len(RecentAlerts) = %d, want %d", len(s.RecentAlerts), RecentAlertLimit)
	}
	if s.OpenAlerts != 8 {
		t.Errorf("OpenAlerts = %d, want 8", s.OpenAlerts)
	}
}

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1.5k"},
		{1200000, "1.2M"},
	}

	for _, tt := range tests {
		if got := CompactNumber(tt.input); got != tt.want {
			t.Errorf("CompactNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)

	if got := RelativeTime("2025-01-14T10:00:00Z", now); got != "2 hours ago" {
		t.Errorf("RelativeTime() = %q, want %q", got, "2 hours ago")
	}
	if got := RelativeTime("soon", now); got != "soon" {
		t.Errorf("RelativeTime(soon) = %q, want verbatim", got)
	}
}
