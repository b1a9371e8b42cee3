package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpenseSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := []core.Expense{
		{
			ID:          "e1",
			UserID:      "alice",
			Amount:      core.Money{Cents: 1234},
			Description: "groceries",
			Category:    core.CategoryFood,
			Date:        date(2025, 3, 10),
		},
		{
			ID:                "e2",
			UserID:            "alice",
			Amount:            core.Money{Cents: 99900},
			Description:       "rent",
			Category:          core.CategoryHousing,
			Date:              date(2025, 3, 1),
			IsRecurring:       true,
			RecurringInterval: core.Monthly,
		},
	}
	if err := s.SaveExpenses(ctx, "alice", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadExpenses(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d records, want 2", len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID ||
			out[i].Amount != in[i].Amount ||
			out[i].Description != in[i].Description ||
			out[i].Category != in[i].Category ||
			out[i].IsRecurring != in[i].IsRecurring ||
			out[i].RecurringInterval != in[i].RecurringInterval {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, out[i], in[i])
		}
		if !out[i].Date.Equal(in[i].Date) {
			t.Fatalf("record %d date %v vs %v", i, out[i].Date, in[i].Date)
		}
	}
}

func TestBudgetSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	end := date(2025, 12, 31)
	in := []core.Budget{
		{
			ID:        "b1",
			UserID:    "alice",
			Category:  core.CategoryFood,
			Amount:    core.Money{Cents: 50000},
			Period:    core.PeriodMonthly,
			StartDate: date(2025, 1, 1),
		},
		{
			ID:        "b2",
			UserID:    "alice",
			Category:  core.CategoryTravel,
			Amount:    core.Money{Cents: 200000},
			Period:    core.PeriodYearly,
			StartDate: date(2025, 1, 1),
			EndDate:   &end,
		},
	}
	if err := s.SaveBudgets(ctx, "alice", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadBudgets(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d records, want 2", len(out))
	}
	if out[0].EndDate != nil {
		t.Fatalf("open-ended budget came back with an end date")
	}
	if out[1].EndDate == nil || !out[1].EndDate.Equal(end) {
		t.Fatalf("end date lost: %+v", out[1].EndDate)
	}
	if out[1].Period != core.PeriodYearly || out[1].Amount.Cents != 200000 {
		t.Fatalf("budget fields mismatch: %+v", out[1])
	}
}

func TestLoadMissingUserReturnsNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	expenses, err := s.LoadExpenses(ctx, "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if expenses != nil {
		t.Fatalf("missing user should yield nil, got %v", expenses)
	}
	budgets, err := s.LoadBudgets(ctx, "nobody")
	if err != nil || budgets != nil {
		t.Fatalf("missing user budgets: %v, %v", budgets, err)
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []core.Expense{
		{ID: "e1", UserID: "alice", Description: "old", Date: date(2025, 1, 1)},
		{ID: "e2", UserID: "alice", Description: "old too", Date: date(2025, 1, 2)},
	}
	if err := s.SaveExpenses(ctx, "alice", first); err != nil {
		t.Fatal(err)
	}
	second := []core.Expense{
		{ID: "e3", UserID: "alice", Description: "new", Date: date(2025, 1, 3)},
	}
	if err := s.SaveExpenses(ctx, "alice", second); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadExpenses(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "e3" {
		t.Fatalf("snapshot not replaced: %+v", out)
	}
}

func TestSnapshotsIsolatedByUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveExpenses(ctx, "alice", []core.Expense{
		{ID: "ea", UserID: "alice", Date: date(2025, 1, 1)},
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveExpenses(ctx, "bob", []core.Expense{
		{ID: "eb", UserID: "bob", Date: date(2025, 1, 1)},
	}); err != nil {
		t.Fatal(err)
	}

	alice, _ := s.LoadExpenses(ctx, "alice")
	bob, _ := s.LoadExpenses(ctx, "bob")
	if len(alice) != 1 || alice[0].ID != "ea" {
		t.Fatalf("alice snapshot: %+v", alice)
	}
	if len(bob) != 1 || bob[0].ID != "eb" {
		t.Fatalf("bob snapshot: %+v", bob)
	}
}

func TestExpenseAndBudgetBlobsIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveExpenses(ctx, "alice", []core.Expense{
		{ID: "e1", UserID: "alice", Date: date(2025, 1, 1)},
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBudgets(ctx, "alice", nil); err != nil {
		t.Fatal(err)
	}

	expenses, err := s.LoadExpenses(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 {
		t.Fatalf("budget save disturbed the expense blob: %+v", expenses)
	}
	budgets, err := s.LoadBudgets(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 0 {
		t.Fatalf("empty budget snapshot should load empty, got %+v", budgets)
	}
}
