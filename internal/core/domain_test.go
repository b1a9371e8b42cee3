package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -50}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:      Money{Cents: 1250},
		Description: "groceries",
		Category:    CategoryFood,
		Date:        date(2025, 3, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	recurring := good
	recurring.IsRecurring = true
	recurring.RecurringInterval = Monthly
	if err := recurring.Validate(); err != nil {
		t.Fatalf("expected ok for recurring, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Expense)
		want error
	}{
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"empty description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
		{"unknown category", func(e *Expense) { e.Category = "pets" }, ErrInvalidCategory},
		{"zero date", func(e *Expense) { e.Date = time.Time{} }, ErrZeroDate},
		{"recurring without interval", func(e *Expense) { e.IsRecurring = true }, ErrMissingInterval},
		{"recurring bad interval", func(e *Expense) {
			e.IsRecurring = true
			e.RecurringInterval = "fortnightly"
		}, ErrMissingInterval},
		{"interval without flag", func(e *Expense) { e.RecurringInterval = Weekly }, ErrStrayInterval},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := good
			tc.mut(&e)
			if err := e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	long := good
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for 201-char description")
	}
	exact := good
	exact.Description = strings.Repeat("x", 200)
	if err := exact.Validate(); err != nil {
		t.Fatalf("200-char description should pass, got %v", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		Category:  CategoryHousing,
		Amount:    Money{Cents: 100000},
		Period:    PeriodMonthly,
		StartDate: date(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zero := good
	zero.Amount = Money{}
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v", err)
	}

	badPeriod := good
	badPeriod.Period = "quarterly"
	if err := badPeriod.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("bad period: got %v", err)
	}

	end := date(2024, 12, 31)
	inverted := good
	inverted.EndDate = &end
	if err := inverted.Validate(); err == nil {
		t.Fatalf("expected error when end date precedes start date")
	}
}

func TestBudgetActiveAt(t *testing.T) {
	now := date(2025, 6, 15)
	open := Budget{StartDate: date(2025, 1, 1)}
	if !open.ActiveAt(now) {
		t.Fatalf("budget without end date should be active")
	}

	past := date(2025, 6, 1)
	expired := Budget{StartDate: date(2025, 1, 1), EndDate: &past}
	if expired.ActiveAt(now) {
		t.Fatalf("budget with past end date should be inactive")
	}

	future := date(2025, 12, 31)
	running := Budget{StartDate: date(2025, 1, 1), EndDate: &future}
	if !running.ActiveAt(now) {
		t.Fatalf("budget with future end date should be active")
	}

	// End date equal to now counts as still active.
	today := Budget{StartDate: date(2025, 1, 1), EndDate: &now}
	if !today.ActiveAt(now) {
		t.Fatalf("budget ending today should still be active")
	}
}

func TestRecurringIntervalValid(t *testing.T) {
	for _, ri := range []RecurringInterval{Daily, Weekly, Monthly, Yearly} {
		if !ri.Valid() {
			t.Fatalf("%s should be valid", ri)
		}
	}
	if RecurringInterval("").Valid() || RecurringInterval("hourly").Valid() {
		t.Fatalf("unknown intervals should be invalid")
	}
}

func TestBudgetPeriodValid(t *testing.T) {
	for _, p := range []BudgetPeriod{PeriodWeekly, PeriodMonthly, PeriodYearly} {
		if !p.Valid() {
			t.Fatalf("%s should be valid", p)
		}
	}
	if BudgetPeriod("daily").Valid() {
		t.Fatalf("daily is not a budget period")
	}
}
