// Package analytics derives aggregate views from snapshots of the store
// collections. Every function is pure: identical inputs and an identical
// "now" produce identical outputs, and nothing here mutates its input.
package analytics

import (
	"time"

	"fintrack/internal/core"
)

const dayFormat = "2006-01-02"

// CategoryTotals maps each category to its summed expense amount.
// Categories with no matching expenses are omitted; callers needing
// zero entries supply the full enumeration themselves.
func CategoryTotals(expenses []core.Expense) map[core.Category]core.Money {
	totals := make(map[core.Category]core.Money)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// TopCategory returns the category with the largest total. Ties break by
// the canonical category order, so the result is deterministic. Returns
// false when totals is empty.
func TopCategory(totals map[core.Category]core.Money) (core.Category, core.Money, bool) {
	var (
		top   core.Category
		max   core.Money
		found bool
	)
	for _, c := range core.Categories() {
		total, ok := totals[c]
		if !ok {
			continue
		}
		if !found || total.Cents > max.Cents {
			top = c
			max = total
			found = true
		}
	}
	return top, max, found
}

// DayTotal is one calendar-day bucket of summed spending.
type DayTotal struct {
	Date  time.Time
	Total core.Money
}

// DailyTotals builds exactly seven calendar-day buckets ending at and
// including today, initialized to zero, and accumulates expense amounts
// by date-only match. Days without spending stay at zero rather than
// being omitted.
func DailyTotals(expenses []core.Expense, today time.Time) []DayTotal {
	days := make([]DayTotal, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i-6)
		days[i] = DayTotal{Date: date}
		index[date.Format(dayFormat)] = i
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.Format(dayFormat)]; ok {
			days[i].Total = days[i].Total.Add(e.Amount)
		}
	}
	return days
}

// AverageDailySpend divides the total amount by the number of distinct
// calendar dates present in the expense set. An empty set yields zero.
func AverageDailySpend(expenses []core.Expense) core.Money {
	if len(expenses) == 0 {
		return core.Money{}
	}
	var total core.Money
	seen := make(map[string]struct{})
	for _, e := range expenses {
		total = total.Add(e.Amount)
		seen[e.Date.Format(dayFormat)] = struct{}{}
	}
	return core.Money{Cents: total.Cents / int64(len(seen))}
}

// BudgetProgress is the derived budget-vs-spend view for one budget.
type BudgetProgress struct {
	Budget    core.Budget
	Spent     core.Money
	Remaining core.Money
	Percent   float64
	Over      bool
}

// ComputeBudgetProgress derives spent/remaining/percent for a budget and
// its category total. Remaining floors at zero and the percentage caps
// at 100. A zero budget amount is undefined here; creation-time
// validation guarantees positive amounts.
func ComputeBudgetProgress(b core.Budget, spent core.Money) BudgetProgress {
	remaining := b.Amount.Sub(spent)
	if remaining.Cents < 0 {
		remaining = core.Money{}
	}
	percent := float64(spent.Cents) / float64(b.Amount.Cents) * 100
	if percent > 100 {
		percent = 100
	}
	return BudgetProgress{
		Budget:    b,
		Spent:     spent,
		Remaining: remaining,
		Percent:   percent,
		Over:      spent.Cents > b.Amount.Cents,
	}
}
