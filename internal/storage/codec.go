package storage

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// Snapshot payloads are flat JSON records. Dates travel as ISO-8601
// (RFC 3339) strings so they round-trip as instants; everything else is
// stored as plain string/number/boolean.

type expenseRecord struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	AmountCents       int64  `json:"amount_cents"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Date              string `json:"date"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurringInterval string `json:"recurring_interval,omitempty"`
}

type budgetRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Period      string `json:"period"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
}

func encodeExpenses(expenses []core.Expense) ([]byte, error) {
	records := make([]expenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = expenseRecord{
			ID:                e.ID,
			UserID:            e.UserID,
			AmountCents:       e.Amount.Cents,
			Description:       e.Description,
			Category:          string(e.Category),
			Date:              e.Date.Format(time.RFC3339),
			IsRecurring:       e.IsRecurring,
			RecurringInterval: string(e.RecurringInterval),
		}
	}
	return json.Marshal(records)
}

func decodeExpenses(payload []byte) ([]core.Expense, error) {
	var records []expenseRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	expenses := make([]core.Expense, len(records))
	for i, r := range records {
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return nil, err
		}
		expenses[i] = core.Expense{
			ID:                r.ID,
			UserID:            r.UserID,
			Amount:            core.Money{Cents: r.AmountCents},
			Description:       r.Description,
			Category:          core.Category(r.Category),
			Date:              date,
			IsRecurring:       r.IsRecurring,
			RecurringInterval: core.RecurringInterval(r.RecurringInterval),
		}
	}
	return expenses, nil
}

func encodeBudgets(budgets []core.Budget) ([]byte, error) {
	records := make([]budgetRecord, len(budgets))
	for i, b := range budgets {
		r := budgetRecord{
			ID:          b.ID,
			UserID:      b.UserID,
			Category:    string(b.Category),
			AmountCents: b.Amount.Cents,
			Period:      string(b.Period),
			StartDate:   b.StartDate.Format(time.RFC3339),
		}
		if b.EndDate != nil {
			r.EndDate = b.EndDate.Format(time.RFC3339)
		}
		records[i] = r
	}
	return json.Marshal(records)
}

func decodeBudgets(payload []byte) ([]core.Budget, error) {
	var records []budgetRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	budgets := make([]core.Budget, len(records))
	for i, r := range records {
		start, err := time.Parse(time.RFC3339, r.StartDate)
		if err != nil {
			return nil, err
		}
		b := core.Budget{
			ID:        r.ID,
			UserID:    r.UserID,
			Category:  core.Category(r.Category),
			Amount:    core.Money{Cents: r.AmountCents},
			Period:    core.BudgetPeriod(r.Period),
			StartDate: start,
		}
		if r.EndDate != "" {
			end, err := time.Parse(time.RFC3339, r.EndDate)
			if err != nil {
				return nil, err
			}
			b.EndDate = &end
		}
		budgets[i] = b
	}
	return budgets, nil
}
