package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Daily   RecurringInterval = "daily"
	Weekly  RecurringInterval = "weekly"
	Monthly RecurringInterval = "monthly"
	Yearly  RecurringInterval = "yearly"
)

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

type (
	// RecurringInterval is the repetition cadence of a recurring expense.
	RecurringInterval string

	// BudgetPeriod is the time window a budget amount applies to.
	BudgetPeriod string

	Money struct {
		Cents int64
	}

	// Expense is a single recorded spend. RecurringInterval is set iff
	// IsRecurring is true.
	Expense struct {
		ID                string
		UserID            string
		Amount            Money
		Description       string
		Category          Category
		Date              time.Time
		IsRecurring       bool
		RecurringInterval RecurringInterval
	}

	// Budget is a per-category spending cap. EndDate nil means the budget
	// has no expiry; a budget is active while EndDate is unset or in the
	// future.
	Budget struct {
		ID        string
		UserID    string
		Category  Category
		Amount    Money
		Period    BudgetPeriod
		StartDate time.Time
		EndDate   *time.Time
	}

	// ExpenseUpdate is a partial update; nil fields are left unchanged.
	ExpenseUpdate struct {
		Amount            *Money
		Description       *string
		Category          *Category
		Date              *time.Time
		IsRecurring       *bool
		RecurringInterval *RecurringInterval
	}

	// BudgetUpdate is a partial update; nil fields are left unchanged.
	// EndDate uses a double pointer so callers can distinguish "leave as
	// is" (nil) from "clear the end date" (pointer to nil).
	BudgetUpdate struct {
		Category  *Category
		Amount    *Money
		Period    *BudgetPeriod
		StartDate *time.Time
		EndDate   **time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidInterval  = errors.New("invalid recurring interval")
	ErrMissingInterval  = errors.New("recurring expense requires an interval")
	ErrStrayInterval    = errors.New("interval set on non-recurring expense")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrZeroDate         = errors.New("date cannot be zero")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (ri RecurringInterval) Valid() bool {
	switch ri {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Validate checks the caller-side invariants for an expense. The store
// never calls this: validation is the responsibility of whoever invokes
// the mutation API.
func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if e.IsRecurring {
		if !e.RecurringInterval.Valid() {
			return ErrMissingInterval
		}
	} else if e.RecurringInterval != "" {
		return ErrStrayInterval
	}
	return nil
}

// Validate checks the caller-side invariants for a budget. A positive
// amount is required here so that progress percentages can never divide
// by zero downstream.
func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	if b.StartDate.IsZero() {
		return ErrZeroDate
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return errors.New("end date must not be before start date")
	}
	return nil
}

// ActiveAt reports whether the budget is active at the given instant:
// no end date, or an end date on/after it.
func (b Budget) ActiveAt(now time.Time) bool {
	return b.EndDate == nil || !b.EndDate.Before(now)
}
