// Package store owns the canonical per-user expense and budget
// collections. It exposes deterministic mutation and read operations and
// synchronizes with the persistence adapter on every change: saves are
// fire-and-forget, so a crash before a save lands can lose the most
// recent mutation. Durability is best effort by contract.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// Persistence is the durable snapshot adapter consumed by the store.
// Load methods return nil when no snapshot exists for the user.
type Persistence interface {
	LoadExpenses(ctx context.Context, userID string) ([]core.Expense, error)
	SaveExpenses(ctx context.Context, userID string, expenses []core.Expense) error
	LoadBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	SaveBudgets(ctx context.Context, userID string, budgets []core.Budget) error
}

// EventPublisher receives a notification after each successful snapshot
// save. Implementations must tolerate being called concurrently.
type EventPublisher interface {
	PublishSnapshotSaved(ctx context.Context, userID, kind string, count int) error
}

const saveTimeout = 5 * time.Second

// Store holds the authoritative collections for the signed-in user.
//
// The original design assumed a single-threaded event loop; here the
// callers are concurrent HTTP handlers, so a mutex guards the
// collections. Only one logical user is loaded at a time.
type Store struct {
	mu       sync.Mutex
	userID   string
	expenses []core.Expense
	budgets  []core.Budget

	persistence Persistence
	events      EventPublisher // optional, may be nil

	newID func() string
	now   func() time.Time
	saves sync.WaitGroup
}

func New(persistence Persistence, events EventPublisher) *Store {
	return &Store{
		persistence: persistence,
		events:      events,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Load replaces the in-memory collections with the persisted snapshot
// for userID, or an empty pair when none exists. An empty userID means
// sign-out: collections are cleared and nothing is persisted.
func (s *Store) Load(ctx context.Context, userID string) error {
	if userID == "" {
		s.mu.Lock()
		s.userID = ""
		s.expenses = nil
		s.budgets = nil
		s.mu.Unlock()
		return nil
	}

	expenses, err := s.persistence.LoadExpenses(ctx, userID)
	if err != nil {
		return err
	}
	budgets, err := s.persistence.LoadBudgets(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userID = userID
	s.expenses = expenses
	s.budgets = budgets
	s.mu.Unlock()

	slog.InfoContext(ctx, "Collections loaded",
		"user_id", userID,
		"expenses", len(expenses),
		"budgets", len(budgets))
	return nil
}

// CurrentUser returns the signed-in user id, or "" when signed out.
func (s *Store) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// AddExpense assigns a fresh id and the current user id, appends the
// expense and triggers a save. The input's ID and UserID fields are
// ignored. Returns false without mutating when no user is signed in.
// The store performs no validation; that is the caller's concern.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (core.Expense, bool) {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return core.Expense{}, false
	}
	e.ID = s.newID()
	e.UserID = s.userID
	s.expenses = append(s.expenses, e)
	s.saveExpensesLocked(ctx)
	s.mu.Unlock()
	return e, true
}

// UpdateExpense merges the non-nil fields of upd into the expense with
// the given id. A missing id is a silent no-op: this laxity is part of
// the contract, not an oversight.
func (s *Store) UpdateExpense(ctx context.Context, id string, upd core.ExpenseUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		e := &s.expenses[i]
		if upd.Amount != nil {
			e.Amount = *upd.Amount
		}
		if upd.Description != nil {
			e.Description = *upd.Description
		}
		if upd.Category != nil {
			e.Category = *upd.Category
		}
		if upd.Date != nil {
			e.Date = *upd.Date
		}
		if upd.IsRecurring != nil {
			e.IsRecurring = *upd.IsRecurring
		}
		if upd.RecurringInterval != nil {
			e.RecurringInterval = *upd.RecurringInterval
		}
		s.saveExpensesLocked(ctx)
		return
	}
}

// DeleteExpense removes the expense with the given id; a missing id is a
// silent no-op and triggers no save.
func (s *Store) DeleteExpense(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			s.saveExpensesLocked(ctx)
			return
		}
	}
}

// AddBudget mirrors AddExpense for the budget collection. The store does
// not enforce the one-active-budget-per-category rule; callers validate
// before inserting.
func (s *Store) AddBudget(ctx context.Context, b core.Budget) (core.Budget, bool) {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return core.Budget{}, false
	}
	b.ID = s.newID()
	b.UserID = s.userID
	s.budgets = append(s.budgets, b)
	s.saveBudgetsLocked(ctx)
	s.mu.Unlock()
	return b, true
}

// UpdateBudget merges the non-nil fields of upd into the budget with the
// given id; a missing id is a silent no-op.
func (s *Store) UpdateBudget(ctx context.Context, id string, upd core.BudgetUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID != id {
			continue
		}
		b := &s.budgets[i]
		if upd.Category != nil {
			b.Category = *upd.Category
		}
		if upd.Amount != nil {
			b.Amount = *upd.Amount
		}
		if upd.Period != nil {
			b.Period = *upd.Period
		}
		if upd.StartDate != nil {
			b.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			b.EndDate = *upd.EndDate
		}
		s.saveBudgetsLocked(ctx)
		return
	}
}

// DeleteBudget removes the budget with the given id; a missing id is a
// silent no-op. Deleting a budget has no cascading effect on expenses.
func (s *Store) DeleteBudget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			s.saveBudgetsLocked(ctx)
			return
		}
	}
}

// TotalExpensesByCategory sums the amounts of all expenses in the given
// category; an empty match set yields zero.
func (s *Store) TotalExpensesByCategory(category core.Category) core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, e := range s.expenses {
		if e.Category == category {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// MonthlyExpenses returns the expenses dated on or after the first day
// of the current calendar month, evaluated against the clock at call
// time.
func (s *Store) MonthlyExpenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var out []core.Expense
	for _, e := range s.expenses {
		if !e.Date.Before(startOfMonth) {
			out = append(out, e)
		}
	}
	return out
}

// BudgetByCategory returns the first budget (in insertion order) for the
// given category.
func (s *Store) BudgetByCategory(category core.Category) (core.Budget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if b.Category == category {
			return b, true
		}
	}
	return core.Budget{}, false
}

// Expenses returns a copy of the expense collection in insertion order.
func (s *Store) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Budgets returns a copy of the budget collection in insertion order.
func (s *Store) Budgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Wait blocks until all in-flight saves have finished. Called on
// shutdown so the last mutation is not lost to process exit.
func (s *Store) Wait() {
	s.saves.Wait()
}

// saveExpensesLocked snapshots the expense collection and persists it in
// the background. The caller must hold s.mu. Failures are logged and
// dropped; the mutation itself never fails.
func (s *Store) saveExpensesLocked(ctx context.Context) {
	userID := s.userID
	snapshot := make([]core.Expense, len(s.expenses))
	copy(snapshot, s.expenses)

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		if err := s.persistence.SaveExpenses(saveCtx, userID, snapshot); err != nil {
			slog.ErrorContext(saveCtx, "Failed to save expense snapshot",
				"user_id", userID, "error", err)
			return
		}
		s.publish(saveCtx, userID, "expenses", len(snapshot))
	}()
}

// saveBudgetsLocked is the budget counterpart of saveExpensesLocked; the
// two blobs are saved independently.
func (s *Store) saveBudgetsLocked(ctx context.Context) {
	userID := s.userID
	snapshot := make([]core.Budget, len(s.budgets))
	copy(snapshot, s.budgets)

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		if err := s.persistence.SaveBudgets(saveCtx, userID, snapshot); err != nil {
			slog.ErrorContext(saveCtx, "Failed to save budget snapshot",
				"user_id", userID, "error", err)
			return
		}
		s.publish(saveCtx, userID, "budgets", len(snapshot))
	}()
}

func (s *Store) publish(ctx context.Context, userID, kind string, count int) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSnapshotSaved(ctx, userID, kind, count); err != nil {
		slog.WarnContext(ctx, "Failed to publish snapshot event",
			"user_id", userID, "kind", kind, "error", err)
	}
}
