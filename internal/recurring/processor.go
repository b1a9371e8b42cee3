package recurring

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Processor scans the signed-in user's expenses and appends occurrences
// for recurring templates that have come due.
type Processor struct {
	store *store.Store
}

func NewProcessor(s *store.Store) *Processor {
	return &Processor{store: s}
}

type occurrenceKey struct {
	description string
	category    core.Category
}

// ProcessDue materializes every due recurring expense and returns the
// number of occurrences created. Occurrences share the template's
// description and category and are dated now; the latest such date
// (template included) is what dueness is measured against, so a
// template never double-fires within its interval.
func (p *Processor) ProcessDue(ctx context.Context, now time.Time) int {
	expenses := p.store.Expenses()

	latest := make(map[occurrenceKey]time.Time)
	for _, e := range expenses {
		key := occurrenceKey{description: e.Description, category: e.Category}
		if e.Date.After(latest[key]) {
			latest[key] = e.Date
		}
	}

	created := 0
	for _, e := range expenses {
		if !e.IsRecurring {
			continue
		}
		checker, err := CheckerFor(e.RecurringInterval)
		if err != nil {
			slog.WarnContext(ctx, "Skipping recurring expense",
				"expense_id", e.ID, "error", err)
			continue
		}
		key := occurrenceKey{description: e.Description, category: e.Category}
		if !checker.IsDue(latest[key], now, e.Date) {
			continue
		}

		occurrence := core.Expense{
			Amount:      e.Amount,
			Description: e.Description,
			Category:    e.Category,
			Date:        now,
		}
		if _, ok := p.store.AddExpense(ctx, occurrence); !ok {
			// User signed out mid-scan; the rest would no-op too.
			break
		}
		created++
		slog.InfoContext(ctx, "Materialized recurring expense",
			"template_id", e.ID,
			"description", e.Description,
			"category", string(e.Category),
			"interval", string(e.RecurringInterval))
	}
	return created
}

// Run checks for due templates at every tick until the context ends.
func (p *Processor) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Recurring processor started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Recurring processor stopped", "reason", ctx.Err())
			return ctx.Err()
		case now := <-ticker.C:
			if created := p.ProcessDue(ctx, now); created > 0 {
				slog.InfoContext(ctx, "Recurring expenses materialized", "count", created)
			}
		}
	}
}
