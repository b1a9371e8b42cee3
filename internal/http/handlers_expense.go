package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// expensePayload is the wire shape for expense create and update
// requests. Every field is a pointer so partial updates can distinguish
// "absent" from "zero".
type expensePayload struct {
	Amount            *string `json:"amount"` // decimal string, e.g. "12.34"
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	Date              *string `json:"date"` // YYYY-MM-DD
	IsRecurring       *bool   `json:"is_recurring"`
	RecurringInterval *string `json:"recurring_interval"`
}

type expenseResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Amount            string `json:"amount"`
	AmountCents       int64  `json:"amount_cents"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Date              string `json:"date"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurringInterval string `json:"recurring_interval,omitempty"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		Amount:            e.Amount.String(),
		AmountCents:       e.Amount.Cents,
		Description:       e.Description,
		Category:          string(e.Category),
		Date:              e.Date.Format(time.RFC3339),
		IsRecurring:       e.IsRecurring,
		RecurringInterval: string(e.RecurringInterval),
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var expenses []core.Expense
	if r.URL.Query().Get("period") == "month" {
		expenses = s.store.MonthlyExpenses()
	} else {
		expenses = s.store.Expenses()
	}
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateExpense validates the payload and inserts through the
// store. The store itself accepts anything, so everything the data
// model requires is checked here.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var p expensePayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Amount == nil || p.Description == nil || p.Category == nil || p.Date == nil {
		writeError(w, http.StatusUnprocessableEntity, "amount, description, category and date are required")
		return
	}

	cents, err := core.ParseDecimalToCents(*p.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := parseDate(*p.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	expense := core.Expense{
		Amount:      core.Money{Cents: cents},
		Description: sanitizeInput(*p.Description),
		Category:    core.Category(*p.Category),
		Date:        date,
	}
	if p.IsRecurring != nil {
		expense.IsRecurring = *p.IsRecurring
	}
	if p.RecurringInterval != nil {
		expense.RecurringInterval = core.RecurringInterval(*p.RecurringInterval)
	}
	if err := expense.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, ok := s.store.AddExpense(r.Context(), expense)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no user signed in")
		return
	}
	s.invalidateSummary()

	s.logger.InfoContext(r.Context(), "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, created.ID,
		log.FieldCategory, string(created.Category),
		log.FieldAmount, created.Amount.Cents)
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

// handleUpdateExpense applies a partial update. Fields that are present
// must be valid; an unknown id remains a silent no-op per the store
// contract, so the response is 204 either way.
func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var p expensePayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var upd core.ExpenseUpdate
	if p.Amount != nil {
		cents, err := core.ParseDecimalToCents(*p.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		upd.Amount = &core.Money{Cents: cents}
	}
	if p.Description != nil {
		desc := sanitizeInput(*p.Description)
		if desc == "" {
			writeError(w, http.StatusUnprocessableEntity, "description cannot be empty")
			return
		}
		upd.Description = &desc
	}
	if p.Category != nil {
		cat := core.Category(*p.Category)
		if !cat.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "invalid category")
			return
		}
		upd.Category = &cat
	}
	if p.Date != nil {
		date, err := parseDate(*p.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		upd.Date = &date
	}
	upd.IsRecurring = p.IsRecurring
	if p.RecurringInterval != nil {
		interval := core.RecurringInterval(*p.RecurringInterval)
		if interval != "" && !interval.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "invalid recurring interval")
			return
		}
		upd.RecurringInterval = &interval
	}

	s.store.UpdateExpense(r.Context(), id, upd)
	s.invalidateSummary()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteExpense(r.Context(), r.PathValue("id"))
	s.invalidateSummary()
	w.WriteHeader(http.StatusNoContent)
}
