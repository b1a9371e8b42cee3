package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type budgetPayload struct {
	Category  *string `json:"category"`
	Amount    *string `json:"amount"` // decimal string
	Period    *string `json:"period"`
	StartDate *string `json:"start_date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`   // YYYY-MM-DD; "" clears on update
}

type budgetResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Period      string `json:"period"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Active      bool   `json:"active"`
}

func toBudgetResponse(b core.Budget, now time.Time) budgetResponse {
	out := budgetResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Category:    string(b.Category),
		Amount:      b.Amount.String(),
		AmountCents: b.Amount.Cents,
		Period:      string(b.Period),
		StartDate:   b.StartDate.Format(time.RFC3339),
		Active:      b.ActiveAt(now),
	}
	if b.EndDate != nil {
		out.EndDate = b.EndDate.Format(time.RFC3339)
	}
	return out
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	budgets := s.store.Budgets()
	out := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = toBudgetResponse(b, now)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateBudget validates the payload and enforces the business
// rule the store leaves to its callers: at most one active budget per
// category per user.
func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var p budgetPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Category == nil || p.Amount == nil || p.Period == nil || p.StartDate == nil {
		writeError(w, http.StatusUnprocessableEntity, "category, amount, period and start_date are required")
		return
	}

	cents, err := core.ParseDecimalToCents(*p.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	start, err := parseDate(*p.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid start_date, expected YYYY-MM-DD")
		return
	}

	budget := core.Budget{
		Category:  core.Category(*p.Category),
		Amount:    core.Money{Cents: cents},
		Period:    core.BudgetPeriod(*p.Period),
		StartDate: start,
	}
	if p.EndDate != nil && *p.EndDate != "" {
		end, err := parseDate(*p.EndDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		budget.EndDate = &end
	}
	if err := budget.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	now := time.Now()
	for _, existing := range s.store.Budgets() {
		if existing.Category == budget.Category && existing.ActiveAt(now) {
			writeError(w, http.StatusConflict, "an active budget already exists for this category")
			return
		}
	}

	created, ok := s.store.AddBudget(r.Context(), budget)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no user signed in")
		return
	}
	s.invalidateSummary()

	s.logger.InfoContext(r.Context(), "Budget created",
		log.FieldOperation, log.OpCreate,
		log.FieldBudgetID, created.ID,
		log.FieldCategory, string(created.Category),
		log.FieldAmount, created.Amount.Cents)
	writeJSON(w, http.StatusCreated, toBudgetResponse(created, now))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var p budgetPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var upd core.BudgetUpdate
	if p.Category != nil {
		cat := core.Category(*p.Category)
		if !cat.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "invalid category")
			return
		}
		upd.Category = &cat
	}
	if p.Amount != nil {
		cents, err := core.ParseDecimalToCents(*p.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		upd.Amount = &core.Money{Cents: cents}
	}
	if p.Period != nil {
		period := core.BudgetPeriod(*p.Period)
		if !period.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "invalid period")
			return
		}
		upd.Period = &period
	}
	if p.StartDate != nil {
		start, err := parseDate(*p.StartDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		upd.StartDate = &start
	}
	if p.EndDate != nil {
		if *p.EndDate == "" {
			var cleared *time.Time
			upd.EndDate = &cleared
		} else {
			end, err := parseDate(*p.EndDate)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "invalid end_date, expected YYYY-MM-DD")
				return
			}
			endPtr := &end
			upd.EndDate = &endPtr
		}
	}

	s.store.UpdateBudget(r.Context(), id, upd)
	s.invalidateSummary()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteBudget(r.Context(), r.PathValue("id"))
	s.invalidateSummary()
	w.WriteHeader(http.StatusNoContent)
}
