package http

import (
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/chart"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type budgetProgressResponse struct {
	BudgetID     string  `json:"budget_id"`
	Category     string  `json:"category"`
	Label        string  `json:"label"`
	Color        string  `json:"color"`
	Amount       string  `json:"amount"`
	Spent        string  `json:"spent"`
	Remaining    string  `json:"remaining"`
	Percent      float64 `json:"percent"`
	OverBudget   bool    `json:"over_budget"`
	OverBudgetBy string  `json:"over_budget_by,omitempty"`
}

type summaryResponse struct {
	MonthlyTotal     string                   `json:"monthly_total"`
	AverageDaily     string                   `json:"average_daily"`
	TopCategory      string                   `json:"top_category,omitempty"`
	TopCategoryLabel string                   `json:"top_category_label,omitempty"`
	TransactionCount int                      `json:"transaction_count"`
	Budgets          []budgetProgressResponse `json:"budgets"`
}

// handleSummary serves the dashboard aggregates for the current month.
// Aggregation is recomputed on read; a short-lived per-user cache only
// smooths bursts, and every mutation invalidates it.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := s.store.CurrentUser()
	if user == "" {
		writeError(w, http.StatusUnauthorized, "no user signed in")
		return
	}
	if cached, ok := s.summaryCache.Get(user); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	monthly := s.store.MonthlyExpenses()

	var total core.Money
	for _, e := range monthly {
		total = total.Add(e.Amount)
	}

	resp := summaryResponse{
		MonthlyTotal:     total.String(),
		AverageDaily:     analytics.AverageDailySpend(monthly).String(),
		TransactionCount: len(monthly),
		Budgets:          []budgetProgressResponse{},
	}

	if top, _, ok := analytics.TopCategory(analytics.CategoryTotals(monthly)); ok {
		resp.TopCategory = string(top)
		resp.TopCategoryLabel = top.Label()
	}

	for _, b := range s.store.Budgets() {
		// Budget progress measures the category total across the whole
		// collection, not just the current month.
		spent := s.store.TotalExpensesByCategory(b.Category)
		progress := analytics.ComputeBudgetProgress(b, spent)
		info := b.Category.Info()
		row := budgetProgressResponse{
			BudgetID:   b.ID,
			Category:   string(b.Category),
			Label:      info.Label,
			Color:      info.Color,
			Amount:     b.Amount.String(),
			Spent:      progress.Spent.String(),
			Remaining:  progress.Remaining.String(),
			Percent:    progress.Percent,
			OverBudget: progress.Over,
		}
		if progress.Over {
			row.OverBudgetBy = progress.Spent.Sub(b.Amount).String()
		}
		resp.Budgets = append(resp.Budgets, row)
	}

	s.summaryCache.Set(user, resp)
	writeJSON(w, http.StatusOK, resp)
}

type chartResponse struct {
	Kind       string           `json:"kind"`
	Dimensions chart.Dimensions `json:"dimensions"`
	Series     core.ChartSeries `json:"series"`
	Ops        []chart.Op       `json:"ops"`
}

// handleChart serves chart drawing instructions (or a rendered PNG) for
// the named dashboard chart: "categories" for spending by category,
// "daily" for the last seven days.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if s.store.CurrentUser() == "" {
		writeError(w, http.StatusUnauthorized, "no user signed in")
		return
	}

	monthly := s.store.MonthlyExpenses()

	var series core.ChartSeries
	var kind chart.Kind
	switch r.PathValue("name") {
	case "categories":
		series = analytics.CategoryPieSeries(analytics.CategoryTotals(monthly))
		kind = chart.Pie
	case "daily":
		series = analytics.DailySpendingSeries(analytics.DailyTotals(monthly, time.Now()))
		kind = chart.Bar
	default:
		writeError(w, http.StatusNotFound, "unknown chart")
		return
	}

	if v := r.URL.Query().Get("kind"); v != "" {
		kind = chart.Kind(v)
		if !kind.Valid() {
			writeError(w, http.StatusBadRequest, "unknown chart kind")
			return
		}
	}

	dims := chart.Dimensions{
		Width:  parseDimension(r, "width", 600),
		Height: parseDimension(r, "height", 300),
	}

	ops, err := chart.Render(series, kind, dims)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Chart render failed",
			log.FieldOperation, log.OpRender,
			log.FieldChartKind, string(kind),
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	if r.URL.Query().Get("format") == "png" {
		w.Header().Set("Content-Type", "image/png")
		if err := chart.EncodePNG(w, ops, dims); err != nil {
			s.logger.ErrorContext(r.Context(), "Chart PNG encoding failed",
				log.FieldChartKind, string(kind),
				log.FieldError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, chartResponse{
		Kind:       string(kind),
		Dimensions: dims,
		Series:     series,
		Ops:        ops,
	})
}
