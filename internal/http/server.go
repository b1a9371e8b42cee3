// Package http exposes the store, aggregation functions and chart
// renderer to the presentational UI as a JSON API. Handlers do the
// validation the store deliberately skips: this layer is the "calling
// UI" of the core's contract.
package http

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

type Server struct {
	http.Server
	store  *store.Store
	logger *log.Logger

	// summaryCache keeps one dashboard summary per user and is
	// invalidated on every mutation.
	summaryCache *cache.LRU[summaryResponse]
}

func NewServer(addr string, st *store.Store, logger *log.Logger, summaryTTL time.Duration) *Server {
	s := &Server{
		store:        st,
		logger:       logger.WithComponent(log.ComponentHTTP),
		summaryCache: cache.New[summaryResponse](64, summaryTTL),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/session", s.handleGetSession)
	mux.HandleFunc("POST /api/session", s.handleSignIn)
	mux.HandleFunc("DELETE /api/session", s.handleSignOut)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PATCH /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/dashboard/summary", s.handleSummary)
	mux.HandleFunc("GET /api/charts/{name}", s.handleChart)

	s.Addr = addr
	s.Handler = s.withRequestLogging(mux)
	return s
}

// RunCacheJanitor evicts expired summary entries at every tick until
// the context ends.
func (s *Server) RunCacheJanitor(ctx context.Context, interval time.Duration) error {
	return s.summaryCache.Janitor(ctx, interval)
}

// invalidateSummary drops the cached dashboard summary for the current
// user. Called after every mutation so redraws always reflect the most
// recently computed aggregates.
func (s *Server) invalidateSummary() {
	if user := s.store.CurrentUser(); user != "" {
		s.summaryCache.Delete(user)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
