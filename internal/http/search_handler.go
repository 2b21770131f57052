package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type SearchHandler struct {
	search    domain.SearchService
	dashboard domain.DashboardService
	logger    logger.Logger
}

func NewSearchHandler(search domain.SearchService, dashboard domain.DashboardService, logger logger.Logger) *SearchHandler {
	return &SearchHandler{search: search, dashboard: dashboard, logger: logger}
}

func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/search", h.handleSearch)
	mux.HandleFunc("/api/dashboard.stats", h.handleStats)
}

func (h *SearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeResult(w, http.StatusOK, h.search.Search(r.Context(), r.URL.Query().Get("q")))
}

func (h *SearchHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeResult(w, http.StatusOK, h.dashboard.Stats(r.Context()))
}
