package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type DealHandler struct {
	service domain.DealService
	logger  logger.Logger
}

func NewDealHandler(service domain.DealService, logger logger.Logger) *DealHandler {
	return &DealHandler{service: service, logger: logger}
}

func (h *DealHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/deals.list", getByID("customer_id", h.service.ListForCustomer))
	mux.HandleFunc("/api/deals.byStage", h.handleByStage)
	mux.HandleFunc("/api/deals.get", getByID("id", h.service.GetByID))
	mux.HandleFunc("/api/deals.create", create(h.logger, h.service.Create))
	mux.HandleFunc("/api/deals.update", update(h.logger, h.service.Update))
	mux.HandleFunc("/api/deals.delete", byIDAction(h.logger, h.service.Delete))
}

func (h *DealHandler) handleByStage(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	stage := domain.DealStage(r.URL.Query().Get("stage"))
	writeResult(w, http.StatusOK, h.service.ListByStage(r.Context(), stage))
}
