package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type CommunicationHandler struct {
	service domain.CommunicationService
	logger  logger.Logger
}

func NewCommunicationHandler(service domain.CommunicationService, logger logger.Logger) *CommunicationHandler {
	return &CommunicationHandler{service: service, logger: logger}
}

func (h *CommunicationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/communications.list", getByID("customer_id", h.service.ListForCustomer))
	mux.HandleFunc("/api/communications.recent", h.handleRecent)
	mux.HandleFunc("/api/communications.get", getByID("id", h.service.GetByID))
	mux.HandleFunc("/api/communications.create", create(h.logger, h.service.Create))
	mux.HandleFunc("/api/communications.update", update(h.logger, h.service.Update))
	mux.HandleFunc("/api/communications.delete", byIDAction(h.logger, h.service.Delete))
}

func (h *CommunicationHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeResult(w, http.StatusOK, h.service.ListRecent(r.Context(), queryInt(r, "limit")))
}
