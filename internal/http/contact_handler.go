package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type ContactHandler struct {
	service domain.ContactService
	logger  logger.Logger
}

func NewContactHandler(service domain.ContactService, logger logger.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/contacts.list", getByID("customer_id", h.service.ListForCustomer))
	mux.HandleFunc("/api/contacts.get", getByID("id", h.service.GetByID))
	mux.HandleFunc("/api/contacts.create", create(h.logger, h.service.Create))
	mux.HandleFunc("/api/contacts.update", update(h.logger, h.service.Update))
	mux.HandleFunc("/api/contacts.delete", byIDAction(h.logger, h.service.Delete))
	mux.HandleFunc("/api/contacts.setPrimary", byIDAction(h.logger, h.service.SetPrimary))
}
