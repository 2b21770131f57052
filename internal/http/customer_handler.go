package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type CustomerHandler struct {
	service domain.CustomerService
	logger  logger.Logger
}

func NewCustomerHandler(service domain.CustomerService, logger logger.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

func (h *CustomerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/customers.list", h.handleList)
	mux.HandleFunc("/api/customers.get", getByID("id", h.service.GetByID))
	mux.HandleFunc("/api/customers.detail", getByID("id", h.service.GetWithStats))
	mux.HandleFunc("/api/customers.create", create(h.logger, h.service.Create))
	mux.HandleFunc("/api/customers.update", update(h.logger, h.service.Update))
	mux.HandleFunc("/api/customers.delete", byIDAction(h.logger, h.service.Delete))
}

func (h *CustomerHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	params := domain.ListCustomersParams{
		Page:           queryInt(r, "page"),
		Limit:          queryInt(r, "limit"),
		Search:         q.Get("search"),
		Status:         domain.CustomerStatus(q.Get("status")),
		LifecycleStage: domain.LifecycleStage(q.Get("lifecycle_stage")),
		AssignedTo:     q.Get("assigned_to"),
		MineOnly:       q.Get("mine_only") == "true",
	}
	writeResult(w, http.StatusOK, h.service.List(r.Context(), params))
}
