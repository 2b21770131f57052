package http

import (
	"net/http"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

type ProfileHandler struct {
	service domain.ProfileService
	logger  logger.Logger
}

func NewProfileHandler(service domain.ProfileService, logger logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/profile.me", h.handleMe)
	mux.HandleFunc("/api/profile.update", h.handleUpdate)
	mux.HandleFunc("/api/profiles.list", h.handleList)
	mux.HandleFunc("/api/auth.signup", h.handleSignup)
}

func (h *ProfileHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeResult(w, http.StatusOK, h.service.GetCurrentProfile(r.Context()))
}

func (h *ProfileHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeResult(w, http.StatusOK, h.service.ListProfiles(r.Context()))
}

func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	body, ok := readBody(w, r, h.logger)
	if !ok {
		return
	}
	var req domain.UpdateProfileRequest
	if !decode(w, body, &req, h.logger) {
		return
	}
	writeResult(w, http.StatusOK, h.service.UpdateOwnProfile(r.Context(), &req))
}

// handleSignup is called once by the client right after registration with
// the identity provider, using the freshly issued token
func (h *ProfileHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	body, ok := readBody(w, r, h.logger)
	if !ok {
		return
	}
	var req domain.RegisterIdentityRequest
	if !decode(w, body, &req, h.logger) {
		return
	}
	writeResult(w, http.StatusCreated, h.service.RegisterIdentity(r.Context(), &req))
}
