package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated sign-up route.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/register", h.registerAdmin)
}

// RegisterRoutes mounts routes that require an authenticated admin.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/admins", h.listAdmins)
	r.Get("/admins/{id}", h.getAdmin)
}

func (h *Handler) registerAdmin(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.service.RegisterAdmin(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("admin: register: %v", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.Respond(w, http.StatusCreated, map[string]string{
		"message": "admin registered",
		"email":   a.Email,
	})
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context())
	if err != nil {
		log.Printf("admin: list: %v", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Respond(w, http.StatusOK, admins)
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAdmin(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("admin: get: %v", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Respond(w, http.StatusOK, a)
}
