package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterPublicRoutes mounts login. Callers may wrap r with a rate limiter.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

// RegisterRoutes mounts routes behind Middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.me)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	token, a, err := h.service.Login(r.Context(), body.Email, body.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		httpx.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		log.Printf("auth: login: %v", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]interface{}{"token": token, "admin": a})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	a, ok := AdminFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	httpx.Respond(w, http.StatusOK, a)
}
