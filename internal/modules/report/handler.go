package report

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/go-chi/chi/v5"
)

// Handler exposes dashboard and report endpoints. Report routes accept
// ?format=csv to download the flattened table.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.dashboard)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/low-stock", h.lowStock)
		r.Get("/inventory", h.inventory)
		r.Get("/categories", h.categories)
		r.Get("/activity-logs", h.activityLogs) // ?limit=
	})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, activity.ErrInvalidLimit) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("report: %v", err)
	httpx.Error(w, http.StatusInternalServerError, "internal error")
}

// write sends body as JSON, or t as CSV when the caller asked for it.
func write(w http.ResponseWriter, r *http.Request, name string, body interface{}, t func() Table) {
	if r.URL.Query().Get("format") != "csv" {
		httpx.Respond(w, http.StatusOK, body)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := t().WriteCSV(w); err != nil {
		log.Printf("report: write %s csv: %v", name, err)
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, stats)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.LowStock(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, r, "low-stock", rep, rep.Table)
}

func (h *Handler) inventory(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Inventory(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, r, "inventory", rep, rep.Table)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Categories(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, r, "categories", rep, rep.Table)
}

func (h *Handler) activityLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	entries, err := h.service.Activity(r.Context(), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, r, "activity-logs", entries, func() Table { return ActivityTable(entries) })
}
