package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// defaultHistoryDays is the observation window when the caller does not pass
// one.
const defaultHistoryDays = 30

// TrackRequest is the payload for recording a price observation.
type TrackRequest struct {
	RegularPrice decimal.Decimal  `json:"regular_price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	LocationID   string           `json:"location_id,omitempty"`
	ProductName  string           `json:"product_name,omitempty"`
}

// ChangedResponse reports whether a hide/unhide/remove call changed state.
type ChangedResponse struct {
	Changed bool `json:"changed"`
}

// Handler handles HTTP requests for tracker operations.
type Handler struct {
	log              *slog.Logger
	svc              Service
	defaultThreshold decimal.Decimal
}

// NewHandler creates a new Handler.
func NewHandler(log *slog.Logger, svc Service, defaultThreshold float64) *Handler {
	return &Handler{
		log:              log,
		svc:              svc,
		defaultThreshold: decimal.NewFromFloat(defaultThreshold),
	}
}

// RegisterRoutes registers all tracker routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/alerts", h.Alerts)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.TrackedProducts)
			r.Get("/hidden", h.HiddenProducts)
			r.Get("/removed", h.RemovedProducts)

			r.Route("/{productID}", func(r chi.Router) {
				r.Post("/track", h.Track)
				r.Get("/history", h.History)
				r.Post("/hide", h.Hide)
				r.Post("/unhide", h.Unhide)
				r.Delete("/", h.Remove)
			})
		})
	})
}

// Track records one price observation and returns the change analysis.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("Failed to decode track request", "error", err)
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.TrackPrice(r.Context(), productID, req.RegularPrice, req.SalePrice, req.LocationID, req.ProductName)
	if err != nil {
		h.log.Error("Failed to track price", "product_id", productID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to track price")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// History returns the observation window for one product.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	days := defaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	history, err := h.svc.PriceHistory(r.Context(), productID, days)
	if err != nil {
		h.log.Error("Failed to get price history", "product_id", productID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get price history")
		return
	}

	h.respondJSON(w, http.StatusOK, history)
}

// Alerts returns current price-drop alerts. An omitted threshold falls back
// to the configured default.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	threshold := h.defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "threshold must be a number")
			return
		}
		threshold = parsed
	}

	alerts, err := h.svc.PriceAlerts(r.Context(), threshold)
	if err != nil {
		h.log.Error("Failed to get price alerts", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get price alerts")
		return
	}

	h.respondJSON(w, http.StatusOK, alerts)
}

// TrackedProducts returns summaries for every tracked product.
func (h *Handler) TrackedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.TrackedProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to list tracked products", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list tracked products")
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

// HiddenProducts returns the hidden products still present in the ledger.
func (h *Handler) HiddenProducts(w http.ResponseWriter, r *http.Request) {
	hidden, err := h.svc.HiddenProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to list hidden products", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list hidden products")
		return
	}

	h.respondJSON(w, http.StatusOK, hidden)
}

// RemovedProducts returns the removal audit trail.
func (h *Handler) RemovedProducts(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.RemovedProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to list removed products", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list removed products")
		return
	}

	h.respondJSON(w, http.StatusOK, removed)
}

// Hide excludes a product from alerting.
func (h *Handler) Hide(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	changed, err := h.svc.HideProduct(r.Context(), productID)
	if err != nil {
		h.log.Error("Failed to hide product", "product_id", productID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to hide product")
		return
	}

	h.respondJSON(w, http.StatusOK, ChangedResponse{Changed: changed})
}

// Unhide re-enables alerting for a product.
func (h *Handler) Unhide(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	changed, err := h.svc.UnhideProduct(r.Context(), productID)
	if err != nil {
		h.log.Error("Failed to unhide product", "product_id", productID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to unhide product")
		return
	}

	h.respondJSON(w, http.StatusOK, ChangedResponse{Changed: changed})
}

// Remove deletes a product from tracking. Unknown products yield 404.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	removed, err := h.svc.RemoveProduct(r.Context(), productID)
	if err != nil {
		h.log.Error("Failed to remove product", "product_id", productID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to remove product")
		return
	}

	if !removed {
		h.respondError(w, http.StatusNotFound, "product is not tracked")
		return
	}

	h.respondJSON(w, http.StatusOK, ChangedResponse{Changed: true})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
