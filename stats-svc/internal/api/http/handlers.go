package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"food-delivery/stats-svc/internal/service"
)

const defaultTopItems = 5

type Handler struct {
	Stats service.StatsInterface
	Log   logrus.FieldLogger
}

func NewHandler(svc service.StatsInterface, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Stats: svc, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/stats/restaurants/{id}", h.getRestaurantStats).Methods("GET")
	r.HandleFunc("/api/stats/statuses", h.getStatusCounts).Methods("GET")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurantStats(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || restaurantID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid restaurant id"})
		return
	}

	limit := defaultTopItems
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			limit = n
		}
	}

	stats, err := h.Stats.RestaurantStats(r.Context(), restaurantID, limit)
	if err != nil {
		h.Log.WithError(err).Error("failed to read restaurant stats")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Stats.StatusCounts(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to read status counts")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
