package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"food-delivery/delivery-svc/internal/domain"
	"food-delivery/delivery-svc/internal/service"
)

const serviceName = "delivery-svc"

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	Log     logrus.FieldLogger
}

func NewHandler(catalogSvc service.CatalogServiceInterface, orderSvc service.OrderServiceInterface, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Catalog: catalogSvc,
		Orders:  orderSvc,
		Log:     log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/health", h.apiHealth).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/search", h.search).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/receipt", h.getReceipt).Methods("GET")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to status codes. notFound is the message used for a 404.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid order data")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.Log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID reads the leading integer of the id segment, so "1000abc" is 1000. Ids without one
// map to 0, which no restaurant or order uses.
func pathID(r *http.Request) int {
	raw := strings.TrimLeft(mux.Vars(r)["id"], " \t")
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	id, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return id
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) apiHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.List())
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.Get(pathID(r))
	if err != nil {
		h.writeServiceError(w, err, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

type menuResponse struct {
	Restaurant domain.Restaurant `json:"restaurant"`
	Menu       []domain.MenuItem `json:"menu"`
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	rest, menu, err := h.Catalog.Menu(pathID(r))
	if err != nil {
		h.writeServiceError(w, err, "Restaurant not found")
		return
	}
	if menu == nil {
		menu = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, menuResponse{Restaurant: rest, Menu: menu})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Search(r.URL.Query().Get("query")))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	order, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.Log.WithError(err).Info("order rejected")
		}
		h.writeServiceError(w, err, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Orders.List())
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(pathID(r))
	if err != nil {
		h.writeServiceError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid status data")
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), pathID(r), req.Status)
	if err != nil {
		h.writeServiceError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.Receipt(pathID(r))
	if err != nil {
		h.writeServiceError(w, err, "Order not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
