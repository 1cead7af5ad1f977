package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poppes-store/internal/middleware"
	"poppes-store/internal/model"
	"poppes-store/internal/service"
	"poppes-store/internal/status"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout, order tracking and admin order requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// orderView pairs an order with its status projection and timeline.
type orderView struct {
	Order      *model.Order      `json:"order"`
	Projection status.Projection `json:"projection"`
	Timeline   []status.Step     `json:"timeline"`
}

// checkoutResponse is the envelope for a successful order submission.
type checkoutResponse struct {
	Message string       `json:"message"`
	Order   *model.Order `json:"order"`
}

// Checkout handles POST /api/checkout requests. Guests may check out;
// authenticated users get the order attached to their identity.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	userID := ""
	if claims := middleware.UserClaims(r.Context()); claims != nil {
		userID = claims.UserID
	}

	order, err := h.service.Checkout(r.Context(), key, req.CustomerInfo, userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Message: "order placed successfully",
		Order:   order,
	})
}

// GetByID handles GET /api/orders/{id} requests, returning the order with
// its status projection and fulfilment timeline.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeDomainError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderView{
		Order:      order,
		Projection: status.Of(order.Status),
		Timeline:   status.Timeline(order.Status),
	})
}

// ListMine handles GET /api/orders requests for the authenticated user.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.UserClaims(r.Context())

	orders, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}

	views := make([]orderView, len(orders))
	for i := range orders {
		views[i] = orderView{
			Order:      &orders[i],
			Projection: status.Of(orders[i].Status),
			Timeline:   status.Timeline(orders[i].Status),
		}
	}

	writeJSON(w, http.StatusOK, views)
}

// ListAll handles GET /api/admin/orders requests.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		limit, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		var err error
		offset, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	orders, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "order status updated",
		"status":  string(req.Status),
	})
}
