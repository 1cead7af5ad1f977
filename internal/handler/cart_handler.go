package handler

import (
	"encoding/json"
	"net/http"

	"poppes-store/internal/cart"
	"poppes-store/internal/middleware"
	"poppes-store/internal/model"
	"poppes-store/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. The cart is identified by the
// session cookie set by the session middleware.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the envelope for cart reads and mutations. Message is
// the transient notification shown to the user.
type cartResponse struct {
	Message string            `json:"message,omitempty"`
	Cart    *service.CartView `json:"cart"`
}

// addItemRequest is the payload for POST /api/cart/items.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// updateItemRequest is the payload for PUT /api/cart/items/{id}.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	view, err := h.service.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Cart: view})
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, outcome, err := h.service.AddItem(r.Context(), key, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	message := "added to cart"
	if outcome == cart.OutcomeUpdated {
		message = "quantity updated in cart"
	}

	writeJSON(w, http.StatusOK, cartResponse{Message: message, Cart: view})
}

// UpdateItem handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())
	productID := r.PathValue("id")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	view, err := h.service.UpdateItem(r.Context(), key, productID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	message := "quantity updated in cart"
	if req.Quantity <= 0 {
		message = "removed from cart"
	}

	writeJSON(w, http.StatusOK, cartResponse{Message: message, Cart: view})
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())
	productID := r.PathValue("id")

	view, err := h.service.RemoveItem(r.Context(), key, productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Message: "removed from cart", Cart: view})
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	key := middleware.SessionKey(r.Context())

	if err := h.service.Clear(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Message: "cart cleared",
		Cart: &service.CartView{
			Items: []model.CartItem{},
		},
	})
}
