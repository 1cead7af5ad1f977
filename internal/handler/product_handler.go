package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poppes-store/internal/model"
	"poppes-store/internal/repository"
	"poppes-store/internal/service"

	"github.com/rs/zerolog"
)

// maxImageSize caps admin image uploads at 5 MiB.
const maxImageSize = 5 << 20

// ProductHandler handles catalogue and admin product HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with filtering and sorting.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := repository.ListOptions{}
	query := r.URL.Query()

	if v := query.Get("inStock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid inStock parameter", h.logger)
			return
		}
		opts.InStockOnly = inStock
	}

	switch query.Get("sort") {
	case "":
		// Browse defaults to newest first.
	case "createdAt":
		opts.SortBy = repository.SortByCreatedAt
	case "name":
		opts.SortBy = repository.SortByName
	case "price":
		opts.SortBy = repository.SortByPrice
	default:
		writeError(w, http.StatusBadRequest, "invalid sort parameter", h.logger)
		return
	}

	switch query.Get("order") {
	case "", "asc":
	case "desc":
		opts.SortDesc = true
	default:
		writeError(w, http.StatusBadRequest, "invalid order parameter", h.logger)
		return
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
		opts.Limit = limit
	}

	products, err := h.service.Browse(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// Featured handles GET /api/products/featured requests.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/admin/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{
		Message: "product created",
		Product: product,
	})
}

// Update handles PUT /api/admin/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Message: "product updated",
		Product: product,
	})
}

// Delete handles DELETE /api/admin/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Message: "product deleted"})
}

// UploadImage handles POST /api/admin/products/{id}/image requests with a
// multipart "image" part.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required", h.logger)
		return
	}
	defer file.Close()

	product, err := h.service.AttachImage(
		r.Context(), id, header.Filename, file, header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Message: "image uploaded",
		Product: product,
	})
}

// productResponse is the envelope for admin product mutations.
type productResponse struct {
	Message string         `json:"message"`
	Product *model.Product `json:"product,omitempty"`
}
