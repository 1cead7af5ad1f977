package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poppes-store/internal/model"
	"poppes-store/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Browse(ctx context.Context, opts repository.ListOptions) ([]model.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Featured(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) AttachImage(ctx context.Context, id, filename string, r io.Reader, size int64, contentType string) (*model.Product, error) {
	args := m.Called(ctx, id, filename, r, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	catalogue := []model.Product{
		{ID: "P1", Name: "Ghee", Price: 449, InStock: true, CreatedAt: time.Now()},
		{ID: "P2", Name: "Honey", Price: 250, InStock: true, CreatedAt: time.Now()},
	}

	tests := []struct {
		name           string
		query          string
		expectedOpts   repository.ListOptions
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "No filters",
			query:          "",
			expectedOpts:   repository.ListOptions{},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:  "In stock sorted by price descending",
			query: "?inStock=true&sort=price&order=desc",
			expectedOpts: repository.ListOptions{
				InStockOnly: true,
				SortBy:      repository.SortByPrice,
				SortDesc:    true,
			},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Limit applied",
			query:          "?limit=8",
			expectedOpts:   repository.ListOptions{Limit: 8},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown sort column",
			query:          "?sort=rating",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad inStock value",
			query:          "?inStock=maybe",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			if tt.expectService {
				mockService.On("Browse", mock.Anything, tt.expectedOpts).Return(catalogue, nil)
			}

			handler := NewProductHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var products []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
				assert.Len(t, products, 2)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	product := &model.Product{ID: "P1", Name: "Ghee", Price: 449}

	tests := []struct {
		name           string
		productID      string
		mockReturn     *model.Product
		expectedStatus int
	}{
		{
			name:           "Found",
			productID:      "P1",
			mockReturn:     product,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			productID:      "missing",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			mockService.On("GetByID", mock.Anything, tt.productID).Return(tt.mockReturn, nil)

			handler := NewProductHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.productID, nil)
			req.SetPathValue("id", tt.productID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	req := model.ProductRequest{
		Name:     "Pure Ghee",
		Price:    449,
		Quantity: 15,
		Unit:     "500 grams",
		InStock:  true,
	}
	created := &model.Product{ID: "P1", Name: req.Name, Price: req.Price}

	mockService := new(MockProductService)
	mockService.On("Create", mock.Anything, &req).Return(created, nil)

	handler := NewProductHandler(mockService, logger)

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp productResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "product created", resp.Message)
	assert.Equal(t, "P1", resp.Product.ID)

	mockService.AssertExpectations(t)
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	mockService.On("Delete", mock.Anything, "missing").Return(model.ErrProductNotFound)

	handler := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Featured_EmptyIsList(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	mockService.On("Featured", mock.Anything).Return(nil, nil)

	handler := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/products/featured", nil)
	w := httptest.NewRecorder()

	handler.Featured(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
