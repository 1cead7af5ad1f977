package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poppes-store/internal/cart"
	"poppes-store/internal/middleware"
	"poppes-store/internal/model"
	"poppes-store/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, key string) (*service.CartView, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, key, productID string, quantity int) (*service.CartView, cart.AddOutcome, error) {
	args := m.Called(ctx, key, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Get(1).(cart.AddOutcome), args.Error(2)
	}
	return args.Get(0).(*service.CartView), args.Get(1).(cart.AddOutcome), args.Error(2)
}

func (m *MockCartService) UpdateItem(ctx context.Context, key, productID string, quantity int) (*service.CartView, error) {
	args := m.Called(ctx, key, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, key, productID string) (*service.CartView, error) {
	args := m.Called(ctx, key, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func testView(quantity int) *service.CartView {
	items := []model.CartItem{
		{ProductID: "P1", Name: "Ghee", Price: 449, Stock: 10, Quantity: quantity},
	}
	return &service.CartView{
		Items:  items,
		Count:  quantity,
		Totals: cart.ComputeTotals(items),
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		body            interface{}
		quantitySent    int
		mockOutcome     cart.AddOutcome
		mockError       error
		expectedStatus  int
		expectedMessage string
		expectService   bool
	}{
		{
			name:            "New line",
			body:            map[string]interface{}{"productId": "P1", "quantity": 2},
			quantitySent:    2,
			mockOutcome:     cart.OutcomeAdded,
			expectedStatus:  http.StatusOK,
			expectedMessage: "added to cart",
			expectService:   true,
		},
		{
			name:            "Merged line",
			body:            map[string]interface{}{"productId": "P1", "quantity": 1},
			quantitySent:    1,
			mockOutcome:     cart.OutcomeUpdated,
			expectedStatus:  http.StatusOK,
			expectedMessage: "quantity updated in cart",
			expectService:   true,
		},
		{
			name:           "Omitted quantity defaults to one",
			body:           map[string]interface{}{"productId": "P1"},
			quantitySent:   1,
			mockOutcome:    cart.OutcomeAdded,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Insufficient stock",
			body:           map[string]interface{}{"productId": "P1", "quantity": 99},
			quantitySent:   99,
			mockError:      model.ErrInsufficientStock,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Unknown product",
			body:           map[string]interface{}{"productId": "missing", "quantity": 1},
			quantitySent:   1,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Missing product ID",
			body:           map[string]interface{}{"quantity": 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed body",
			body:           "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			if tt.expectService {
				productID := tt.body.(map[string]interface{})["productId"].(string)
				var view *service.CartView
				if tt.mockError == nil {
					view = testView(tt.quantitySent)
				}
				mockService.On("AddItem", mock.Anything, mock.AnythingOfType("string"), productID, tt.quantitySent).
					Return(view, tt.mockOutcome, tt.mockError)
			}

			handler := NewCartHandler(mockService, logger)

			var body bytes.Buffer
			if s, ok := tt.body.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.body))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", &body)
			w := httptest.NewRecorder()

			handler.AddItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK && tt.expectedMessage != "" {
				var resp cartResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedMessage, resp.Message)
				require.NotNil(t, resp.Cart)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		quantity        int
		expectedMessage string
	}{
		{
			name:            "Set quantity",
			quantity:        3,
			expectedMessage: "quantity updated in cart",
		},
		{
			name:            "Zero removes the line",
			quantity:        0,
			expectedMessage: "removed from cart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			mockService.On("UpdateItem", mock.Anything, mock.AnythingOfType("string"), "P1", tt.quantity).
				Return(testView(tt.quantity), nil)

			handler := NewCartHandler(mockService, logger)

			body, err := json.Marshal(map[string]int{"quantity": tt.quantity})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/cart/items/P1", bytes.NewReader(body))
			req.SetPathValue("id", "P1")
			w := httptest.NewRecorder()

			handler.UpdateItem(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp cartResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)

			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	mockService.On("RemoveItem", mock.Anything, mock.AnythingOfType("string"), "P1").
		Return(&service.CartView{Items: []model.CartItem{}}, nil)

	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/P1", nil)
	req.SetPathValue("id", "P1")
	w := httptest.NewRecorder()

	handler.RemoveItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "removed from cart", resp.Message)

	mockService.AssertExpectations(t)
}

func TestCartHandler_Get_UsesSessionCookie(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	mockService.On("Get", mock.Anything, "session-1").
		Return(&service.CartView{Items: []model.CartItem{}}, nil)

	handler := NewCartHandler(mockService, logger)
	wrapped := middleware.Session(http.HandlerFunc(handler.Get))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "session-1"})
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_Clear(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	mockService.On("Clear", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w := httptest.NewRecorder()

	handler.Clear(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "cart cleared", resp.Message)
	require.NotNil(t, resp.Cart)
	assert.Empty(t, resp.Cart.Items)

	mockService.AssertExpectations(t)
}
