package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poppes-store/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, cartKey string, info model.CustomerInfo, userID string) (*model.Order, error) {
	args := m.Called(ctx, cartKey, info, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, s model.OrderStatus) error {
	args := m.Called(ctx, id, s)
	return args.Error(0)
}

func testOrder(status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:     uuid.New(),
		UserID: "user-7",
		Items: []model.CartItem{
			{ProductID: "P1", Name: "Ghee", Price: 449, Quantity: 2},
		},
		Total:     942.9,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestOrderHandler_Checkout(t *testing.T) {
	logger := zerolog.Nop()

	info := model.CustomerInfo{
		Name:    "Anna Andersson",
		Email:   "anna@example.com",
		Phone:   "0701234567",
		Address: "Storgatan 1, Stockholm",
	}

	tests := []struct {
		name           string
		body           interface{}
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           model.CheckoutRequest{CustomerInfo: info},
			mockReturn:     testOrder(model.StatusPending),
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Empty cart",
			body:           model.CheckoutRequest{CustomerInfo: info},
			mockError:      model.ErrEmptyCart,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Duplicate submission",
			body:           model.CheckoutRequest{CustomerInfo: info},
			mockError:      model.ErrCheckoutInFlight,
			expectedStatus: http.StatusConflict,
			expectService:  true,
		},
		{
			name:           "Malformed body",
			body:           "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("Checkout", mock.Anything, mock.AnythingOfType("string"), info, "").
					Return(tt.mockReturn, tt.mockError)
			}

			handler := NewOrderHandler(mockService, logger)

			var body bytes.Buffer
			if s, ok := tt.body.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.body))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/checkout", &body)
			w := httptest.NewRecorder()

			handler.Checkout(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp checkoutResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "order placed successfully", resp.Message)
				assert.Equal(t, tt.mockReturn.ID, resp.Order.ID)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	shipped := testOrder(model.StatusShipped)

	tests := []struct {
		name           string
		orderID        string
		mockReturn     *model.Order
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Found",
			orderID:        shipped.ID.String(),
			mockReturn:     shipped,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			orderID:        uuid.NewString(),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Malformed ID",
			orderID:        "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("GetByID", mock.Anything, uuid.MustParse(tt.orderID)).
					Return(tt.mockReturn, nil)
			}

			handler := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.orderID, nil)
			req.SetPathValue("id", tt.orderID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var view orderView
				require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
				assert.Equal(t, shipped.ID, view.Order.ID)
				assert.Equal(t, "Shipped", view.Projection.Label)
				assert.Equal(t, 75, view.Projection.Percent)
				require.Len(t, view.Timeline, 4)
				assert.True(t, view.Timeline[2].Reached)
				assert.False(t, view.Timeline[3].Reached)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	tests := []struct {
		name           string
		status         model.OrderStatus
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Valid transition",
			status:         model.StatusPacked,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown status",
			status:         model.OrderStatus("refunded"),
			mockError:      model.ErrInvalidStatus,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing order",
			status:         model.StatusPacked,
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			mockService.On("UpdateStatus", mock.Anything, orderID, tt.status).Return(tt.mockError)

			handler := NewOrderHandler(mockService, logger)

			body, err := json.Marshal(model.StatusUpdateRequest{Status: tt.status})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+orderID.String()+"/status", bytes.NewReader(body))
			req.SetPathValue("id", orderID.String())
			w := httptest.NewRecorder()

			handler.UpdateStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_ListAll_EmptyIsList(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	mockService.On("ListAll", mock.Anything, 0, 0).Return(nil, nil)

	handler := NewOrderHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	w := httptest.NewRecorder()

	handler.ListAll(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
