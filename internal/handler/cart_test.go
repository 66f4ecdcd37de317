package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/middleware"
	"github.com/cybermarket/server/internal/store"
)

// mockStoreService is a testify mock over store.Service
type mockStoreService struct {
	mock.Mock
}

func (m *mockStoreService) GetCart(ctx context.Context, userID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	return itemsArg(args.Get(0)), args.Error(1)
}

func (m *mockStoreService) AddToCart(ctx context.Context, userID, itemID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID, itemID)
	return itemsArg(args.Get(0)), args.Error(1)
}

func (m *mockStoreService) RemoveFromCart(ctx context.Context, userID string, index int) ([]domain.Item, error) {
	args := m.Called(ctx, userID, index)
	return itemsArg(args.Get(0)), args.Error(1)
}

func (m *mockStoreService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockStoreService) Checkout(ctx context.Context, userID string) (*store.CheckoutResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.CheckoutResult), args.Error(1)
}

func (m *mockStoreService) ToggleFavorite(ctx context.Context, userID, itemID string) ([]string, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStoreService) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStoreService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *mockStoreService) GetBalance(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockStoreService) GetInventory(ctx context.Context, userID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	return itemsArg(args.Get(0)), args.Error(1)
}

func itemsArg(v interface{}) []domain.Item {
	if v == nil {
		return nil
	}
	return v.([]domain.Item)
}

// authedRequest builds a request carrying verified claims for userID
func authedRequest(method, target string, body interface{}, userID string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(middleware.WithClaims(req.Context(), &auth.Claims{UserID: userID}))
}

func TestHandleAddToCart(t *testing.T) {
	InitValidator()

	rifle := domain.Item{ID: "item-1", Name: "SPECTRE SMG-11", Price: 12500}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mockStoreService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: AddToCartRequest{ItemID: "item-1"},
			setupMock: func(m *mockStoreService) {
				m.On("AddToCart", mock.Anything, "user-1", "item-1").Return([]domain.Item{rifle}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":12500`,
		},
		{
			name:           "Invalid Request - Missing Item ID",
			requestBody:    AddToCartRequest{},
			setupMock:      func(m *mockStoreService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name:        "Cart Full",
			requestBody: AddToCartRequest{ItemID: "item-1"},
			setupMock: func(m *mockStoreService) {
				m.On("AddToCart", mock.Anything, "user-1", "item-1").Return(nil, domain.ErrCartFull)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgCartFullError,
		},
		{
			name:        "Unknown Item",
			requestBody: AddToCartRequest{ItemID: "item-1"},
			setupMock: func(m *mockStoreService) {
				m.On("AddToCart", mock.Anything, "user-1", "item-1").Return(nil, domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgItemNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockStoreService)
			tt.setupMock(svc)

			req := authedRequest(http.MethodPost, "/api/v1/cart", tt.requestBody, "user-1")
			rec := httptest.NewRecorder()

			HandleAddToCart(svc)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleCheckout(t *testing.T) {
	t.Run("declined checkout is still a 200", func(t *testing.T) {
		svc := new(mockStoreService)
		svc.On("Checkout", mock.Anything, "user-1").Return(&store.CheckoutResult{
			Success: false,
			Message: domain.MsgInsufficientFunds,
			Balance: 20000,
		}, nil)

		req := authedRequest(http.MethodPost, "/api/v1/cart/checkout", nil, "user-1")
		rec := httptest.NewRecorder()

		HandleCheckout(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result store.CheckoutResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Equal(t, domain.MsgInsufficientFunds, result.Message)
		assert.Equal(t, 20000, result.Balance)
	})

	t.Run("successful checkout returns transaction", func(t *testing.T) {
		svc := new(mockStoreService)
		svc.On("Checkout", mock.Anything, "user-1").Return(&store.CheckoutResult{
			Success:     true,
			Message:     domain.MsgCheckoutComplete,
			Transaction: &domain.Transaction{ID: "txn-1", Total: 12500},
			Balance:     37500,
		}, nil)

		req := authedRequest(http.MethodPost, "/api/v1/cart/checkout", nil, "user-1")
		rec := httptest.NewRecorder()

		HandleCheckout(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result store.CheckoutResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Success)
		require.NotNil(t, result.Transaction)
		assert.Equal(t, "txn-1", result.Transaction.ID)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		svc := new(mockStoreService)
		svc.On("Checkout", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		req := authedRequest(http.MethodPost, "/api/v1/cart/checkout", nil, "ghost")
		rec := httptest.NewRecorder()

		HandleCheckout(svc)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgUserNotFoundError)
	})
}

func TestHandleRemoveFromCart(t *testing.T) {
	InitValidator()

	t.Run("invalid index maps to 400", func(t *testing.T) {
		svc := new(mockStoreService)
		svc.On("RemoveFromCart", mock.Anything, "user-1", 5).Return(nil, domain.ErrInvalidCartIndex)

		req := authedRequest(http.MethodPost, "/api/v1/cart/remove", RemoveFromCartRequest{Index: 5}, "user-1")
		rec := httptest.NewRecorder()

		HandleRemoveFromCart(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgBadCartIndexError)
	})

	t.Run("negative index rejected before the service", func(t *testing.T) {
		svc := new(mockStoreService)

		req := authedRequest(http.MethodPost, "/api/v1/cart/remove", RemoveFromCartRequest{Index: -1}, "user-1")
		rec := httptest.NewRecorder()

		HandleRemoveFromCart(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "RemoveFromCart", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleToggleFavorite(t *testing.T) {
	InitValidator()

	svc := new(mockStoreService)
	svc.On("ToggleFavorite", mock.Anything, "user-1", "item-1").Return([]string{"item-1"}, nil)

	req := authedRequest(http.MethodPost, "/api/v1/favorites/toggle", ToggleFavoriteRequest{ItemID: "item-1"}, "user-1")
	rec := httptest.NewRecorder()

	HandleToggleFavorite(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp FavoritesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"item-1"}, resp.Favorites)
}
