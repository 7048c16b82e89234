package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnavkapoor/storefront-platform/internal/api/handlers"
	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	service "github.com/arnavkapoor/storefront-platform/internal/services"
	"github.com/arnavkapoor/storefront-platform/internal/services/mocks"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderTest() (*mocks.OrderService, *handlers.OrderHandler) {
	mockOrderService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockOrderService)
	return mockOrderService, orderHandler
}

func TestCheckout(t *testing.T) {
	t.Run("Success - Order Placed", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()
		req, authUser := createAuthenticatedRequest("POST", "/api/orders/checkout", nil, models.RoleUser)
		recorder := httptest.NewRecorder()

		mockOrder := &models.Order{
			ID:     uuid.New(),
			UserID: authUser.ID,
			Total:  42.50,
			Status: models.OrderStatusPending,
		}

		mockOrderService.On("Checkout", mock.Anything, authUser).Return(mockOrder, nil).Once()

		orderHandler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()
		req, authUser := createAuthenticatedRequest("POST", "/api/orders/checkout", nil, models.RoleUser)
		recorder := httptest.NewRecorder()

		mockOrderService.On("Checkout", mock.Anything, authUser).
			Return(nil, appErrors.EmptyCartError("Cart is empty")).Once()

		orderHandler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Concurrent Checkout", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()
		req, authUser := createAuthenticatedRequest("POST", "/api/orders/checkout", nil, models.RoleUser)
		recorder := httptest.NewRecorder()

		mockOrderService.On("Checkout", mock.Anything, authUser).
			Return(nil, appErrors.CheckoutInProgressError("A checkout is already in progress for this cart")).Once()

		orderHandler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - No Authenticated User", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()
		req := httptest.NewRequest("POST", "/api/orders/checkout", nil)
		recorder := httptest.NewRecorder()

		orderHandler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockOrderService.AssertNotCalled(t, "Checkout")
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Success - Own Order", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		orderID := uuid.New()
		req, authUser := createAuthenticatedRequest("GET", "/api/orders/"+orderID.String(), nil, models.RoleUser)
		req.SetPathValue("id", orderID.String())
		recorder := httptest.NewRecorder()

		mockOrder := &models.Order{ID: orderID, UserID: authUser.ID, Status: models.OrderStatusPending}

		mockOrderService.On("GetOrderByID", mock.Anything, authUser, orderID).Return(mockOrder, nil).Once()

		orderHandler.GetOrder()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Someone Else's Order", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		orderID := uuid.New()
		req, authUser := createAuthenticatedRequest("GET", "/api/orders/"+orderID.String(), nil, models.RoleUser)
		req.SetPathValue("id", orderID.String())
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrderByID", mock.Anything, authUser, orderID).
			Return(nil, appErrors.ForbiddenError("You don't have permission to access this order")).Once()

		orderHandler.GetOrder()(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed Order ID", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		req, _ := createAuthenticatedRequest("GET", "/api/orders/not-a-uuid", nil, models.RoleUser)
		req.SetPathValue("id", "not-a-uuid")
		recorder := httptest.NewRecorder()

		orderHandler.GetOrder()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockOrderService.AssertNotCalled(t, "GetOrderByID")
	})
}

func TestListOrders(t *testing.T) {
	t.Run("Success - Query Params Forwarded", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		req, authUser := createAuthenticatedRequest("GET", "/api/orders?status=pending&sortBy=total&sortOrder=asc&page=2&limit=5", nil, models.RoleAdmin)
		recorder := httptest.NewRecorder()

		mockOrderService.On("ListOrders", mock.Anything, authUser, mock.MatchedBy(func(p *service.ListOrdersParams) bool {
			return p.Status == "pending" && p.SortBy == "total" && p.SortOrder == "asc" && p.Page == 2 && p.PageSize == 5
		})).Return([]models.Order{}, 0, nil).Once()

		orderHandler.ListOrders()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Success - Admin User Filter", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		targetUser := uuid.New()
		req, authUser := createAuthenticatedRequest("GET", "/api/orders?userId="+targetUser.String(), nil, models.RoleAdmin)
		recorder := httptest.NewRecorder()

		mockOrderService.On("ListOrders", mock.Anything, authUser, mock.MatchedBy(func(p *service.ListOrdersParams) bool {
			return p.UserID != nil && *p.UserID == targetUser
		})).Return([]models.Order{}, 0, nil).Once()

		orderHandler.ListOrders()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed User Filter", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		req, _ := createAuthenticatedRequest("GET", "/api/orders?userId=banana", nil, models.RoleAdmin)
		recorder := httptest.NewRecorder()

		orderHandler.ListOrders()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockOrderService.AssertNotCalled(t, "ListOrders")
	})

	t.Run("Failure - Invalid Status", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		req, authUser := createAuthenticatedRequest("GET", "/api/orders?status=shipped", nil, models.RoleUser)
		recorder := httptest.NewRecorder()

		mockOrderService.On("ListOrders", mock.Anything, authUser, mock.Anything).
			Return(nil, 0, appErrors.InvalidStatusError("Invalid order status")).Once()

		orderHandler.ListOrders()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Success - Admin Completes Order", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		orderID := uuid.New()
		body, _ := json.Marshal(models.UpdateOrderStatusRequest{Status: models.OrderStatusCompleted})
		req, authUser := createAuthenticatedRequest("PUT", "/api/orders/"+orderID.String()+"/status", body, models.RoleAdmin)
		req.SetPathValue("id", orderID.String())
		recorder := httptest.NewRecorder()

		mockOrderService.On("UpdateOrderStatus", mock.Anything, authUser, orderID, models.OrderStatusCompleted).
			Return(nil).Once()

		orderHandler.UpdateOrderStatus()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Cancelling Completed Order", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		orderID := uuid.New()
		body, _ := json.Marshal(models.UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
		req, authUser := createAuthenticatedRequest("PUT", "/api/orders/"+orderID.String()+"/status", body, models.RoleUser)
		req.SetPathValue("id", orderID.String())
		recorder := httptest.NewRecorder()

		mockOrderService.On("UpdateOrderStatus", mock.Anything, authUser, orderID, models.OrderStatusCancelled).
			Return(appErrors.CannotCancelCompletedError("Completed orders cannot be cancelled")).Once()

		orderHandler.UpdateOrderStatus()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, appErrors.ErrCodeCannotCancelCompleted, resp.Error.Code)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Status", func(t *testing.T) {
		mockOrderService, orderHandler := setupOrderTest()

		orderID := uuid.New()
		req, _ := createAuthenticatedRequest("PUT", "/api/orders/"+orderID.String()+"/status", []byte(`{}`), models.RoleUser)
		req.SetPathValue("id", orderID.String())
		recorder := httptest.NewRecorder()

		orderHandler.UpdateOrderStatus()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockOrderService.AssertNotCalled(t, "UpdateOrderStatus")
	})
}
