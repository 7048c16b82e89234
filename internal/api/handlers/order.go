package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arnavkapoor/storefront-platform/internal/api/middleware"
	"github.com/arnavkapoor/storefront-platform/internal/errors"
	models "github.com/arnavkapoor/storefront-platform/internal/models"
	service "github.com/arnavkapoor/storefront-platform/internal/services"
	"github.com/arnavkapoor/storefront-platform/internal/utils"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Check out the cart
//	@Description	Converts the caller's cart into a pending order at current prices
//	@Description	and clears the cart. Lines whose product no longer exists are dropped.
//	@Tags			Orders
//	@Produce		json
//	@Success		201	{object}	models.CheckoutResponse
//	@Failure		400	{object}	response.ErrorResponse	"Cart is empty or has no valid items"
//	@Failure		409	{object}	response.ErrorResponse	"Checkout already in progress"
//	@Router			/orders/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		order, err := h.orderService.Checkout(r.Context(), authUser)
		if err != nil {
			logger.Error("Checkout failed", slog.String("userId", authUser.ID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed",
			slog.String("orderId", order.ID.String()),
			slog.Float64("total", order.Total))
		response.Success(w, http.StatusCreated, models.CheckoutResponse{OrderID: order.ID})

	}
}

// GetOrder godoc
//	@Summary		Get an order
//	@Description	Returns one order. Customers can only read their own orders;
//	@Description	admins can read any and also see the owner's email.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	models.Order
//	@Failure		403	{object}	response.ErrorResponse	"Not your order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), authUser, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)

	}
}

// ListOrders godoc
//	@Summary		List orders
//	@Description	Customers see their own orders. Admins see all orders and can
//	@Description	additionally filter by user and search by order id or owner email.
//	@Tags			Orders
//	@Produce		json
//	@Param			status		query		string	false	"Status filter (pending, completed, cancelled)"
//	@Param			search		query		string	false	"Admin only: search over order id and owner email"
//	@Param			userId		query		string	false	"Admin only: filter by owner"
//	@Param			sortBy		query		string	false	"Sort field (createdAt, total, status, userEmail)"
//	@Param			sortOrder	query		string	false	"asc or desc"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	models.PaginatedResponse
//	@Failure		400			{object}	response.ErrorResponse	"Invalid status"
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		pageSize, _ := strconv.Atoi(q.Get("limit"))

		params := &service.ListOrdersParams{
			Status:    q.Get("status"),
			Search:    q.Get("search"),
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
			Page:      page,
			PageSize:  pageSize,
		}

		if raw := q.Get("userId"); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid user id"))
				return
			}
			params.UserID = &userID
		}

		orders, total, err := h.orderService.ListOrders(r.Context(), authUser, params)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     params.Page,
			PageSize: params.PageSize,
		})

	}
}

// UpdateOrderStatus godoc
//	@Summary		Update an order's status
//	@Description	Admins may move a non-terminal order to any status. Customers may
//	@Description	only cancel their own orders, and never a completed one.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	response.APIResponse
//	@Failure		400		{object}	response.ErrorResponse	"Invalid status or terminal order"
//	@Failure		403		{object}	response.ErrorResponse	"Not permitted"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Router			/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.orderService.UpdateOrderStatus(r.Context(), authUser, id, req.Status); err != nil {
			logger.Error("Order status update failed",
				slog.String("orderId", id.String()),
				slog.String("status", string(req.Status)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.String("orderId", id.String()),
			slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, map[string]bool{"success": true})

	}
}
