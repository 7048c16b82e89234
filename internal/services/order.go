package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	repository "github.com/arnavkapoor/storefront-platform/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, user *models.AuthUser) (*models.Order, error)
	GetOrderByID(ctx context.Context, user *models.AuthUser, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, user *models.AuthUser, params *ListOrdersParams) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, user *models.AuthUser, id uuid.UUID, status models.OrderStatus) error
}

// ListOrdersParams carries the raw listing options before authorization
// scoping is applied.
type ListOrdersParams struct {
	Status    string
	Search    string
	UserID    *uuid.UUID
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ConfirmationSender delivers the post-checkout email. Failures are logged,
// never surfaced: an order must not fail because an email did.
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	checkoutLock repository.CheckoutLockRepository
	confirmation ConfirmationSender
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	checkoutLock repository.CheckoutLockRepository,
	confirmation ConfirmationSender,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		checkoutLock: checkoutLock,
		confirmation: confirmation,
	}
}

// Checkout converts the caller's cart into an immutable pending order.
// The whole read-cart -> create-order -> clear-cart sequence runs under an
// owner-scoped lock, and order insert plus cart clear share one transaction,
// so a double submission can never produce two orders from one cart.
func (s *orderService) Checkout(ctx context.Context, user *models.AuthUser) (*models.Order, error) {

	acquired, err := s.checkoutLock.AcquireCheckoutLock(ctx, user.ID)
	if err != nil {
		return nil, appErrors.UnavailableError("Checkout is temporarily unavailable").WithError(err)
	}

	if !acquired {
		return nil, appErrors.CheckoutInProgressError("A checkout is already in progress for this cart")
	}

	defer func() {
		if err := s.checkoutLock.ReleaseCheckoutLock(ctx, user.ID); err != nil {
			slog.Warn("Failed to release checkout lock", slog.String("userId", user.ID.String()), slog.Any("error", err))
		}
	}()

	cart, err := s.cartRepo.GetCartByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.EmptyCartError("Cart is empty")
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.EmptyCartError("Cart is empty")
	}

	// Resolve every line against the catalog. Lines whose product is gone
	// are dropped; the snapshot captures the price at this moment.
	var items []models.OrderItem

	var total float64

	for _, line := range cart.Items {

		product, err := s.productRepo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				slog.Debug("Dropping checkout line for missing product", slog.String("productId", line.ProductID.String()))
				continue
			}
			return nil, appErrors.UnavailableError("Failed to resolve cart products").WithError(err)
		}

		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   product.Snapshot(),
		})
		total += product.Price * float64(line.Quantity)
	}

	if len(items) == 0 {
		return nil, appErrors.NoValidItemsError("No valid products in cart")
	}

	now := time.Now()
	order := &models.Order{
		ID:        uuid.New(),
		UserID:    user.ID,
		Items:     items,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.CreateOrderFromCart(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	if s.confirmation != nil {
		if err := s.confirmation.SendOrderConfirmation(ctx, user.Email, order); err != nil {
			slog.Warn("Order confirmation email failed", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, user *models.AuthUser, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !user.IsAdmin() && order.UserID != user.ID {
		return nil, appErrors.ForbiddenError("You don't have permission to access this order")
	}

	if user.IsAdmin() {
		order.UserEmail = s.lookupOwnerEmail(ctx, order.UserID)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, user *models.AuthUser, params *ListOrdersParams) ([]models.Order, int, error) {

	if params.Page < 1 {
		params.Page = 1
	}

	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 10
	}

	if params.Status != "" && !models.ValidOrderStatus(models.OrderStatus(params.Status)) {
		return nil, 0, appErrors.InvalidStatusError("Invalid status filter")
	}

	query := &models.OrderQuery{
		Status:       models.OrderStatus(params.Status),
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
		Page:         params.Page,
		PageSize:     params.PageSize,
		IncludeEmail: user.IsAdmin(),
	}

	// Non-admin callers only ever see their own orders. An admin sees all by
	// default and may narrow to one owner; search is admin only.
	if user.IsAdmin() {
		query.UserID = params.UserID
		query.Search = params.Search
	} else {
		id := user.ID
		query.UserID = &id
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, query)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus applies the status transition rules:
//   - admins may move a non-terminal order to any of the three statuses,
//   - owners may only cancel their own, not-yet-completed order,
//   - everything else is rejected.
//
// Re-asserting the current status of a terminal order is an idempotent no-op;
// any other transition out of a terminal state fails.
func (s *orderService) UpdateOrderStatus(ctx context.Context, user *models.AuthUser, id uuid.UUID, status models.OrderStatus) error {

	if !models.ValidOrderStatus(status) {
		return appErrors.InvalidStatusError("Invalid status")
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Order not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !user.IsAdmin() {
		if order.UserID != user.ID {
			return appErrors.ForbiddenError("Access denied")
		}

		if status != models.OrderStatusCancelled {
			return appErrors.ForbiddenError("Users can only cancel orders")
		}

		if order.Status == models.OrderStatusCompleted {
			return appErrors.CannotCancelCompletedError("Cannot cancel completed orders")
		}
	}

	if order.Status.IsTerminal() {
		if order.Status == status {
			return nil
		}
		return appErrors.InvalidStatusError("Order is already " + string(order.Status))
	}

	if _, err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Order not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return nil
}

func (s *orderService) lookupOwnerEmail(ctx context.Context, userID uuid.UUID) string {

	owner, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		slog.Warn("Failed to resolve order owner email", slog.String("userId", userID.String()), slog.Any("error", err))
		return "Unknown"
	}

	return owner.Email
}
