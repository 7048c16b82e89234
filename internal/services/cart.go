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

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

// GetCart returns the read-time projection of the stored cart: each line is
// resolved against the product catalog and lines whose product no longer
// exists are dropped from the view. The stored cart is never mutated here.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.CartView{UserID: userID, Items: []models.CartViewItem{}, UpdatedAt: time.Now()}, nil
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	view := &models.CartView{
		UserID:    cart.UserID,
		Items:     []models.CartViewItem{},
		UpdatedAt: cart.UpdatedAt,
	}

	for _, item := range cart.Items {

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				slog.Debug("Dropping cart line for missing product", slog.String("productId", item.ProductID.String()))
				continue
			}
			return nil, appErrors.UnavailableError("Failed to resolve cart products").WithError(err)
		}

		view.Items = append(view.Items, models.CartViewItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   product.Snapshot(),
		})
		view.Total += product.Price * float64(item.Quantity)
	}

	return view, nil
}

// AddItem merge-increments: an existing line's quantity grows by the request
// quantity, a new line is appended otherwise. Product existence is not
// checked here; it is resolved at read time and again at checkout.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.Cart, error) {

	if req.Quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be a positive integer")
	}

	cart, err := s.loadOrNewCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i, ok := cart.FindItem(req.ProductID); ok {
		cart.Items[i].Quantity += req.Quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	return s.save(ctx, cart)
}

// UpdateQuantity overwrites the quantity of an existing line. A line that is
// not present is left alone (deliberate no-op rather than an error). Setting
// the quantity to zero or below removes the line; quantities below one are
// never stored.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {

	cart, err := s.loadOrNewCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i, ok := cart.FindItem(req.ProductID)
	if !ok {
		return cart, nil
	}

	if req.Quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = req.Quantity
	}

	return s.save(ctx, cart)
}

// RemoveItem deletes the line if present; removing an absent line is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.Cart, error) {

	cart, err := s.loadOrNewCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i, ok := cart.FindItem(productID)
	if !ok {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	return s.save(ctx, cart)
}

func (s *cartService) loadOrNewCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {

	cart.UpdatedAt = time.Now()

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}
