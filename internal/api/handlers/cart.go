package handlers

import (
	"log/slog"
	"net/http"

	"github.com/arnavkapoor/storefront-platform/internal/api/middleware"
	"github.com/arnavkapoor/storefront-platform/internal/errors"
	models "github.com/arnavkapoor/storefront-platform/internal/models"
	service "github.com/arnavkapoor/storefront-platform/internal/services"
	"github.com/arnavkapoor/storefront-platform/internal/utils"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Cart routes are always scoped to the authenticated caller; the cart key is
// the user id, never a client-supplied identifier.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart godoc
//	@Summary		Get own cart
//	@Description	Returns the caller's cart with each line joined to the current
//	@Description	product record. Lines whose product no longer exists are omitted.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), authUser.ID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds a product line. If the product is already in the cart the
//	@Description	quantities are summed.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddCartItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), authUser.ID, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

// UpdateQuantity godoc
//	@Summary		Set a cart line quantity
//	@Description	Overwrites the quantity of an existing line. A quantity of zero
//	@Description	removes the line. Lines not in the cart are left untouched.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateCartItemRequest	true	"Product and new quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/cart/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), authUser.ID, &req)
		if err != nil {
			logger.Error("Failed to update cart item", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Description	Removes a product line from the cart. Removing a product that is
//	@Description	not in the cart succeeds without changes.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string	true	"Product ID"
//	@Success		200			{object}	models.Cart
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), authUser.ID, productID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}
