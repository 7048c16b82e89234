package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/arnavkapoor/storefront-platform/internal/cache"
	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	repository "github.com/arnavkapoor/storefront-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache) ProductService {
	return &productService{
		repo: repo,
		cache: productCache,
		// Admin-supplied text fields are rendered in the storefront; strip all
		// markup rather than trying to allow a safe subset.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) sanitize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:          uuid.New(),
		Title:       s.sanitize(req.Title),
		Price:       req.Price,
		Description: s.sanitize(req.Description),
		Category:    s.sanitize(req.Category),
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}

	if product.Title == "" || product.Description == "" || product.Category == "" {
		return nil, appErrors.ValidationError("Title, description and category are required")
	}

	if product.Price <= 0 {
		return nil, appErrors.ValidationError("Price must be a positive number")
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		slog.Warn("Product cache lookup failed", slog.String("key", cacheKey), slog.Any("error", err))
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, product, 0); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", cacheKey), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Title != nil {
		product.Title = s.sanitize(*req.Title)
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, appErrors.ValidationError("Price must be a positive number")
		}
		product.Price = *req.Price
	}

	if req.Description != nil {
		product.Description = s.sanitize(*req.Description)
	}

	if req.Category != nil {
		product.Category = s.sanitize(*req.Category)
	}

	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, int, error) {

	if query.Page < 1 {
		query.Page = 1
	}

	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 10
	}

	products, total, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	// Stale entries expire on their own TTL anyway, so a failed delete is
	// only worth a warning.
	deleteCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.cache.Delete(deleteCtx, cacheKey); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("key", cacheKey), slog.Any("error", err))
	}
}
