package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shophub/backend/internal/cache"
	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
	"github.com/shophub/backend/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo

	// Reader serves product lookups, optionally through the redis cache.
	// Cache is nil when redis is not configured.
	Reader cache.ProductSource
	Cache  *cache.ProductCache
}

func NewCatalogService(r *repo.GormRepo, productCache *cache.ProductCache) *CatalogService {
	svc := &CatalogService{Repo: r, Cache: productCache}
	if productCache != nil {
		svc.Reader = productCache
	} else {
		svc.Reader = r
	}
	return svc
}

func (s *CatalogService) List(ctx context.Context, filter repo.ProductFilter) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, filter)
}

func (s *CatalogService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Reader.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product := &models.Product{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		RatingRate:  req.RatingRate,
		RatingCount: req.RatingCount,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the mutable fields wholesale and bumps updated_at.
func (s *CatalogService) Update(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	product.Title = req.Title
	product.Price = req.Price
	product.Description = req.Description
	product.Category = req.Category
	product.Image = req.Image
	product.RatingRate = req.RatingRate
	product.RatingCount = req.RatingCount

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return nil
}
