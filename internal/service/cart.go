package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shophub/backend/internal/cache"
	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo

	// Reader validates product existence on add, optionally cached.
	Reader cache.ProductSource
}

func NewCartService(r *repo.GormRepo, productCache *cache.ProductCache) *CartService {
	svc := &CartService{Repo: r, Reader: r}
	if productCache != nil {
		svc.Reader = productCache
	}
	return svc
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]repo.CartLineRow, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.Reader.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	item, err := s.Repo.UpdateCartItem(ctx, userID, cartItemID, uint(quantity))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		return err
	}
	return nil
}

// ClearCart is idempotent, clearing an empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
