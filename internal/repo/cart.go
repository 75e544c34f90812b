package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/shophub/backend/internal/models"
)

// CartLineRow is the denormalized cart view: the caller's quantity joined
// with live product data, not a snapshot.
type CartLineRow struct {
	CartItemID  uint    `json:"cart_item_id"`
	ProductID   uint    `json:"product_id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	RatingRate  float64 `json:"rating_rate"`
	RatingCount int     `json:"rating_count"`
	Quantity    uint    `json:"quantity"`
}

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]CartLineRow, error) {
	var rows []CartLineRow
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id AS cart_item_id, cart_items.quantity,
			products.id AS product_id, products.title, products.price,
			products.description, products.category, products.image,
			products.rating_rate, products.rating_count`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AddToCart inserts the line or atomically increments the quantity of an
// existing (user, product) line. The increment runs as a single UPDATE so
// concurrent adds never lose a quantity.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(item).Error
		}
		return tx.Create(item).Error
	})
}

// UpdateCartItem sets an explicit quantity on a line owned by the caller.
func (r *GormRepo) UpdateCartItem(ctx context.Context, userID, cartItemID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND user_id = ?", cartItemID, userID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ? AND user_id = ?", cartItemID, userID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
