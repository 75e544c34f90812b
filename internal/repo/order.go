package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/shophub/backend/internal/models"
)

// OrderLineRow is an order line enriched with the product's current image
// and category for display. Title and price come from the snapshot.
type OrderLineRow struct {
	ProductID    uint    `json:"product_id"`
	ProductTitle string  `json:"product_title"`
	ProductPrice float64 `json:"product_price"`
	Quantity     uint    `json:"quantity"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
}

// CreateOrder materializes a cart into a persisted order in one
// transaction: insert the order, insert its lines, clear the user's cart.
// Any failure rolls the whole thing back, readers never see a partial
// order.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID filters on id AND user_id, so another user's order looks
// exactly like a missing one.
func (r *GormRepo) OrderByID(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrderLines(ctx context.Context, orderID uint) ([]OrderLineRow, error) {
	var rows []OrderLineRow
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select(`order_items.product_id, order_items.product_title,
			order_items.product_price, order_items.quantity,
			COALESCE(products.image, '') AS image,
			COALESCE(products.category, '') AS category`).
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
