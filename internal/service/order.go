package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
	"github.com/shophub/backend/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// OrderDetails pairs an order with its lines for retrieval responses.
type OrderDetails struct {
	Order models.Order
	Lines []repo.OrderLineRow
}

// NewOrderNumber derives a display-only order number from the current time
// and a random suffix. Uniqueness is likely but not enforced by the store.
func NewOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// CreateOrder materializes the submitted items into a persisted order and
// clears the caller's cart, all inside one transaction. The submitted
// price and title are the source of truth for the snapshot, they are not
// re-validated against the live catalog or the live cart.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, []models.OrderItem, error) {
	if len(req.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if err := validateShipping(req.ShippingInfo); err != nil {
		return nil, nil, err
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		it := req.Items[i]
		if it.ID == 0 {
			return nil, nil, fmt.Errorf("%w: item id required", ErrValidation)
		}
		if it.Price < 0 {
			return nil, nil, fmt.Errorf("%w: item price must be >= 0", ErrValidation)
		}
		quantity := it.Quantity
		if quantity == 0 {
			quantity = 1
		}

		total += it.Price * float64(quantity)
		items = append(items, models.OrderItem{
			ProductID:    it.ID,
			ProductTitle: it.Title,
			ProductPrice: it.Price,
			Quantity:     quantity,
		})
	}

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     NewOrderNumber(),
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingName:    req.ShippingInfo.FullName,
		ShippingEmail:   req.ShippingInfo.Email,
		ShippingPhone:   req.ShippingInfo.Phone,
		ShippingAddress: req.ShippingInfo.Address,
		ShippingCity:    req.ShippingInfo.City,
		ShippingZipcode: req.ShippingInfo.ZipCode,
	}

	if err := s.Repo.CreateOrder(ctx, order, items); err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func validateShipping(info transport.ShippingInfo) error {
	missing := ""
	switch {
	case info.FullName == "":
		missing = "fullName"
	case info.Email == "":
		missing = "email"
	case info.Phone == "":
		missing = "phone"
	case info.Address == "":
		missing = "address"
	case info.City == "":
		missing = "city"
	case info.ZipCode == "":
		missing = "zipCode"
	}
	if missing != "" {
		return fmt.Errorf("%w: shipping %s required", ErrValidation, missing)
	}
	return nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]OrderDetails, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]OrderDetails, 0, len(orders))
	for i := range orders {
		lines, err := s.Repo.OrderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		details = append(details, OrderDetails{Order: orders[i], Lines: lines})
	}
	return details, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*OrderDetails, error) {
	order, err := s.Repo.OrderByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	lines, err := s.Repo.OrderLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetails{Order: *order, Lines: lines}, nil
}
