package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shophub/backend/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return New(db)
}

func TestAddToCartMergesExistingLine(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := &models.CartItem{UserID: 1, ProductID: 7, Quantity: 2}
	require.NoError(t, r.AddToCart(ctx, first))

	second := &models.CartItem{UserID: 1, ProductID: 7, Quantity: 3}
	require.NoError(t, r.AddToCart(ctx, second))

	var items []models.CartItem
	require.NoError(t, r.DB.Where("user_id = ?", 1).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, uint(5), items[0].Quantity)
	require.Equal(t, uint(5), second.Quantity)
}

func TestAddToCartSeparatesUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddToCart(ctx, &models.CartItem{UserID: 1, ProductID: 7, Quantity: 1}))
	require.NoError(t, r.AddToCart(ctx, &models.CartItem{UserID: 2, ProductID: 7, Quantity: 1}))

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestCreateOrderRollsBackOnFailure(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.DB.Create(&models.CartItem{UserID: 1, ProductID: 7, Quantity: 2}).Error)

	order := &models.Order{
		UserID:          1,
		OrderNumber:     "ORD-1-test",
		TotalAmount:     20,
		Status:          models.OrderStatusPending,
		ShippingName:    "a",
		ShippingEmail:   "a@b.c",
		ShippingPhone:   "1",
		ShippingAddress: "x",
		ShippingCity:    "y",
		ShippingZipcode: "z",
	}
	// Duplicate explicit primary keys make the second line insert fail
	// mid-transaction.
	items := []models.OrderItem{
		{ID: 5, ProductID: 7, ProductTitle: "t", ProductPrice: 10, Quantity: 2},
		{ID: 5, ProductID: 8, ProductTitle: "t2", ProductPrice: 1, Quantity: 1},
	}

	require.Error(t, r.CreateOrder(ctx, order, items))

	var orderCount, itemCount, cartCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&cartCount).Error)
	require.EqualValues(t, 0, orderCount)
	require.EqualValues(t, 0, itemCount)
	require.EqualValues(t, 1, cartCount)
}

func TestCreateOrderClearsWholeCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.DB.Create(&models.CartItem{UserID: 1, ProductID: 7, Quantity: 2}).Error)
	require.NoError(t, r.DB.Create(&models.CartItem{UserID: 1, ProductID: 8, Quantity: 1}).Error)
	require.NoError(t, r.DB.Create(&models.CartItem{UserID: 2, ProductID: 7, Quantity: 4}).Error)

	order := &models.Order{
		UserID:          1,
		OrderNumber:     "ORD-2-test",
		TotalAmount:     10,
		Status:          models.OrderStatusPending,
		ShippingName:    "a",
		ShippingEmail:   "a@b.c",
		ShippingPhone:   "1",
		ShippingAddress: "x",
		ShippingCity:    "y",
		ShippingZipcode: "z",
	}
	items := []models.OrderItem{
		// Not present in the cart on purpose, the clear is unconditional.
		{ProductID: 99, ProductTitle: "t", ProductPrice: 10, Quantity: 1},
	}
	require.NoError(t, r.CreateOrder(ctx, order, items))

	var mine, others int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&mine).Error)
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("user_id = ?", 2).Count(&others).Error)
	require.EqualValues(t, 0, mine)
	require.EqualValues(t, 1, others)

	var lines []models.OrderItem
	require.NoError(t, r.DB.Where("order_id = ?", order.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
}

func TestOrderLinesEnrichedWithLiveProduct(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.DB.Create(&models.Product{
		Title: "Mug", Price: 8, Category: "kitchen", Image: "mug.png",
	}).Error)

	order := &models.Order{
		UserID: 1, OrderNumber: "ORD-3-test", TotalAmount: 10,
		Status:          models.OrderStatusPending,
		ShippingName:    "a", ShippingEmail: "a@b.c", ShippingPhone: "1",
		ShippingAddress: "x", ShippingCity: "y", ShippingZipcode: "z",
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductTitle: "Mug (old title)", ProductPrice: 10, Quantity: 1},
		{ProductID: 42, ProductTitle: "Gone", ProductPrice: 1, Quantity: 1},
	}
	require.NoError(t, r.CreateOrder(ctx, order, items))

	lines, err := r.OrderLines(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// The snapshot survives, image/category come from the live catalog.
	require.Equal(t, "Mug (old title)", lines[0].ProductTitle)
	require.Equal(t, float64(10), lines[0].ProductPrice)
	require.Equal(t, "mug.png", lines[0].Image)
	require.Equal(t, "kitchen", lines[0].Category)

	// Missing product still yields the line, with empty display fields.
	require.Equal(t, "Gone", lines[1].ProductTitle)
	require.Equal(t, "", lines[1].Image)
}

func TestGetCartJoinsLiveProductData(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.DB.Create(&models.Product{
		Title: "Lamp", Price: 30, Description: "desk lamp",
		Category: "home", Image: "lamp.png", RatingRate: 4.5, RatingCount: 12,
	}).Error)
	require.NoError(t, r.DB.Create(&models.CartItem{UserID: 1, ProductID: 1, Quantity: 2}).Error)

	rows, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint(1), rows[0].ProductID)
	require.Equal(t, "Lamp", rows[0].Title)
	require.Equal(t, float64(30), rows[0].Price)
	require.Equal(t, 4.5, rows[0].RatingRate)
	require.Equal(t, uint(2), rows[0].Quantity)

	// The cart view tracks the live catalog, not a snapshot.
	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", 1).Update("price", 25).Error)
	rows, err = r.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, float64(25), rows[0].Price)
}
