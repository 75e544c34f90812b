package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title       string    `gorm:"not null"                  json:"title"`
	Price       float64   `gorm:"not null"                  json:"price"`
	Description string    `json:"description"`
	Category    string    `gorm:"index"                     json:"category"`
	Image       string    `json:"image"`
	RatingRate  float64   `gorm:"default:0"                 json:"rating_rate"`
	RatingCount int       `gorm:"default:0"                 json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                             json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"             json:"quantity"`
}

// Orders start as pending. No further transitions are modeled yet.
const OrderStatusPending = "pending"

type Order struct {
	ID              uint      `gorm:"primaryKey"      json:"id"`
	UserID          uint      `gorm:"index;not null"  json:"user_id"`
	OrderNumber     string    `gorm:"not null"        json:"order_number"`
	TotalAmount     float64   `gorm:"not null"        json:"total_amount"`
	Status          string    `gorm:"not null"        json:"status"`
	ShippingName    string    `gorm:"not null"        json:"shipping_name"`
	ShippingEmail   string    `gorm:"not null"        json:"shipping_email"`
	ShippingPhone   string    `gorm:"not null"        json:"shipping_phone"`
	ShippingAddress string    `gorm:"not null"        json:"shipping_address"`
	ShippingCity    string    `gorm:"not null"        json:"shipping_city"`
	ShippingZipcode string    `gorm:"not null"        json:"shipping_zipcode"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem keeps a snapshot of the product title and price at order time,
// so later catalog edits never rewrite order history.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey"                  json:"id"`
	OrderID      uint    `gorm:"index;not null"              json:"order_id"`
	ProductID    uint    `gorm:"not null"                    json:"product_id"`
	ProductTitle string  `gorm:"not null"                    json:"product_title"`
	ProductPrice float64 `gorm:"not null"                    json:"product_price"`
	Quantity     uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
}
