package transport

import (
	"time"

	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// Rating is nested under products to match the frontend contract.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type ProductView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

func NewProductView(p *models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating: Rating{
			Rate:  p.RatingRate,
			Count: p.RatingCount,
		},
	}
}

func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = NewProductView(&products[i])
	}
	return views
}

type ProductRequest struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	RatingRate  float64 `json:"rating_rate"`
	RatingCount int     `json:"rating_count"`
}

// CartLineView is a cart line shaped like a product with the caller's
// quantity attached, always reflecting live catalog state.
type CartLineView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
	Quantity    uint    `json:"quantity"`
}

func NewCartLineViews(rows []repo.CartLineRow) []CartLineView {
	views := make([]CartLineView, len(rows))
	for i, row := range rows {
		views[i] = CartLineView{
			ID:          row.ProductID,
			Title:       row.Title,
			Price:       row.Price,
			Description: row.Description,
			Category:    row.Category,
			Image:       row.Image,
			Rating: Rating{
				Rate:  row.RatingRate,
				Count: row.RatingCount,
			},
			Quantity: row.Quantity,
		}
	}
	return views
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ShippingInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
}

// CreateOrderItem carries the client-submitted snapshot fields. The price
// and title are trusted as sent and frozen onto the order line.
type CreateOrderItem struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items        []CreateOrderItem `json:"items"`
	ShippingInfo ShippingInfo      `json:"shipping_info"`
}

type OrderItemView struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type OrderView struct {
	ID           uint            `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	TotalAmount  float64         `json:"totalAmount"`
	Status       string          `json:"status"`
	ShippingInfo ShippingInfo    `json:"shippingInfo"`
	CreatedAt    time.Time       `json:"createdAt"`
	Items        []OrderItemView `json:"items"`
}

func NewOrderView(order *models.Order, lines []repo.OrderLineRow) OrderView {
	items := make([]OrderItemView, len(lines))
	for i, line := range lines {
		items[i] = OrderItemView{
			ID:       line.ProductID,
			Title:    line.ProductTitle,
			Price:    line.ProductPrice,
			Quantity: line.Quantity,
			Image:    line.Image,
			Category: line.Category,
		}
	}
	return OrderView{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		ShippingInfo: ShippingInfo{
			FullName: order.ShippingName,
			Email:    order.ShippingEmail,
			Phone:    order.ShippingPhone,
			Address:  order.ShippingAddress,
			City:     order.ShippingCity,
			ZipCode:  order.ShippingZipcode,
		},
		CreatedAt: order.CreatedAt,
		Items:     items,
	}
}

type CreateOrderResponse struct {
	Message string    `json:"message"`
	Order   OrderView `json:"order"`
}
