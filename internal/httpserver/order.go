package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shophub/backend/internal/events"
	"github.com/shophub/backend/internal/logging"
	"github.com/shophub/backend/internal/service"
	"github.com/shophub/backend/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, event map[string]any, userID uint) {
	ctx, cancel := publishCtx(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	order, items, err := h.Svc.CreateOrder(ctx, uid, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "Invalid order data")
		}
		// Any transaction failure rolls back completely, nothing partial
		// is visible. Detail stays in the log.
		l.Error("create_order_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":        "order_created",
		"userID":      uid,
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.TotalAmount,
	}, uid)

	itemViews := make([]transport.OrderItemView, len(items))
	for i, it := range items {
		itemViews[i] = transport.OrderItemView{
			ID:       it.ProductID,
			Title:    it.ProductTitle,
			Price:    it.ProductPrice,
			Quantity: it.Quantity,
		}
	}
	view := transport.NewOrderView(order, nil)
	view.Items = itemViews

	l.Info("create_order_success", "user_id", uid, "order_id", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{
		Message: "Order placed successfully",
		Order:   view,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	details, err := h.Svc.ListOrders(ctx, uid)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	views := make([]transport.OrderView, len(details))
	for i := range details {
		views[i] = transport.NewOrderView(&details[i].Order, details[i].Lines)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid order id")
	}

	details, err := h.Svc.GetOrder(ctx, uid, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "order_id", id)
			return errorJSON(c, http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, transport.NewOrderView(&details.Order, details.Lines))
}
