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

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any, userID uint) {
	ctx, cancel := publishCtx(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCartEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.GetCart(ctx, uid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, transport.NewCartLineViews(rows))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, uid, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "product_id is required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "product_id", req.ProductID)
			return errorJSON(c, http.StatusNotFound, "Product not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, "Server error")
		}
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    uid,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	}, uid)

	l.Info("add_to_cart_success", "user_id", uid, "product_id", item.ProductID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Item added to cart",
		"cartItem": item,
	})
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid cart item id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	item, err := h.Svc.UpdateItem(ctx, uid, uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_cart_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "Quantity must be at least 1")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_cart_error", "status", 404, "cart_item_id", id)
			return errorJSON(c, http.StatusNotFound, "Cart item not found")
		default:
			l.Error("update_cart_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, "Server error")
		}
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_updated",
		"userID":     uid,
		"cartItemID": item.ID,
		"quantity":   item.Quantity,
	}, uid)

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Cart item updated",
		"cartItem": item,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid product id")
	}

	if err := h.Svc.RemoveItem(ctx, uid, uint(productID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404, "product_id", productID)
			return errorJSON(c, http.StatusNotFound, "Cart item not found")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"userID":    uid,
		"productID": productID,
	}, uid)

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from cart"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, uid); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userID": uid,
	}, uid)

	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared"})
}
