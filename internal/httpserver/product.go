package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/shophub/backend/internal/events"
	"github.com/shophub/backend/internal/logging"
	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
	"github.com/shophub/backend/internal/search"
	"github.com/shophub/backend/internal/service"
	"github.com/shophub/backend/internal/transport"
	"github.com/shophub/backend/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any, productID uint) {
	ctx, cancel := publishCtx(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(productID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// indexProduct mirrors the catalog mutation into elasticsearch,
// best-effort.
func (h *ProductHTTP) indexProduct(c echo.Context, product *models.Product) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexProduct(ctx, h.ES, product); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", product.ID, "error", err)
	}
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	filter := repo.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}

	products, err := h.Svc.List(ctx, filter)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, transport.NewProductViews(products))
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid product id")
	}

	product, err := h.Svc.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, transport.NewProductView(product))
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "Invalid product data")
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	h.indexProduct(c, product)
	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"title":     product.Title,
	}, product.ID)

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product created successfully",
		"product": transport.NewProductView(product),
	})
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid product id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid body")
	}

	product, err := h.Svc.Update(ctx, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_error", "status", 400, "error", err)
			return errorJSON(c, http.StatusBadRequest, "Invalid product data")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_error", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "Product not found")
		default:
			l.Error("update_product_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, "Server error")
		}
	}

	h.indexProduct(c, product)
	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"title":     product.Title,
	}, product.ID)

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": transport.NewProductView(product),
	})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid product id")
	}

	if err := h.Svc.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, uint(id)); err != nil {
			l.Error("es delete error", "product_id", id, "error", err)
		}
	}
	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	}, uint(id))

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

type SearchHTTP struct {
	ES *elasticsearch.Client
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return errorJSON(c, http.StatusBadRequest, "Query parameter q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, q, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": transport.NewProductViews(products),
	})
}
