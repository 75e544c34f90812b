package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
	"github.com/shophub/backend/internal/transport"
)

func TestListProductsFilterAndOrder(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCatalogService(r, nil)
	ctx := context.Background()

	older := &models.Product{Title: "Blue Mug", Description: "a ceramic mug", Category: "kitchen", Price: 10}
	require.NoError(t, r.DB.Create(older).Error)
	newer := &models.Product{Title: "Desk Lamp", Description: "bright LED", Category: "home", Price: 30}
	require.NoError(t, r.DB.Create(newer).Error)
	require.NoError(t, r.DB.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	all, err := svc.List(ctx, repo.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Desk Lamp", all[0].Title)

	// "all" disables the category filter.
	all, err = svc.List(ctx, repo.ProductFilter{Category: "all"})
	require.NoError(t, err)
	require.Len(t, all, 2)

	kitchen, err := svc.List(ctx, repo.ProductFilter{Category: "kitchen"})
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	require.Equal(t, "Blue Mug", kitchen[0].Title)

	// Case-insensitive substring over title and description.
	found, err := svc.List(ctx, repo.ProductFilter{Search: "CERAMIC"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Blue Mug", found[0].Title)

	none, err := svc.List(ctx, repo.ProductFilter{Search: "motorcycle"})
	require.NoError(t, err)
	require.Len(t, none, 0)
}

func TestGetByIDNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCatalogService(r, nil)

	_, err := svc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesFieldsAndBumpsTimestamp(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCatalogService(r, nil)
	ctx := context.Background()

	p := createProduct(t, r, "Mug", 10)
	require.NoError(t, r.DB.Model(p).Update("updated_at", time.Now().Add(-time.Hour)).Error)
	var before models.Product
	require.NoError(t, r.DB.First(&before, p.ID).Error)

	updated, err := svc.Update(ctx, p.ID, transport.ProductRequest{
		Title:       "Big Mug",
		Price:       12,
		Description: "bigger",
		Category:    "kitchen",
		Image:       "big.png",
		RatingRate:  4.2,
		RatingCount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "Big Mug", updated.Title)
	require.Equal(t, float64(12), updated.Price)
	require.Equal(t, 4.2, updated.RatingRate)
	require.True(t, updated.UpdatedAt.After(before.UpdatedAt))

	_, err = svc.Update(ctx, 999, transport.ProductRequest{Title: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCatalogService(r, nil)
	ctx := context.Background()

	p := createProduct(t, r, "Mug", 10)
	require.NoError(t, svc.Delete(ctx, p.ID))
	require.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCatalogService(r, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, transport.ProductRequest{Price: 5})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, transport.ProductRequest{Title: "x", Price: -1})
	require.ErrorIs(t, err, ErrValidation)
}
