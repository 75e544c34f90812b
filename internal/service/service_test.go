package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
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
	return repo.New(db)
}

func createProduct(t *testing.T, r *repo.GormRepo, title string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Title: title, Price: price, Category: "misc"}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}
