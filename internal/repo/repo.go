package repo

import (
	"gorm.io/gorm"
)

// GormRepo is the persistence gateway. It is injected into every service,
// the services never touch the connection pool directly.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
