package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shophub/backend/internal/logging"
	"github.com/shophub/backend/internal/models"
)

const notFoundSentinel = "notfound"

// ProductSource is the slice of the persistence gateway the cache sits in
// front of.
type ProductSource interface {
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
}

// ProductCache is a read-through cache for product lookups. Redis being
// down or stale never fails a read, the database stays authoritative.
type ProductCache struct {
	next ProductSource
	rdb  *redis.Client
	ttl  time.Duration
}

func NewProductCache(next ProductSource, rdb *redis.Client) *ProductCache {
	return &ProductCache{
		next: next,
		rdb:  rdb,
		ttl:  5 * time.Minute,
	}
}

func key(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *ProductCache) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	l := logging.FromContext(ctx)

	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundSentinel {
			return nil, gorm.ErrRecordNotFound
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			l.Warn("cached product unmarshal failed, falling through to db", "error", err)
			break
		}
		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		l.Warn("redis get failed, falling through to db", "error", err)
	}

	product, err := c.next.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if setErr := c.rdb.Set(ctx, key(id), notFoundSentinel, time.Minute).Err(); setErr != nil {
				l.Warn("redis set notfound failed", "error", setErr)
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		return product, nil
	}
	if err := c.rdb.Set(ctx, key(id), jsonData, c.ttl).Err(); err != nil {
		l.Warn("redis set failed", "error", err)
	}
	return product, nil
}

// Invalidate drops the cached entry after a catalog mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id uint) {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		logging.FromContext(ctx).Warn("redis del failed", "key", key(id), "error", err)
	}
}
