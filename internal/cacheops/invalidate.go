package cacheops

import (
	"context"
	"log"

	"github.com/EgorLis/go-catalog/internal/domain"
)

// Родительская сущность, чей кеш зависит от записи в дочернюю
// (товар → его категория: детальная выдача категории включает состав).
type ParentRef struct {
	Entity string
	ID     int64
}

// Invalidator чистит кеш после записи. Вызывается строго после коммита
// в Postgres: инвалидация до записи позволила бы конкурентному читателю
// переналить в кеш ещё старые данные.
type Invalidator struct {
	cache cacheStore
	log   *log.Logger
	stats Stats
}

func NewInvalidator(cache cacheStore, logger *log.Logger, stats Stats) *Invalidator {
	return &Invalidator{cache: cache, log: logger, stats: stats}
}

// OnWrite: точечный ключ сущности + вся семья её списков + родители.
// Списки сметаем целиком: одна запись меняет членство и курсорную нарезку
// любой закешированной страницы. Отказы глотаем — TTL доберёт остатки.
func (iv *Invalidator) OnWrite(ctx context.Context, entity string, id int64, parents []ParentRef) {
	if !iv.cache.Available() {
		iv.log.Printf("skip invalidation %s:%d: cache unavailable", entity, id)
		return
	}

	if err := iv.cache.Del(ctx, domain.CacheKeyEntity(entity, id)); err != nil {
		iv.log.Printf("invalidate %s:%d key failed: %v", entity, id, err)
	}
	if err := iv.cache.DelPattern(ctx, domain.CacheKeyListPattern(entity)); err != nil {
		iv.log.Printf("invalidate %s lists failed: %v", entity, err)
	}
	if iv.stats != nil {
		iv.stats.CacheInvalidation(entity)
	}

	for _, p := range parents {
		if err := iv.cache.Del(ctx, domain.CacheKeyEntity(p.Entity, p.ID)); err != nil {
			iv.log.Printf("invalidate parent %s:%d failed: %v", p.Entity, p.ID, err)
		}
		if err := iv.cache.DelPattern(ctx, domain.CacheKeyListPattern(p.Entity)); err != nil {
			iv.log.Printf("invalidate parent %s lists failed: %v", p.Entity, err)
		}
		if iv.stats != nil {
			iv.stats.CacheInvalidation(p.Entity)
		}
	}
}
