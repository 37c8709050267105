// Package cacheops — cache-aside поверх domain.Cache.
// Кеш — оптимизация, не зависимость: любой его отказ деградирует
// в прямой compute и никогда не доезжает до вызывающего.
package cacheops

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

// Счётчики для метрик; nil — метрики выключены.
type Stats interface {
	CacheHit(entity string)
	CacheMiss(entity string)
	CacheInvalidation(entity string)
}

type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	DelPattern(ctx context.Context, pattern string) error
	Available() bool
}

type Aside struct {
	cache cacheStore
	log   *log.Logger
	stats Stats
}

func NewAside(cache cacheStore, logger *log.Logger, stats Stats) *Aside {
	return &Aside{cache: cache, log: logger, stats: stats}
}

// GetOrCompute: get-or-compute-and-store.
//   - кеш помечен недоступным — сразу compute, без сетевого вызова;
//   - ошибка Get — логируем и считаем промахом;
//   - битое значение в кеше — тоже промах, пересчитываем и перезаписываем;
//   - неудачный Set не валит чтение.
func GetOrCompute[T any](ctx context.Context, a *Aside, key string, ttlSeconds int, compute func(context.Context) (T, error)) (T, error) {
	if !a.cache.Available() {
		a.log.Printf("bypass %q: cache unavailable", key)
		return compute(ctx)
	}

	b, err := a.cache.Get(ctx, key)
	if err != nil {
		a.log.Printf("get %q failed, falling back to compute: %v", key, err)
		return compute(ctx)
	}
	if b != nil {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			a.markHit(key)
			return out, nil
		}
		// мусор в кеше — перезапишем свежим значением
		a.log.Printf("stale/corrupt entry %q, recomputing", key)
	}

	a.markMiss(key)
	out, err := compute(ctx)
	if err != nil {
		return out, err
	}

	buf, err := json.Marshal(out)
	if err != nil || string(buf) == "null" {
		return out, nil // пустой результат не кешируем
	}
	if err := a.cache.Set(ctx, key, buf, ttlSeconds); err != nil {
		a.log.Printf("set %q failed (ignored): %v", key, err)
	}
	return out, nil
}

func (a *Aside) markHit(key string) {
	if a.stats != nil {
		a.stats.CacheHit(entityOf(key))
	}
}

func (a *Aside) markMiss(key string) {
	if a.stats != nil {
		a.stats.CacheMiss(entityOf(key))
	}
}

// Сущность — первый сегмент ключа ({entity}:{op}:...).
func entityOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
