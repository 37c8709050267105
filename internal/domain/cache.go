package domain

import (
	"context"
	"strconv"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
// Конвенция: {entity}:{op}:{filter}:{cursor|start}:{limit}.
func CacheKeyEntity(entity string, id int64) string {
	return entity + ":one:" + itoa(id)
}

func CacheKeyList(entity, filter string, cursor *int64, limit int) string {
	c := "start"
	if cursor != nil {
		c = itoa(*cursor)
	}
	return entity + ":list:" + filter + ":" + c + ":" + strconv.Itoa(limit)
}

// Паттерн для сметания всех закешированных страниц списка сущности.
// Любая запись меняет членство/порядок списков, так что чистим всю семью.
func CacheKeyListPattern(entity string) string {
	return entity + ":list:*"
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// Простой k/v интерфейс. Реализация — Redis.
// Get возвращает (nil, nil) на промахе. Available() — синхронная проверка
// без сетевого вызова: недоступный кеш деградирует в прямой compute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	DelPattern(ctx context.Context, pattern string) error
	Available() bool
	Ping(context.Context) error
	Close()
}
