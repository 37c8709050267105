package redisx

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb    *redis.Client
	logger *log.Logger
	up     atomic.Bool
}

type Config struct {
	Addr     string
	DB       int
	Password string
}

func New(cfg Config, logger *log.Logger) *Cache {
	c := &Cache{logger: logger}
	c.rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			c.up.Store(true)
			logger.Println("connection established")
			return nil
		},
	})
	c.rdb.AddHook(&availabilityHook{c: c})
	return c
}

// Available — синхронная проверка флага, без сетевого вызова.
// Флаг переключают хуки клиента (dial/process) и Ping.
func (c *Cache) Available() bool { return c.up.Load() }

func (c *Cache) Ping(ctx context.Context) error {
	err := c.rdb.Ping(ctx).Err()
	if err != nil {
		c.up.Store(false)
		c.logger.Printf("PING failed: %v", err)
	} else {
		c.up.Store(true)
		c.logger.Println("PING ok")
	}
	return err
}

func (c *Cache) Close() {
	if c.rdb == nil {
		c.logger.Println("nothing to close")
		return
	}
	c.up.Store(false)
	if err := c.rdb.Close(); err != nil {
		c.logger.Printf("error while closing: %v", err)
		return
	}
	c.logger.Println("closed")
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Printf("GET %q: not found", key)
		return nil, nil
	}
	if err != nil {
		c.logger.Printf("GET %q: error: %v", key, err)
		return nil, err
	}
	c.logger.Printf("GET %q: hit (%d bytes)", key, len(b))
	return b, nil
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	err := c.rdb.Set(ctx, key, val, ttl).Err()
	if err != nil {
		c.logger.Printf("SET %q failed: %v", key, err)
	} else {
		c.logger.Printf("SET %q ok (ttl=%s)", key, ttl)
	}
	return err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.logger.Printf("DEL %v failed: %v", keys, err)
	} else {
		c.logger.Printf("DEL %v: deleted=%d", keys, n)
	}
	return err
}

// DelPattern сметает ключи по маске через SCAN (не KEYS — тот блокирует сервер).
// Удаляем пачками, чтобы не собирать весь keyspace в память.
func (c *Cache) DelPattern(ctx context.Context, pattern string) error {
	const batch = 256
	var (
		keys    []string
		deleted int64
	)
	iter := c.rdb.Scan(ctx, 0, pattern, batch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= batch {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Printf("DEL PATTERN %q failed: %v", pattern, err)
				return err
			}
			deleted += n
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Printf("SCAN %q failed: %v", pattern, err)
		return err
	}
	if len(keys) > 0 {
		n, err := c.rdb.Del(ctx, keys...).Result()
		if err != nil {
			c.logger.Printf("DEL PATTERN %q failed: %v", pattern, err)
			return err
		}
		deleted += n
	}
	c.logger.Printf("DEL PATTERN %q: deleted=%d", pattern, deleted)
	return nil
}

// availabilityHook переключает флаг доступности по жизненному циклу соединения:
// неудачный dial или сетевая ошибка команды — кеш считается лежащим,
// успешная команда — снова живым.
type availabilityHook struct {
	c *Cache
}

func (h *availabilityHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.c.up.Store(false)
			return nil, err
		}
		h.c.up.Store(true)
		return conn, nil
	}
}

func (h *availabilityHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.observe(err)
		return err
	}
}

func (h *availabilityHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		h.observe(err)
		return err
	}
}

func (h *availabilityHook) observe(err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		h.c.up.Store(true)
		return
	}
	if isNetworkErr(err) {
		h.c.up.Store(false)
	}
}

// Ошибка-ответ сервера (WRONGTYPE и т.п.) — сервер жив; валим флаг только на сетевых.
func isNetworkErr(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
