package mw

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/EgorLis/go-catalog/internal/domain"
)

// ClientLimiter — token bucket на клиента (по IP). Фоновых горутин нет:
// протухшие записи вычищаются лениво при обращении.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	rps     rate.Limit
	burst   int

	lastSweep time.Time
}

type clientEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

const (
	sweepEvery = time.Minute
	staleAfter = 10 * time.Minute
)

func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		clients:   make(map[string]*clientEntry),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (cl *ClientLimiter) Allow(client string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	if now.Sub(cl.lastSweep) > sweepEvery {
		for k, e := range cl.clients {
			if now.Sub(e.lastSeen) > staleAfter {
				delete(cl.clients, k)
			}
		}
		cl.lastSweep = now
	}

	e, ok := cl.clients[client]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[client] = e
	}
	e.lastSeen = now
	return e.lim.Allow()
}

type rateLimitStats interface {
	RateLimited()
}

// RateLimit — middleware: 429 с конвертом, когда bucket клиента пуст.
func RateLimit(cl *ClientLimiter, l *log.Logger, stats rateLimitStats) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			if !cl.Allow(client) {
				if stats != nil {
					stats.RateLimited()
				}
				l.Printf("lvl=warn req_id=%s msg=rate_limited client=%s",
					RequestIDFromCtx(r.Context()), client)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(
					domain.Fail(domain.ErrCodeRateLimited, "rate limited"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
