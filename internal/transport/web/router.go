package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/go-catalog/internal/docs"
	"github.com/EgorLis/go-catalog/internal/config"
	"github.com/EgorLis/go-catalog/internal/metrics"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/audit"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/category"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/health"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/product"
)

type routerDeps struct {
	health     *health.Handler
	categories *category.Handler
	products   *product.Handler
	audit      *audit.Handler
	metrics    *metrics.Metrics
	cfg        *config.Config
	log        *log.Logger
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// categories
	mux.HandleFunc("POST /v1/categories", limitBody(1<<20, d.categories.Create))
	mux.HandleFunc("GET /v1/categories", d.categories.List)
	mux.HandleFunc("GET /v1/categories/{id}", d.categories.Get)
	mux.HandleFunc("PATCH /v1/categories/{id}", limitBody(1<<20, d.categories.Update))
	mux.HandleFunc("DELETE /v1/categories/{id}", d.categories.Delete)

	// products
	mux.HandleFunc("POST /v1/products", limitBody(1<<20, d.products.Create))
	mux.HandleFunc("GET /v1/products", d.products.List)
	mux.HandleFunc("GET /v1/products/{id}", d.products.Get)
	mux.HandleFunc("PATCH /v1/products/{id}", limitBody(1<<20, d.products.Update))
	mux.HandleFunc("DELETE /v1/products/{id}", d.products.Delete)

	// audit
	mux.HandleFunc("GET /v1/audit", d.audit.List)

	// metrics + swagger
	mux.Handle("GET /metrics", d.metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// middleware: request id, логи, метрики, лимитер, mux
	limiter := mw.NewClientLimiter(d.cfg.RateLimitRPS, d.cfg.RateLimitBurst)
	var h http.Handler = mux
	h = mw.RateLimit(limiter, d.log, d.metrics)(h)
	h = mw.Metrics(d.metrics, mux)(h)
	h = mw.Logging(d.log)(h)
	return mw.WithRequestID(h)
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
