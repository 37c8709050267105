package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/go-catalog/internal/config"
	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/metrics"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/audit"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/category"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/health"
	"github.com/EgorLis/go-catalog/internal/transport/web/v1/product"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, rep Repos, cd CacheDeps,
	db health.Pinger, cache domain.Cache, m *metrics.Metrics) *Server {

	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	categoryLog := log.New(logger.Writer(), logger.Prefix()+"[categories] ", logger.Flags())
	productLog := log.New(logger.Writer(), logger.Prefix()+"[products] ", logger.Flags())
	auditLog := log.New(logger.Writer(), logger.Prefix()+"[audit] ", logger.Flags())

	healthHandler := &health.Handler{Log: healthLog, DB: db, Cache: cache}
	categoryHandler := &category.Handler{
		Log: categoryLog, Repo: rep.Categories, Audit: rep.Audit,
		Aside: cd.Aside, Inval: cd.Inval,
		ListTTL: cfg.CacheListTTL, EntityTTL: cfg.CacheEntityTTL,
	}
	productHandler := &product.Handler{
		Log: productLog, Repo: rep.Products, Audit: rep.Audit,
		Aside: cd.Aside, Inval: cd.Inval,
		ListTTL: cfg.CacheListTTL, EntityTTL: cfg.CacheEntityTTL,
	}
	auditHandler := &audit.Handler{Log: auditLog, Repo: rep.Audit}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:     healthHandler,
			categories: categoryHandler,
			products:   productHandler,
			audit:      auditHandler,
			metrics:    m,
			cfg:        cfg,
			log:        logger,
		}),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
