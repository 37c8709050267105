package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/config"
	"github.com/EgorLis/go-catalog/internal/domain"
	redisx "github.com/EgorLis/go-catalog/internal/infra/cache/redis"
	"github.com/EgorLis/go-catalog/internal/infra/database/postgres"
	"github.com/EgorLis/go-catalog/internal/metrics"
	"github.com/EgorLis/go-catalog/internal/transport/web"
)

// Точка сборки: владеет жизненным циклом пулов и клиента кеша,
// компоненты получают готовые зависимости и сами ничего не открывают.
type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	cacheLog := log.New(base.Writer(), base.Prefix()+"[cache] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBReplicaDSN, cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	// лежащий Redis не мешает старту: чтения пойдут мимо кеша
	if err := rc.Ping(ctx); err != nil {
		base.Printf("Redis unavailable, starting degraded: %v", err)
	} else {
		base.Println("Redis is initialized")
	}

	base.Println("init metrics")
	m := metrics.New()

	aside := cacheops.NewAside(rc, cacheLog, m)
	inval := cacheops.NewInvalidator(rc, cacheLog, m)

	base.Println("init Server")
	rep := web.Repos{Categories: pgRepo, Products: pgRepo, Audit: pgRepo}
	cd := web.CacheDeps{Aside: aside, Inval: inval}
	server := web.New(serverLog, cfg, rep, cd, pgRepo, rc, m)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		cache:  rc,
		repo:   pgRepo,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
