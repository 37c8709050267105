package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/EgorLis/go-catalog/internal/app"
)

// @title       Catalog API
// @version     1.0
// @description CRUD API категорий и товаров: Postgres + Redis cache-aside, кейсет-пагинация.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
