package product

import (
	"log"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
)

type Handler struct {
	Log   *log.Logger
	Repo  domain.ProductsRepo
	Audit domain.AuditRepo
	Aside *cacheops.Aside
	Inval *cacheops.Invalidator

	ListTTL   int // секунд
	EntityTTL int // секунд
}
