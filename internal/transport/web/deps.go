package web

import (
	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
)

type Repos struct {
	Categories domain.CategoriesRepo
	Products   domain.ProductsRepo
	Audit      domain.AuditRepo
}

type CacheDeps struct {
	Aside *cacheops.Aside
	Inval *cacheops.Invalidator
}
