package product

import (
	"context"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/pagination"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// List godoc
// @Summary     List products (keyset pagination)
// @Tags        products
// @Produce     json
// @Param       cursor      query string false "id последней строки предыдущей страницы"
// @Param       limit       query int    false "размер страницы, [1,100], дефолт 20"
// @Param       category_id query int    false "фильтр по категории"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Product,pagination=domain.Pagination}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "products.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad cursor", err, "raw", r.URL.Query().Get("cursor"))
		v1.WriteDomainError(w, r, err)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad filter", err, "raw", r.URL.Query().Get("category_id"))
		v1.WriteDomainError(w, r, err)
		return
	}
	limit := pagination.ParseLimit(r.URL.Query().Get("limit"))
	page := domain.ListPage{Cursor: cursor, Limit: limit}

	// одинаковые (filter, cursor, limit) дают одинаковый ключ
	key := domain.CacheKeyList(domain.EntityProduct, f.Descriptor(), cursor, limit)
	res, err := cacheops.GetOrCompute(r.Context(), h.Aside, key, h.ListTTL,
		func(ctx context.Context) (domain.Page[domain.Product], error) {
			return h.Repo.ProductsList(ctx, f, page)
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(res.Items), "has_more", res.HasMore)
	v1.WriteEnvelope(w, r, http.StatusOK, domain.OkPage(res, limit))
}
