package category

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
// @Summary     List categories (keyset pagination)
// @Tags        categories
// @Produce     json
// @Param       cursor query string false "id последней строки предыдущей страницы"
// @Param       limit  query int    false "размер страницы, [1,100], дефолт 20"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Category,pagination=domain.Pagination}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/categories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "categories.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	// курсор валидируем до любого похода в БД
	cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad cursor", err, "raw", r.URL.Query().Get("cursor"))
		v1.WriteDomainError(w, r, err)
		return
	}
	limit := pagination.ParseLimit(r.URL.Query().Get("limit"))
	page := domain.ListPage{Cursor: cursor, Limit: limit}

	key := domain.CacheKeyList(domain.EntityCategory, "all", cursor, limit)
	res, err := cacheops.GetOrCompute(r.Context(), h.Aside, key, h.ListTTL,
		func(ctx context.Context) (domain.Page[domain.Category], error) {
			return h.Repo.CategoriesList(ctx, page)
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(res.Items), "has_more", res.HasMore)
	v1.WriteEnvelope(w, r, http.StatusOK, domain.OkPage(res, limit))
}
