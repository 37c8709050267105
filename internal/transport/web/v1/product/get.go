package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// Get godoc
// @Summary     Get product by id
// @Tags        products
// @Produce     json
// @Param       id path int true "product id"
// @Success     200 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "products.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	key := domain.CacheKeyEntity(domain.EntityProduct, id)
	out, err := cacheops.GetOrCompute(r.Context(), h.Aside, key, h.EntityTTL,
		func(ctx context.Context) (domain.Product, error) {
			return h.Repo.ProductByID(ctx, id)
		})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logx.Info(h.Log, reqID, op, "not found", "id", id)
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
