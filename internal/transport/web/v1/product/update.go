package product

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// Update godoc
// @Summary     Partially update product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id   path int                 true "product id"
// @Param       body body domain.ProductPatch true "fields to update"
// @Success     200 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "products.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if err := patch.Validate(); err != nil {
		logx.Error(h.Log, reqID, op, "validation failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	// при переносе в другую категорию нужно инвалидировать и старую —
	// узнаём её до записи
	var oldCategoryID int64
	if patch.CategoryID != nil {
		old, err := h.Repo.ProductByID(r.Context(), id)
		if err == nil {
			oldCategoryID = old.CategoryID
		}
	}

	out, err := h.Repo.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logx.Info(h.Log, reqID, op, "not found", "id", id)
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.appendAudit(r.Context(), r, out.ID, domain.AuditUpdate, patch)
	h.Inval.OnWrite(r.Context(), domain.EntityProduct, out.ID,
		parentRefs(out.CategoryID, oldCategoryID))

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
