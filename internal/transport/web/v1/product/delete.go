package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete product
// @Tags        products
// @Produce     json
// @Param       id path int true "product id"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/products/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "products.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	categoryID, err := h.Repo.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logx.Info(h.Log, reqID, op, "not found", "id", id)
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.appendAudit(r.Context(), r, id, domain.AuditDelete, nil)
	h.Inval.OnWrite(r.Context(), domain.EntityProduct, id, parentRefs(categoryID))

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKData(w, r, map[string]bool{strconv.FormatInt(id, 10): true})
}
