package category

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
// @Summary     Delete category (cascades to its products)
// @Tags        categories
// @Produce     json
// @Param       id path int true "category id"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/categories/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "categories.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Repo.DeleteCategory(r.Context(), id); err != nil {
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
	// каскад снёс и товары категории — их кеш чистим как дочернюю семью
	h.Inval.OnWrite(r.Context(), domain.EntityCategory, id, nil)
	h.Inval.OnWrite(r.Context(), domain.EntityProduct, 0, nil)

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKData(w, r, map[string]bool{strconv.FormatInt(id, 10): true})
}
