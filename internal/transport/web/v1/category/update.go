package category

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
// @Summary     Partially update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id   path int                  true "category id"
// @Param       body body domain.CategoryPatch true "fields to update"
// @Success     200 {object} domain.APIEnvelope{data=domain.Category}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/categories/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "categories.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	var patch domain.CategoryPatch
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

	out, err := h.Repo.UpdateCategory(r.Context(), id, patch)
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
	h.Inval.OnWrite(r.Context(), domain.EntityCategory, out.ID, nil)

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
