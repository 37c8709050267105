package category

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       body body domain.CategoryDraft true "category"
// @Success     201 {object} domain.APIEnvelope{data=domain.Category}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "categories.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var draft domain.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if err := draft.Validate(); err != nil {
		logx.Error(h.Log, reqID, op, "validation failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	out, err := h.Repo.CreateCategory(r.Context(), draft)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	// аудит и инвалидация — строго после коммита записи
	h.appendAudit(r.Context(), r, out.ID, domain.AuditCreate, draft)
	h.Inval.OnWrite(r.Context(), domain.EntityCategory, out.ID, nil)

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID)
	v1.WriteEnvelope(w, r, http.StatusCreated, domain.OkData(out))
}
