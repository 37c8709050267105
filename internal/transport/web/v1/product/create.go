package product

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       body body domain.ProductDraft true "product"
// @Success     201 {object} domain.APIEnvelope{data=domain.Product}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "products.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var draft domain.ProductDraft
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

	out, err := h.Repo.CreateProduct(r.Context(), draft)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.appendAudit(r.Context(), r, out.ID, domain.AuditCreate, draft)
	h.Inval.OnWrite(r.Context(), domain.EntityProduct, out.ID, parentRefs(out.CategoryID))

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID, "sku", out.SKU)
	v1.WriteEnvelope(w, r, http.StatusCreated, domain.OkData(out))
}
