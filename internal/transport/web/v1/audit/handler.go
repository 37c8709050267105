package audit

import (
	"log"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/pagination"
	"github.com/EgorLis/go-catalog/internal/transport/web/logx"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/go-catalog/internal/transport/web/v1"
)

type Handler struct {
	Log  *log.Logger
	Repo domain.AuditRepo
}

// List godoc
// @Summary     List audit log (keyset pagination by seq)
// @Description Журнал не кешируем: читается редко, а записи на каждый write
// @Tags        audit
// @Produce     json
// @Param       cursor query string false "seq последней строки предыдущей страницы"
// @Param       limit  query int    false "размер страницы, [1,100], дефолт 20"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.AuditEntry,pagination=domain.Pagination}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/audit [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "audit.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad cursor", err, "raw", r.URL.Query().Get("cursor"))
		v1.WriteDomainError(w, r, err)
		return
	}
	limit := pagination.ParseLimit(r.URL.Query().Get("limit"))

	res, err := h.Repo.AuditList(r.Context(), domain.ListPage{Cursor: cursor, Limit: limit})
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(res.Items), "has_more", res.HasMore)
	v1.WriteEnvelope(w, r, http.StatusOK, domain.OkPage(res, limit))
}
