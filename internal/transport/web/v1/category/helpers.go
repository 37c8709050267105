package category

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
)

// id из path-параметра: положительное целое, иначе ошибка клиента.
func pathID(r *http.Request) (int64, error) {
	n, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || n < 1 {
		return 0, domain.ErrBadParams
	}
	return n, nil
}

// Запись в журнал аудита. Отказ журнала не валит запрос — только лог.
func (h *Handler) appendAudit(ctx context.Context, r *http.Request, id int64, action string, detail any) {
	var payload []byte
	if detail != nil {
		payload, _ = json.Marshal(detail)
	}
	rec := domain.AuditRecord{
		ID:        uuid.New(),
		Entity:    domain.EntityCategory,
		EntityID:  id,
		Action:    action,
		Detail:    payload,
		Addr:      r.RemoteAddr,
		RequestID: mw.RequestIDFromCtx(ctx),
	}
	if _, err := h.Audit.AppendAudit(ctx, rec); err != nil {
		h.Log.Printf("audit append failed (ignored): %v", err)
	}
}
