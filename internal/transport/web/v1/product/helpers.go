package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/transport/web/mw"
)

func pathID(r *http.Request) (int64, error) {
	n, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || n < 1 {
		return 0, domain.ErrBadParams
	}
	return n, nil
}

// Фильтр ?category_id= — положительное целое или пусто.
func parseFilter(r *http.Request) (domain.ProductFilter, error) {
	raw := r.URL.Query().Get("category_id")
	if raw == "" {
		return domain.ProductFilter{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return domain.ProductFilter{}, domain.ErrBadParams
	}
	return domain.ProductFilter{CategoryID: &n}, nil
}

// Запись товара инвалидирует и родительскую категорию: её детальная
// выдача и списки зависят от состава товаров.
func parentRefs(categoryIDs ...int64) []cacheops.ParentRef {
	var refs []cacheops.ParentRef
	seen := map[int64]bool{}
	for _, id := range categoryIDs {
		if id < 1 || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, cacheops.ParentRef{Entity: domain.EntityCategory, ID: id})
	}
	return refs
}

func (h *Handler) appendAudit(ctx context.Context, r *http.Request, id int64, action string, detail any) {
	var payload []byte
	if detail != nil {
		payload, _ = json.Marshal(detail)
	}
	rec := domain.AuditRecord{
		ID:        uuid.New(),
		Entity:    domain.EntityProduct,
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
