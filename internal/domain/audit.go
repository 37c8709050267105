package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Действия для журнала аудита.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// Запись аудита: кто (адрес), что и с какой сущностью сделал.
// Detail — сериализованное тело изменения (черновик/патч), как пришло от клиента.
type AuditRecord struct {
	ID        uuid.UUID `json:"id"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	Action    string    `json:"action"`
	Detail    []byte    `json:"detail,omitempty"`
	Addr      string    `json:"addr"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditRepo interface {
	AppendAudit(ctx context.Context, rec AuditRecord) (AuditRecord, error)
	// Журнал листается тем же кейсетом, но по seq (BIGSERIAL), не по uuid.
	AuditList(ctx context.Context, page ListPage) (Page[AuditEntry], error)
}

// Строка журнала с монотонным seq для пагинации.
type AuditEntry struct {
	Seq int64 `json:"seq"`
	AuditRecord
}
