package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/pagination"
)

const auditCols = "seq, id, entity, entity_id, action, detail, addr, request_id, created_at"

// AppendAudit пишет запись журнала. Журнал append-only, пишем всегда в primary.
func (r *PGRepo) AppendAudit(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.audit_log", r.schema)).
		Columns("id", "entity", "entity_id", "action", "detail", "addr", "request_id").
		Values(rec.ID, rec.Entity, rec.EntityID, rec.Action, rec.Detail, rec.Addr, rec.RequestID).
		Suffix("RETURNING created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AppendAudit", sqlStr, args)

	start := time.Now()
	if err := r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...).Scan(&rec.CreatedAt); err != nil {
		r.logger.Printf("AppendAudit error after %s: %v", time.Since(start), err)
		return domain.AuditRecord{}, err
	}
	r.logger.Printf("AppendAudit ok in %s entity=%s entity_id=%d action=%s",
		time.Since(start), rec.Entity, rec.EntityID, rec.Action)
	return rec, nil
}

func (r *PGRepo) AuditList(ctx context.Context, page domain.ListPage) (domain.Page[domain.AuditEntry], error) {
	sb := r.qb().Select(auditCols).
		From(fmt.Sprintf("%s.audit_log", r.schema))
	sb = pagination.Apply(sb, "seq", page)

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("AuditList", sqlStr, args)

	start := time.Now()
	rows, err := r.route(sqlStr, false).Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("AuditList query error after %s: %v", time.Since(start), err)
		return domain.Page[domain.AuditEntry]{}, err
	}
	defer rows.Close()

	var res []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.Seq, &e.ID, &e.Entity, &e.EntityID, &e.Action,
			&e.Detail, &e.Addr, &e.RequestID, &e.CreatedAt); err != nil {
			r.logger.Printf("AuditList scan error: %v", err)
			return domain.Page[domain.AuditEntry]{}, err
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("AuditList rows error: %v", err)
		return domain.Page[domain.AuditEntry]{}, err
	}
	r.logger.Printf("AuditList ok in %s count=%d", time.Since(start), len(res))
	return pagination.BuildPage(res, page.Limit, func(e domain.AuditEntry) int64 { return e.Seq }), nil
}
