package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/go-catalog/internal/domain"
	"github.com/EgorLis/go-catalog/internal/pagination"
)

const categoryCols = "id, name, description, created_at, updated_at"

func (r *PGRepo) CreateCategory(ctx context.Context, draft domain.CategoryDraft) (domain.Category, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.categories", r.schema)).
		Columns("name", "description").
		Values(draft.Name, draft.Description).
		Suffix("RETURNING " + categoryCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateCategory", sqlStr, args)

	start := time.Now()
	row := r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...)
	var out domain.Category
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("CreateCategory scan error after %s: %v", time.Since(start), err)
		return domain.Category{}, err
	}
	r.logger.Printf("CreateCategory ok in %s id=%d name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

func (r *PGRepo) CategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	q := r.qb().Select(categoryCols).
		From(fmt.Sprintf("%s.categories", r.schema)).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CategoryByID", sqlStr, args)

	start := time.Now()
	row := r.route(sqlStr, false).QueryRow(ctx, sqlStr, args...)
	var out domain.Category
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("CategoryByID not found in %s id=%d", time.Since(start), id)
			return domain.Category{}, domain.ErrNotFound
		}
		r.logger.Printf("CategoryByID scan error after %s: %v", time.Since(start), err)
		return domain.Category{}, err
	}
	r.logger.Printf("CategoryByID ok in %s id=%d", time.Since(start), out.ID)
	return out, nil
}

// Частичное обновление: только белый список колонок, имена полей из запроса
// в SQL не попадают никогда.
func (r *PGRepo) UpdateCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (domain.Category, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	q := r.qb().Update(fmt.Sprintf("%s.categories", r.schema)).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + categoryCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateCategory", sqlStr, args)

	start := time.Now()
	row := r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...)
	var out domain.Category
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("UpdateCategory not found in %s id=%d", time.Since(start), id)
			return domain.Category{}, domain.ErrNotFound
		}
		r.logger.Printf("UpdateCategory scan error after %s: %v", time.Since(start), err)
		return domain.Category{}, err
	}
	r.logger.Printf("UpdateCategory ok in %s id=%d", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) DeleteCategory(ctx context.Context, id int64) error {
	q := r.qb().Delete(fmt.Sprintf("%s.categories", r.schema)).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteCategory", sqlStr, args)

	start := time.Now()
	tag, err := r.route(sqlStr, true).Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteCategory exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeleteCategory no rows affected in %s id=%d", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteCategory ok in %s id=%d", time.Since(start), id)
	return nil
}

func (r *PGRepo) CategoriesList(ctx context.Context, page domain.ListPage) (domain.Page[domain.Category], error) {
	sb := r.qb().Select(categoryCols).
		From(fmt.Sprintf("%s.categories", r.schema))
	sb = pagination.Apply(sb, "id", page)

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("CategoriesList", sqlStr, args)

	start := time.Now()
	rows, err := r.route(sqlStr, false).Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("CategoriesList query error after %s: %v", time.Since(start), err)
		return domain.Page[domain.Category]{}, err
	}
	defer rows.Close()

	var res []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Printf("CategoriesList scan error: %v", err)
			return domain.Page[domain.Category]{}, err
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("CategoriesList rows error: %v", err)
		return domain.Page[domain.Category]{}, err
	}
	r.logger.Printf("CategoriesList ok in %s count=%d", time.Since(start), len(res))
	return pagination.BuildPage(res, page.Limit, func(c domain.Category) int64 { return c.ID }), nil
}
