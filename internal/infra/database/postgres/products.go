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

const productCols = "id, category_id, name, description, sku, price_cents, stock, created_at, updated_at"

func (r *PGRepo) scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description,
		&p.SKU, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGRepo) CreateProduct(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.products", r.schema)).
		Columns("category_id", "name", "description", "sku", "price_cents", "stock").
		Values(draft.CategoryID, draft.Name, draft.Description, draft.SKU, draft.PriceCents, draft.Stock).
		Suffix("RETURNING " + productCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateProduct", sqlStr, args)

	start := time.Now()
	out, err := r.scanProduct(r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateProduct scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, err
	}
	r.logger.Printf("CreateProduct ok in %s id=%d sku=%q", time.Since(start), out.ID, out.SKU)
	return out, nil
}

func (r *PGRepo) ProductByID(ctx context.Context, id int64) (domain.Product, error) {
	q := r.qb().Select(productCols).
		From(fmt.Sprintf("%s.products", r.schema)).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ProductByID", sqlStr, args)

	start := time.Now()
	out, err := r.scanProduct(r.route(sqlStr, false).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("ProductByID not found in %s id=%d", time.Since(start), id)
			return domain.Product{}, domain.ErrNotFound
		}
		r.logger.Printf("ProductByID scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, err
	}
	r.logger.Printf("ProductByID ok in %s id=%d", time.Since(start), out.ID)
	return out, nil
}

// Частичное обновление по белому списку колонок (см. categories.go).
func (r *PGRepo) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.SKU != nil {
		set["sku"] = *patch.SKU
	}
	if patch.PriceCents != nil {
		set["price_cents"] = *patch.PriceCents
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}

	q := r.qb().Update(fmt.Sprintf("%s.products", r.schema)).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + productCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateProduct", sqlStr, args)

	start := time.Now()
	out, err := r.scanProduct(r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("UpdateProduct not found in %s id=%d", time.Since(start), id)
			return domain.Product{}, domain.ErrNotFound
		}
		r.logger.Printf("UpdateProduct scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, err
	}
	r.logger.Printf("UpdateProduct ok in %s id=%d", time.Since(start), out.ID)
	return out, nil
}

// DeleteProduct возвращает category_id удалённой строки: обработчику нужно
// инвалидировать кеш родительской категории.
func (r *PGRepo) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	q := r.qb().Delete(fmt.Sprintf("%s.products", r.schema)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING category_id")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteProduct", sqlStr, args)

	start := time.Now()
	var categoryID int64
	if err := r.route(sqlStr, true).QueryRow(ctx, sqlStr, args...).Scan(&categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("DeleteProduct not found in %s id=%d", time.Since(start), id)
			return 0, domain.ErrNotFound
		}
		r.logger.Printf("DeleteProduct error after %s: %v", time.Since(start), err)
		return 0, err
	}
	r.logger.Printf("DeleteProduct ok in %s id=%d category_id=%d", time.Since(start), id, categoryID)
	return categoryID, nil
}

func (r *PGRepo) ProductsList(ctx context.Context, f domain.ProductFilter, page domain.ListPage) (domain.Page[domain.Product], error) {
	sb := r.qb().Select(productCols).
		From(fmt.Sprintf("%s.products", r.schema))
	if f.CategoryID != nil {
		sb = sb.Where(sq.Eq{"category_id": *f.CategoryID})
	}
	sb = pagination.Apply(sb, "id", page)

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("ProductsList", sqlStr, args)

	start := time.Now()
	rows, err := r.route(sqlStr, false).Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ProductsList query error after %s: %v", time.Since(start), err)
		return domain.Page[domain.Product]{}, err
	}
	defer rows.Close()

	var res []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description,
			&p.SKU, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			r.logger.Printf("ProductsList scan error: %v", err)
			return domain.Page[domain.Product]{}, err
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ProductsList rows error: %v", err)
		return domain.Page[domain.Product]{}, err
	}
	r.logger.Printf("ProductsList ok in %s count=%d filter=%s", time.Since(start), len(res), f.Descriptor())
	return pagination.BuildPage(res, page.Limit, func(p domain.Product) int64 { return p.ID }), nil
}
