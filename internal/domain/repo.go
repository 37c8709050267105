package domain

import (
	"context"
)

// Валидированный запрос страницы: Cursor == nil — с начала (самые новые).
type ListPage struct {
	Cursor *int64
	Limit  int
}

// Фильтр списка товаров. Пока единственный — по категории.
type ProductFilter struct {
	CategoryID *int64
}

// Descriptor — стабильная строка фильтра для ключей кеша ("all" / "cat=7").
func (f ProductFilter) Descriptor() string {
	if f.CategoryID == nil {
		return "all"
	}
	return "cat=" + itoa(*f.CategoryID)
}

type CategoriesRepo interface {
	CreateCategory(ctx context.Context, draft CategoryDraft) (Category, error)
	CategoryByID(ctx context.Context, id int64) (Category, error)
	UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CategoriesList(ctx context.Context, page ListPage) (Page[Category], error)
}

type ProductsRepo interface {
	CreateProduct(ctx context.Context, draft ProductDraft) (Product, error)
	ProductByID(ctx context.Context, id int64) (Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (Product, error)
	// Возвращает category_id удалённого товара — нужен для кросс-инвалидации.
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	ProductsList(ctx context.Context, f ProductFilter, page ListPage) (Page[Product], error)
}

type Pinger interface {
	Ping(context.Context) error
}
