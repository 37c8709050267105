package domain

import (
	"time"
)

// Имена сущностей для ключей кеша и аудита.
const (
	EntityCategory = "category"
	EntityProduct  = "product"
)

// Категория товаров. ID — BIGSERIAL, строго возрастает, после удалений остаются дыры.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Товар. Цена храним в центах (int64), чтобы не терять копейки на float.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Страница кейсет-пагинации: элементы отсортированы по id DESC.
// NextCursor — id последнего элемента страницы; nil, когда дальше ничего нет.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor *int64 `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// Черновики создания: всё, что приходит от клиента.
type CategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductDraft struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

// Патчи частичного обновления: nil — поле не трогаем.
// Набор полей фиксирован, имена колонок в SQL никогда не берутся из запроса.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ProductPatch struct {
	CategoryID  *int64  `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SKU         *string `json:"sku"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
}
