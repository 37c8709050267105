// Package pagination — кейсет-пагинация по монотонному id.
// Курсор — id последней отданной строки; выбираем limit+1 строк,
// чтобы узнать hasMore без отдельного COUNT.
package pagination

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/go-catalog/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseCursor валидирует сырой курсор из query-строки.
// Пусто — с начала. Не положительное целое — ошибка клиента (400),
// проверяем до любого запроса в БД.
func ParseCursor(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return nil, domain.ErrBadCursor
	}
	return &n, nil
}

// ParseLimit: мусор и пусто — дефолт; вне [1,100] — молча зажимаем, не отказываем.
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	return ClampLimit(n)
}

func ClampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Apply навешивает на запрос кейсет-условия: id < cursor, порядок id DESC,
// LIMIT limit+1 (лишняя строка — детектор hasMore).
func Apply(sb sq.SelectBuilder, idCol string, page domain.ListPage) sq.SelectBuilder {
	if page.Cursor != nil {
		sb = sb.Where(sq.Lt{idCol: *page.Cursor})
	}
	return sb.OrderBy(idCol + " DESC").Limit(uint64(page.Limit) + 1)
}

// BuildPage собирает страницу из выборки limit+1.
// Ровно limit+1 строк — есть продолжение: отрезаем лишнюю, курсор = id последней
// оставшейся. Меньше — это хвост, курсора нет. Курсор за концом таблицы даёт
// пустую, но валидную страницу.
func BuildPage[T any](rows []T, limit int, id func(T) int64) domain.Page[T] {
	if len(rows) <= limit {
		return domain.Page[T]{Items: rows, NextCursor: nil, HasMore: false}
	}
	items := rows[:limit]
	last := id(items[limit-1])
	return domain.Page[T]{Items: items, NextCursor: &last, HasMore: true}
}
