package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Роутер запросов: пишущие — в primary, остальные — в реплику, когда она есть.
// Это эвристика по первому ключевому слову, не парсер. Кто хочет read-your-writes
// сразу после записи — форсирует primary, а не надеется на классификатор.

var writeKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TRUNCATE",
}

// IsWriteStatement: начинается ли statement (без учёта регистра и ведущих
// пробелов) с пишущего ключевого слова.
func IsWriteStatement(sqlStr string) bool {
	s := strings.TrimSpace(sqlStr)
	for _, kw := range writeKeywords {
		if len(s) < len(kw) {
			continue
		}
		if !strings.EqualFold(s[:len(kw)], kw) {
			continue
		}
		// "DELETED_ROWS" не считается DELETE: после слова должна быть граница.
		if len(s) == len(kw) || s[len(kw)] == ' ' || s[len(kw)] == '\t' || s[len(kw)] == '\n' || s[len(kw)] == '(' {
			return true
		}
	}
	return false
}

func (r *PGRepo) route(sqlStr string, forcePrimary bool) *pgxpool.Pool {
	if forcePrimary || r.replica == nil || IsWriteStatement(sqlStr) {
		return r.primary
	}
	return r.replica
}
