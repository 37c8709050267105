package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/go-catalog/internal/domain"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadCursor):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad cursor")
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.Fail(domain.ErrCodeRateLimited, "rate limited")
	default:
		// Таймауты/отказы БД — как 500
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// WriteRawJSON отдаёт уже сериализованный конверт (путь кеш-хита).
func WriteRawJSON(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
