package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadCursor        = errors.New("bad_cursor")         // 400: курсор не положительное целое
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrRateLimited      = errors.New("rate_limited")       // 429
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Коды для конверта ошибки.
const (
	ErrCodeBadParams        = 400
	ErrCodeNotFound         = 404
	ErrCodeMethodNotAllowed = 405
	ErrCodeRateLimited      = 429
	ErrCodeUnexpected       = 500
)
