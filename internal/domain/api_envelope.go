package domain

// Общий конверт ответа.
type APIError struct {
	Code int    `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

type Pagination struct {
	Cursor  *int64 `json:"cursor"`
	HasMore bool   `json:"hasMore"`
	Limit   int    `json:"limit"`
}

type APIEnvelope struct {
	Success    bool        `json:"success"`
	Error      *APIError   `json:"error,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Утилиты для сборки конвертов
func OkData(data any) APIEnvelope { return APIEnvelope{Success: true, Data: data} }

func OkPage[T any](p Page[T], limit int) APIEnvelope {
	items := p.Items
	if items == nil {
		items = []T{} // в JSON всегда массив, не null
	}
	return APIEnvelope{
		Success:    true,
		Data:       items,
		Pagination: &Pagination{Cursor: p.NextCursor, HasMore: p.HasMore, Limit: limit},
	}
}

func Fail(code int, text string) APIEnvelope {
	return APIEnvelope{Error: &APIError{Code: code, Text: text}}
}
