package mw

import (
	"net/http"
	"time"
)

type httpObserver interface {
	ObserveHTTP(method, route string, status int, dur time.Duration)
}

// Metrics — middleware: счётчик и гистограмма длительности на каждый запрос.
// Лейбл route — зарегистрированный шаблон маршрута, не сырой путь (иначе
// кардинальность метрики растёт с каждым id). Шаблон спрашиваем у mux:
// снаружи цепочки r.Pattern ещё не заполнен.
func Metrics(obs httpObserver, mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			mw := &metaWriter{ResponseWriter: w}

			next.ServeHTTP(mw, r)

			_, route := mux.Handler(r)
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveHTTP(r.Method, route, mw.Status(), time.Since(start))
		})
	}
}
