package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Latency задерживает обработку на delay, как медленный удаленный бэкенд.
// Отмена запроса прерывает ожидание.
func Latency(delay time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if delay <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-timer.C:
				next.ServeHTTP(w, r)
			case <-r.Context().Done():
				return
			}
		})
	}
}
