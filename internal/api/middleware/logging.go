package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку лога на каждый запрос: метод, путь, статус, длительность
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			latency := time.Since(started)
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("%s %s | %d | %v", r.Method, r.URL.Path, rec.status, latency)
			case rec.status >= http.StatusBadRequest:
				log.Warn("%s %s | %d | %v", r.Method, r.URL.Path, rec.status, latency)
			default:
				log.Info("%s %s | %d | %v", r.Method, r.URL.Path, rec.status, latency)
			}
		})
	}
}
