package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
)

// OperatorKeyHeader заголовок с ключом оператора кафе
const OperatorKeyHeader = "X-Operator-Key"

const msgOperatorOnly = "операция доступна только оператору"

// OperatorKey пропускает запросы с верным ключом оператора.
// Пустой ключ в конфигурации закрывает операторские маршруты.
func OperatorKey(key string, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(OperatorKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				log.Warn("OperatorKey: %s %s rejected", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgOperatorOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
