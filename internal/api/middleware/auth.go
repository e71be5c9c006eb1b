package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя
// Проставляется API-шлюзом после проверки токена
const HeaderUserID = "X-User-ID"

// Auth проверяет наличие и формат заголовка X-User-ID
// Сама аутентификация выполняется на шлюзе, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		if _, err := strconv.ParseInt(userIDStr, 10, 64); err != nil {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID извлекает ID пользователя из заголовка запроса
// Возвращает 0, если заголовок отсутствует или некорректен
// (за защищёнными маршрутами этого не случается - см. Auth)
func UserID(r *http.Request) int64 {
	userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
	if err != nil {
		return 0
	}
	return userID
}
