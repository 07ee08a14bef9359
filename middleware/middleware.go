package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"bankaccount/utils"
)

// LoggingResponseWriter перехватывает статус ответа для логирования и метрик
type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware логирует информацию о запросе и ответе
// и записывает метрики запроса
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Создаем обертку для ResponseWriter
		lrw := &LoggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Обрабатываем запрос
		next.ServeHTTP(lrw, r)

		// Логируем информацию и записываем метрики
		duration := time.Since(start)
		utils.LogInfo("Method: %s, Path: %s, Status: %d, Duration: %v",
			r.Method,
			r.URL.Path,
			lrw.statusCode,
			duration,
		)
		utils.GetMetrics().RecordRequest(duration, lrw.statusCode >= http.StatusBadRequest)
	})
}

// Recovery перехватывает панику обработчика и возвращает 500
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Логируем панику
				utils.LogError("Panic recovered: %v", err)

				// Отправляем ответ клиенту
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "внутренняя ошибка сервера",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RateLimit ограничивает частоту запросов по IP клиента
func RateLimit(limit int, period time.Duration) func(http.Handler) http.Handler {
	limiter := utils.NewRateLimiter(limit, period)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем IP-адрес клиента
			clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				clientIP = r.RemoteAddr
			}

			// Проверяем лимит
			if !limiter.Allow(clientIP) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
					"reset": limiter.ResetAt(clientIP).Format(time.RFC3339),
				})
				return
			}

			// Добавляем заголовки с информацией о лимитах
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(clientIP)))

			next.ServeHTTP(w, r)
		})
	}
}
