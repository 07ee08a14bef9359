package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bankaccount/services"
	"bankaccount/utils"
)

// errorResponse представляет единый конверт ошибки API
type errorResponse struct {
	Time       time.Time `json:"time"`
	StatusCode int       `json:"statusCode"`
	ErrorType  string    `json:"errorType"`
	Details    string    `json:"details"`
}

// writeJSON отправляет успешный JSON-ответ
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError преобразует доменную ошибку в HTTP-статус
// и отправляет конверт ошибки
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrNoOperationsForAccount):
		status = http.StatusNotFound
	}

	// Ошибки хранилища клиенту не раскрываем
	details := err.Error()
	if status == http.StatusInternalServerError {
		utils.LogError("внутренняя ошибка: %v", err)
		details = "внутренняя ошибка сервера"
	}

	writeJSON(w, status, errorResponse{
		Time:       time.Now(),
		StatusCode: status,
		ErrorType:  http.StatusText(status),
		Details:    details,
	})
}
