package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// LogError : пишет ошибку в лог и возвращает её обёрнутой, чтобы вызывающий
// мог проверить исходную через errors.Is
func LogError(message string, err error) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	log.Println(wrapped)
	return wrapped
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HandleError : JSON-ответ файлового сервера об ошибке
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := errorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("не удалось записать ответ об ошибке: %v", err)
	}
}
