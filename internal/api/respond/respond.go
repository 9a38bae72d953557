package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse стандартный ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// DataResponse стандартный успешный ответ
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// WriteJSON пишет JSON с кодом статуса
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("Failed to encode JSON response", zap.Error(err))
	}
}

// WriteData оборачивает data в {"success":true,"data":...}
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, DataResponse{Success: true, Data: data})
}

// WriteError пишет {"success":false,"error":...}
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteFile отдаёт содержимое как вложение
func WriteFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		zap.L().Error("Failed to write file response", zap.String("filename", filename), zap.Error(err))
	}
}
