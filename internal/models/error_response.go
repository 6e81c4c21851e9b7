package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// BadRequest - ошибка 400 с форматированным сообщением.
func BadRequest(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// NotFound - ошибка 404.
func NotFound(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, message)
}

// Conflict - ошибка 409.
func Conflict(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, message)
}

// Internal - ошибка 500 без подробностей для клиента.
func Internal() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, "internal server error")
}

// AsErrorResponse извлекает ErrorResponse из цепочки ошибок.
func AsErrorResponse(err error) (*ErrorResponse, bool) {
	var errorResponse *ErrorResponse
	if errors.As(err, &errorResponse) {
		return errorResponse, true
	}
	return nil, false
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
