package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/senyabanana/procurement-service/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	})
}

// WriteJSON отправляет тело ответа в формате JSON.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

// DecodeJSONBody разбирает тело запроса в dest и проверяет теги validate.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return models.BadRequest("invalid request body: %v", err)
	}
	return Validate(dest)
}

// Validate проверяет структуру по тегам validate.
func Validate(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *models.ErrorResponse {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.BadRequest("validation failed: %v", err)
	}
	details := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		details = append(details, fieldPath(fieldErr)+" "+validationMessage(fieldErr))
	}
	sort.Strings(details)
	return models.BadRequest("validation failed: %s", strings.Join(details, "; "))
}

// fieldPath убирает имя корневой структуры из пространства имён поля.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:%d]", MaxLimit)
		}
	} else {
		limit = DefaultLimit
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	}

	return limit, offset, nil
}
