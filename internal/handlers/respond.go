package handlers

import (
	"context"
	"net/http"

	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/utils"
)

// sendServiceError отправляет ошибку сервиса. Всё, что не ErrorResponse, уходит клиенту как 500 с fallback.
func sendServiceError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := models.AsErrorResponse(err); ok {
		if errorResponse.StatusCode >= http.StatusInternalServerError {
			logg.Error(ctx, fallback, err)
		} else {
			logg.Debug(logg.WithField(ctx, "reason", errorResponse.Message), "request.rejected")
		}
		sendError(ctx, logg, w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	logg.Error(ctx, fallback, err)
	sendError(ctx, logg, w, http.StatusInternalServerError, fallback)
}

func sendError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, statusCode int, message string) {
	if err := utils.SendErrorResponse(w, statusCode, message); err != nil {
		logg.Error(ctx, "response.encode", err)
	}
}

func sendJSON(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, statusCode int, body any) {
	if err := utils.WriteJSON(w, statusCode, body); err != nil {
		logg.Error(ctx, "response.encode", err)
	}
}
