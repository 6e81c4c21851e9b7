package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/services"
	"github.com/senyabanana/procurement-service/internal/utils"

	"github.com/go-chi/chi/v5"
)

// RFPHandler - структура для обработки HTTP-запросов по запросам предложений.
type RFPHandler struct {
	Service *services.RFPService
	Logger  *logger.Logger
	Timeout time.Duration
}

// NewRFPHandler создаёт новый экземпляр RFPHandler.
func NewRFPHandler(service *services.RFPService, logg *logger.Logger, timeout time.Duration) *RFPHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RFPHandler{
		Service: service,
		Logger:  logg,
		Timeout: timeout,
	}
}

// GetRFPs обрабатывает запросы для получения списка запросов предложений.
func (h *RFPHandler) GetRFPs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	limit, offset, err := utils.ParseLimitOffset(query.Get("limit"), query.Get("offset"))
	if err != nil {
		sendError(ctx, h.Logger, w, http.StatusBadRequest, err.Error())
		return
	}

	rfps, err := h.Service.ListRFPs(ctx, models.RFPFilter{
		Status: models.RFPStatus(query.Get("status")),
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch rfps")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfps)
}

// CreateRFP обрабатывает запросы для создания черновика из текста.
func (h *RFPHandler) CreateRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var createReq models.RFPCreateRequest
	if err := utils.DecodeJSONBody(r, &createReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	rfp, err := h.Service.CreateFromText(ctx, createReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to create rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusCreated, rfp)
}

// ExtractRFP возвращает черновик, извлечённый из текста, без сохранения.
func (h *RFPHandler) ExtractRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var createReq models.RFPCreateRequest
	if err := utils.DecodeJSONBody(r, &createReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	rfp, err := h.Service.Preview(ctx, createReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to extract rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfp)
}

// GetRFP обрабатывает запросы для получения запроса по id.
func (h *RFPHandler) GetRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfp, err := h.Service.GetRFP(ctx, chi.URLParam(r, "rfpId"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfp)
}

// EditRFP обрабатывает запросы для редактирования черновика.
func (h *RFPHandler) EditRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var updateReq models.RFPUpdateRequest
	if err := utils.DecodeJSONBody(r, &updateReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	rfp, err := h.Service.UpdateRFP(ctx, chi.URLParam(r, "rfpId"), updateReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to edit rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfp)
}

// DeleteRFP обрабатывает запросы для удаления запроса.
func (h *RFPHandler) DeleteRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteRFP(ctx, chi.URLParam(r, "rfpId")); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to delete rfp")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendRFP обрабатывает запросы для рассылки черновика поставщикам.
func (h *RFPHandler) SendRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var sendReq models.RFPSendRequest
	if err := utils.DecodeJSONBody(r, &sendReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	rfp, err := h.Service.SendRFP(ctx, chi.URLParam(r, "rfpId"), sendReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to send rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfp)
}

// CompleteRFP обрабатывает запросы для завершения сбора предложений.
func (h *RFPHandler) CompleteRFP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfp, err := h.Service.CompleteRFP(ctx, chi.URLParam(r, "rfpId"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to complete rfp")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, rfp)
}

// GetDashboard возвращает сводку по запросам и поставщикам.
func (h *RFPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	stats, err := h.Service.Stats(ctx)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch dashboard")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, stats)
}
