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

// ProposalHandler - структура для обработки HTTP-запросов по предложениям поставщиков.
type ProposalHandler struct {
	Service *services.ProposalService
	Logger  *logger.Logger
	Timeout time.Duration
}

// NewProposalHandler создаёт новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, logg *logger.Logger, timeout time.Duration) *ProposalHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &ProposalHandler{
		Service: service,
		Logger:  logg,
		Timeout: timeout,
	}
}

// GetProposals обрабатывает запросы для получения предложений по запросу.
func (h *ProposalHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposals, err := h.Service.ListProposals(ctx, chi.URLParam(r, "rfpId"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch proposals")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, proposals)
}

// CreateProposal обрабатывает запросы для регистрации предложения поставщика.
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var proposalReq models.ProposalRequest
	if err := utils.DecodeJSONBody(r, &proposalReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	proposal, err := h.Service.ReceiveProposal(ctx, chi.URLParam(r, "rfpId"), proposalReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to create proposal")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusCreated, proposal)
}

// GetComparison сравнивает предложения; 204, если сравнивать пока нечего.
func (h *ProposalHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	result, ok, err := h.Service.CompareProposals(ctx, chi.URLParam(r, "rfpId"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to compare proposals")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, result)
}
