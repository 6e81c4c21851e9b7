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

// VendorHandler - структура для обработки HTTP-запросов по поставщикам.
type VendorHandler struct {
	Service *services.VendorService
	Logger  *logger.Logger
	Timeout time.Duration
}

// NewVendorHandler создаёт новый экземпляр VendorHandler.
func NewVendorHandler(service *services.VendorService, logg *logger.Logger, timeout time.Duration) *VendorHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &VendorHandler{
		Service: service,
		Logger:  logg,
		Timeout: timeout,
	}
}

func (h *VendorHandler) GetVendors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendors, err := h.Service.ListVendors(ctx, r.URL.Query().Get("search"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch vendors")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, vendors)
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var vendorReq models.VendorRequest
	if err := utils.DecodeJSONBody(r, &vendorReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	vendor, err := h.Service.CreateVendor(ctx, vendorReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to create vendor")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusCreated, vendor)
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	vendor, err := h.Service.GetVendor(ctx, chi.URLParam(r, "vendorId"))
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to fetch vendor")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, vendor)
}

func (h *VendorHandler) EditVendor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var vendorReq models.VendorRequest
	if err := utils.DecodeJSONBody(r, &vendorReq); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "invalid request body")
		return
	}

	vendor, err := h.Service.UpdateVendor(ctx, chi.URLParam(r, "vendorId"), vendorReq)
	if err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to edit vendor")
		return
	}
	sendJSON(ctx, h.Logger, w, http.StatusOK, vendor)
}

func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteVendor(ctx, chi.URLParam(r, "vendorId")); err != nil {
		sendServiceError(ctx, h.Logger, w, err, "failed to delete vendor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
