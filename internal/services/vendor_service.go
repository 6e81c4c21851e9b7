package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/repository"
	"github.com/senyabanana/procurement-service/internal/utils"
)

const vendorNotFound = "vendor not found"

// VendorService ведёт справочник поставщиков.
type VendorService struct {
	Repo   repository.VendorRepository
	Logger *logger.Logger
}

// NewVendorService создаёт новый экземпляр VendorService.
func NewVendorService(repo repository.VendorRepository, logg *logger.Logger) *VendorService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &VendorService{Repo: repo, Logger: logg}
}

func normalizeVendor(req models.VendorRequest) (models.VendorRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Specialty = strings.TrimSpace(req.Specialty)
	return req, utils.Validate(req)
}

// CreateVendor создаёт поставщика.
func (s *VendorService) CreateVendor(ctx context.Context, req models.VendorRequest) (*models.Vendor, error) {
	req, err := normalizeVendor(req)
	if err != nil {
		return nil, err
	}
	vendor, err := s.Repo.CreateVendor(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	s.Logger.Info(s.Logger.WithField(ctx, "vendor_id", vendor.ID), "vendor.created")
	return vendor, nil
}

// GetVendor возвращает поставщика по id.
func (s *VendorService) GetVendor(ctx context.Context, vendorId string) (*models.Vendor, error) {
	vendor, err := s.Repo.GetVendor(ctx, vendorId)
	if err != nil {
		return nil, repoError(err, vendorNotFound, "")
	}
	return vendor, nil
}

// ListVendors возвращает поставщиков, search фильтрует по имени, почте и специализации.
func (s *VendorService) ListVendors(ctx context.Context, search string) ([]models.Vendor, error) {
	return s.Repo.ListVendors(ctx, strings.TrimSpace(search))
}

// UpdateVendor меняет данные поставщика. Имя в уже полученных предложениях не меняется.
func (s *VendorService) UpdateVendor(ctx context.Context, vendorId string, req models.VendorRequest) (*models.Vendor, error) {
	req, err := normalizeVendor(req)
	if err != nil {
		return nil, err
	}
	vendor, err := s.Repo.UpdateVendor(ctx, vendorId, req)
	if err != nil {
		return nil, repoError(err, vendorNotFound, "")
	}
	return vendor, nil
}

// DeleteVendor удаляет поставщика, если он не участвует ни в одной рассылке.
func (s *VendorService) DeleteVendor(ctx context.Context, vendorId string) error {
	if _, err := s.Repo.GetVendor(ctx, vendorId); err != nil {
		return repoError(err, vendorNotFound, "")
	}
	inUse, err := s.Repo.VendorInUse(ctx, vendorId)
	if err != nil {
		return fmt.Errorf("failed to check vendor usage: %w", err)
	}
	if inUse {
		return models.Conflict("vendor is referenced by sent rfps or proposals")
	}
	if err = s.Repo.DeleteVendor(ctx, vendorId); err != nil {
		return repoError(err, vendorNotFound, "")
	}
	s.Logger.Info(s.Logger.WithField(ctx, "vendor_id", vendorId), "vendor.deleted")
	return nil
}
