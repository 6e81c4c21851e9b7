package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/senyabanana/procurement-service/internal/extractor"
	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/metrics"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/repository"
	"github.com/senyabanana/procurement-service/internal/utils"
)

const rfpNotFound = "rfp not found"

// RFPService ведёт запросы предложений от черновика до завершения.
type RFPService struct {
	Repo    repository.RFPRepository
	Vendors repository.VendorRepository
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// NewRFPService создаёт новый экземпляр RFPService.
func NewRFPService(repo repository.RFPRepository, vendors repository.VendorRepository, logg *logger.Logger, m *metrics.Metrics) *RFPService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RFPService{Repo: repo, Vendors: vendors, Logger: logg, Metrics: m}
}

// Preview извлекает черновик из текста, ничего не сохраняя.
func (s *RFPService) Preview(ctx context.Context, req models.RFPCreateRequest) (*models.RFP, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, models.BadRequest("text is required")
	}
	rfp := s.extract(ctx, req.Text)
	return &rfp, nil
}

// CreateFromText извлекает черновик из текста и сохраняет его.
func (s *RFPService) CreateFromText(ctx context.Context, req models.RFPCreateRequest) (*models.RFP, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, models.BadRequest("text is required")
	}
	draft := s.extract(ctx, req.Text)

	created, err := s.Repo.CreateRFP(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create rfp: %w", err)
	}
	s.Logger.Info(s.Logger.WithField(ctx, "rfp_id", created.ID), "rfp.created")
	return created, nil
}

func (s *RFPService) extract(ctx context.Context, text string) models.RFP {
	result := extractor.Parse(text)
	s.Metrics.ObserveExtraction(result.UsedDefaults)
	if result.UsedDefaults {
		s.Logger.Debug(ctx, "rfp.extract.defaults")
	}
	return result.RFP
}

// GetRFP возвращает запрос по id.
func (s *RFPService) GetRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	rfp, err := s.Repo.GetRFP(ctx, rfpId)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "")
	}
	return rfp, nil
}

// ListRFPs возвращает список запросов по фильтру.
func (s *RFPService) ListRFPs(ctx context.Context, filter models.RFPFilter) ([]models.RFP, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.BadRequest("unsupported status: %s", filter.Status)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.Repo.ListRFPs(ctx, filter)
}

// UpdateRFP редактирует черновик.
func (s *RFPService) UpdateRFP(ctx context.Context, rfpId string, req models.RFPUpdateRequest) (*models.RFP, error) {
	if req.Empty() {
		return nil, models.BadRequest("no fields to update")
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	rfp, err := s.Repo.GetRFP(ctx, rfpId)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "")
	}
	if rfp.Status != models.DraftRFP {
		return nil, models.Conflict("only draft rfps can be edited")
	}
	req.Apply(rfp)

	updated, err := s.Repo.UpdateRFP(ctx, *rfp)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "only draft rfps can be edited")
	}
	return updated, nil
}

// DeleteRFP удаляет запрос вместе с предложениями.
func (s *RFPService) DeleteRFP(ctx context.Context, rfpId string) error {
	if err := s.Repo.DeleteRFP(ctx, rfpId); err != nil {
		return repoError(err, rfpNotFound, "")
	}
	s.Logger.Info(s.Logger.WithField(ctx, "rfp_id", rfpId), "rfp.deleted")
	return nil
}

// SendRFP рассылает черновик поставщикам.
func (s *RFPService) SendRFP(ctx context.Context, rfpId string, req models.RFPSendRequest) (*models.RFP, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	vendorIds := dedupe(req.VendorIDs)

	rfp, err := s.Repo.GetRFP(ctx, rfpId)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "")
	}
	if rfp.Status != models.DraftRFP {
		return nil, models.Conflict("rfp has already been sent")
	}

	unknown, err := s.Vendors.MissingVendors(ctx, vendorIds)
	if err != nil {
		return nil, fmt.Errorf("failed to check vendors: %w", err)
	}
	if len(unknown) > 0 {
		return nil, models.BadRequest("unknown vendors: %s", strings.Join(unknown, ", "))
	}

	sent, err := s.Repo.SendRFP(ctx, rfpId, vendorIds)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "rfp has already been sent")
	}
	s.Logger.Info(s.Logger.WithFields(ctx, map[string]any{"rfp_id": rfpId, "vendors": len(vendorIds)}), "rfp.sent")
	return sent, nil
}

// CompleteRFP завершает сбор предложений по разосланному запросу.
func (s *RFPService) CompleteRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	completed, err := s.Repo.CompleteRFP(ctx, rfpId)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "only sent rfps can be completed")
	}
	s.Logger.Info(s.Logger.WithField(ctx, "rfp_id", rfpId), "rfp.completed")
	return completed, nil
}

// Stats собирает сводку для главной страницы.
func (s *RFPService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	counts, err := s.Repo.CountRFPsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rfps: %w", err)
	}
	vendors, err := s.Vendors.CountVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count vendors: %w", err)
	}

	stats := &models.DashboardStats{
		Active:    counts[models.SentRFP],
		Completed: counts[models.CompletedRFP],
		Vendors:   vendors,
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// repoError переводит ошибки репозитория в ответы API; прочие ошибки остаются внутренними.
func repoError(err error, notFound, conflict string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.NotFound(notFound)
	case errors.Is(err, repository.ErrStatusConflict) && conflict != "":
		return models.Conflict(conflict)
	}
	return err
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
