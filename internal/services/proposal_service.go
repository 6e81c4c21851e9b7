package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/senyabanana/procurement-service/internal/comparison"
	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/metrics"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/repository"
	"github.com/senyabanana/procurement-service/internal/utils"
)

// ProposalService принимает предложения поставщиков и сравнивает их.
type ProposalService struct {
	Repo    repository.ProposalRepository
	RFPs    repository.RFPRepository
	Vendors repository.VendorRepository
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// NewProposalService создаёт новый экземпляр ProposalService.
func NewProposalService(
	repo repository.ProposalRepository,
	rfps repository.RFPRepository,
	vendors repository.VendorRepository,
	logg *logger.Logger,
	m *metrics.Metrics,
) *ProposalService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &ProposalService{Repo: repo, RFPs: rfps, Vendors: vendors, Logger: logg, Metrics: m}
}

// ReceiveProposal регистрирует предложение поставщика по разосланному запросу.
func (s *ProposalService) ReceiveProposal(ctx context.Context, rfpId string, req models.ProposalRequest) (*models.Proposal, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	rfp, err := s.RFPs.GetRFP(ctx, rfpId)
	if err != nil {
		return nil, repoError(err, rfpNotFound, "")
	}
	if rfp.Status == models.DraftRFP {
		return nil, models.Conflict("rfp has not been sent yet")
	}
	if !slices.Contains(rfp.SentTo, req.VendorID) {
		return nil, models.BadRequest("rfp was not sent to vendor %s", req.VendorID)
	}

	vendor, err := s.Vendors.GetVendor(ctx, req.VendorID)
	if err != nil {
		return nil, repoError(err, vendorNotFound, "")
	}

	proposal, err := s.Repo.CreateProposal(ctx, models.Proposal{
		RFPID:        rfp.ID,
		VendorID:     vendor.ID,
		VendorName:   vendor.Name,
		TotalPrice:   req.TotalPrice,
		DeliveryDays: req.DeliveryDays,
		Terms:        req.Terms,
		Warranty:     req.Warranty,
		LineItems:    req.LineItems,
		Notes:        req.Notes,
		AIScore:      req.AIScore,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	s.Logger.Info(s.Logger.WithFields(ctx, map[string]any{
		"rfp_id":      rfp.ID,
		"proposal_id": proposal.ID,
		"vendor_id":   vendor.ID,
	}), "proposal.received")
	return proposal, nil
}

// ListProposals возвращает предложения по запросу в порядке получения.
func (s *ProposalService) ListProposals(ctx context.Context, rfpId string) ([]models.Proposal, error) {
	if _, err := s.RFPs.GetRFP(ctx, rfpId); err != nil {
		return nil, repoError(err, rfpNotFound, "")
	}
	return s.Repo.ListProposalsForRFP(ctx, rfpId)
}

// CompareProposals сравнивает предложения по запросу. Второе значение false,
// если предложений меньше двух.
func (s *ProposalService) CompareProposals(ctx context.Context, rfpId string) (*models.ComparisonResult, bool, error) {
	proposals, err := s.ListProposals(ctx, rfpId)
	if err != nil {
		return nil, false, err
	}

	result, ok := comparison.Compare(proposals)
	s.Metrics.ObserveComparison(ok)
	if !ok {
		return nil, false, nil
	}
	s.Logger.Info(s.Logger.WithFields(ctx, map[string]any{
		"rfp_id":    rfpId,
		"proposals": len(proposals),
		"vendor_id": result.Recommendation.VendorID,
	}), "proposals.compared")
	return result, true, nil
}
