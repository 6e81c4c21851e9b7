package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/senyabanana/procurement-service/internal/models"
)

// SQLiteProposalRepository - реализация ProposalRepository поверх SQLite.
type SQLiteProposalRepository struct {
	DB    *sql.DB
	NewID IDGenerator
	Now   Clock
}

// NewSQLiteProposalRepository создаёт новый экземпляр SQLiteProposalRepository.
func NewSQLiteProposalRepository(db *sql.DB) *SQLiteProposalRepository {
	return &SQLiteProposalRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

// CreateProposal сохраняет полученное предложение, назначая id и время получения.
func (r *SQLiteProposalRepository) CreateProposal(ctx context.Context, proposal models.Proposal) (*models.Proposal, error) {
	proposal.ID = r.NewID()
	proposal.ReceivedAt = r.Now()
	proposal.LineItems = nonNil(proposal.LineItems)

	lineItems, err := json.Marshal(proposal.LineItems)
	if err != nil {
		return nil, err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO proposal (`+proposalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		proposal.ID,
		proposal.RFPID,
		proposal.VendorID,
		proposal.VendorName,
		proposal.TotalPrice,
		proposal.DeliveryDays,
		proposal.Terms,
		proposal.Warranty,
		string(lineItems),
		proposal.Notes,
		proposal.ReceivedAt,
		proposal.AIScore)
	if err != nil {
		return nil, fmt.Errorf("failed to insert proposal: %w", err)
	}
	return &proposal, nil
}

// ListProposalsForRFP возвращает предложения по запросу в порядке получения.
func (r *SQLiteProposalRepository) ListProposalsForRFP(ctx context.Context, rfpId string) ([]models.Proposal, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+proposalColumns+` FROM proposal WHERE rfp_id = ? ORDER BY received_at, id`, rfpId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	return proposals, rows.Err()
}
