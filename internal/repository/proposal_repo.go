package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/senyabanana/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const proposalColumns = `id, rfp_id, vendor_id, vendor_name, total_price, delivery_days, terms, warranty, line_items, notes, received_at, ai_score`

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
type PostgresProposalRepository struct {
	DB    *pgxpool.Pool
	NewID IDGenerator
	Now   Clock
}

// NewPostgresProposalRepository создаёт новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

func scanProposal(row rowScanner) (*models.Proposal, error) {
	var p models.Proposal
	var lineItems []byte
	if err := row.Scan(
		&p.ID,
		&p.RFPID,
		&p.VendorID,
		&p.VendorName,
		&p.TotalPrice,
		&p.DeliveryDays,
		&p.Terms,
		&p.Warranty,
		&lineItems,
		&p.Notes,
		&p.ReceivedAt,
		&p.AIScore); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lineItems, &p.LineItems); err != nil {
		return nil, fmt.Errorf("failed to decode line items: %w", err)
	}
	return &p, nil
}

// CreateProposal сохраняет полученное предложение, назначая id и время получения.
func (r *PostgresProposalRepository) CreateProposal(ctx context.Context, proposal models.Proposal) (*models.Proposal, error) {
	proposal.ID = r.NewID()
	proposal.ReceivedAt = r.Now()
	proposal.LineItems = nonNil(proposal.LineItems)

	lineItems, err := json.Marshal(proposal.LineItems)
	if err != nil {
		return nil, err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO proposal (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		proposal.ID,
		proposal.RFPID,
		proposal.VendorID,
		proposal.VendorName,
		proposal.TotalPrice,
		proposal.DeliveryDays,
		proposal.Terms,
		proposal.Warranty,
		lineItems,
		proposal.Notes,
		proposal.ReceivedAt,
		proposal.AIScore)
	if err != nil {
		return nil, fmt.Errorf("failed to insert proposal: %w", err)
	}
	return &proposal, nil
}

// ListProposalsForRFP возвращает предложения по запросу в порядке получения.
func (r *PostgresProposalRepository) ListProposalsForRFP(ctx context.Context, rfpId string) ([]models.Proposal, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+proposalColumns+` FROM proposal WHERE rfp_id = $1 ORDER BY received_at, id`, rfpId)
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
