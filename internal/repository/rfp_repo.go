package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/senyabanana/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const rfpColumns = `id, title, description, budget, delivery_days, items, payment_terms, warranty, status, created_at, sent_to, sent_at`

// PostgresRFPRepository - реализация RFPRepository для базы данных.
type PostgresRFPRepository struct {
	DB    *pgxpool.Pool
	NewID IDGenerator
	Now   Clock
}

// NewPostgresRFPRepository создаёт новый экземпляр PostgresRFPRepository.
func NewPostgresRFPRepository(db *pgxpool.Pool) *PostgresRFPRepository {
	return &PostgresRFPRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

func scanPostgresRFP(row rowScanner) (*models.RFP, error) {
	var rfp models.RFP
	var items []byte
	err := row.Scan(
		&rfp.ID,
		&rfp.Title,
		&rfp.Description,
		&rfp.Budget,
		&rfp.DeliveryDays,
		&items,
		&rfp.PaymentTerms,
		&rfp.Warranty,
		&rfp.Status,
		&rfp.CreatedAt,
		&rfp.SentTo,
		&rfp.SentAt)
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(items, &rfp.Items); err != nil {
		return nil, fmt.Errorf("failed to decode rfp items: %w", err)
	}
	rfp.SentTo = nonNil(rfp.SentTo)
	return &rfp, nil
}

// CreateRFP сохраняет черновик, назначая id и время создания.
func (r *PostgresRFPRepository) CreateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error) {
	rfp.ID = r.NewID()
	rfp.CreatedAt = r.Now()
	rfp.Status = models.DraftRFP
	rfp.SentTo = []string{}
	rfp.SentAt = nil

	items, err := json.Marshal(nonNil(rfp.Items))
	if err != nil {
		return nil, err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO rfp (id, title, description, budget, delivery_days, items, payment_terms, warranty, status, created_at, sent_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rfp.ID,
		rfp.Title,
		rfp.Description,
		rfp.Budget,
		rfp.DeliveryDays,
		items,
		rfp.PaymentTerms,
		rfp.Warranty,
		rfp.Status,
		rfp.CreatedAt,
		pq.Array(rfp.SentTo))
	if err != nil {
		return nil, fmt.Errorf("failed to insert rfp: %w", err)
	}
	return &rfp, nil
}

// GetRFP возвращает запрос по id.
func (r *PostgresRFPRepository) GetRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	return scanPostgresRFP(r.DB.QueryRow(ctx, `SELECT `+rfpColumns+` FROM rfp WHERE id = $1`, rfpId))
}

// ListRFPs возвращает список запросов, новые первыми.
func (r *PostgresRFPRepository) ListRFPs(ctx context.Context, filter models.RFPFilter) ([]models.RFP, error) {
	query := `SELECT ` + rfpColumns + ` FROM rfp`
	var filters []string
	var args []interface{}
	argIndex := 1

	if filter.Status != "" {
		filters = append(filters, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		filters = append(filters, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, argIndex, argIndex))
		args = append(args, searchPattern(filter.Search))
		argIndex++
	}
	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	query += fmt.Sprintf(" OFFSET $%d", argIndex)
	args = append(args, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rfps := []models.RFP{}
	for rows.Next() {
		rfp, err := scanPostgresRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, *rfp)
	}
	return rfps, rows.Err()
}

// UpdateRFP перезаписывает редактируемые поля черновика.
func (r *PostgresRFPRepository) UpdateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error) {
	items, err := json.Marshal(nonNil(rfp.Items))
	if err != nil {
		return nil, err
	}
	updated, err := scanPostgresRFP(r.DB.QueryRow(ctx, `
		UPDATE rfp SET title = $2, description = $3, budget = $4, delivery_days = $5, items = $6, payment_terms = $7, warranty = $8
		WHERE id = $1 AND status = 'draft'
		RETURNING `+rfpColumns,
		rfp.ID,
		rfp.Title,
		rfp.Description,
		rfp.Budget,
		rfp.DeliveryDays,
		items,
		rfp.PaymentTerms,
		rfp.Warranty))
	if errors.Is(err, ErrNotFound) {
		return nil, r.missingOrConflict(ctx, rfp.ID)
	}
	return updated, err
}

// DeleteRFP удаляет запрос вместе с предложениями по нему.
func (r *PostgresRFPRepository) DeleteRFP(ctx context.Context, rfpId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM rfp WHERE id = $1`, rfpId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SendRFP одной командой переводит черновик в sent и заполняет sent_to и sent_at.
func (r *PostgresRFPRepository) SendRFP(ctx context.Context, rfpId string, vendorIds []string) (*models.RFP, error) {
	sent, err := scanPostgresRFP(r.DB.QueryRow(ctx, `
		UPDATE rfp SET status = 'sent', sent_to = $2, sent_at = $3
		WHERE id = $1 AND status = 'draft'
		RETURNING `+rfpColumns,
		rfpId, pq.Array(vendorIds), r.Now()))
	if errors.Is(err, ErrNotFound) {
		return nil, r.missingOrConflict(ctx, rfpId)
	}
	return sent, err
}

// CompleteRFP завершает сбор предложений.
func (r *PostgresRFPRepository) CompleteRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	completed, err := scanPostgresRFP(r.DB.QueryRow(ctx, `
		UPDATE rfp SET status = 'completed' WHERE id = $1 AND status = 'sent'
		RETURNING `+rfpColumns, rfpId))
	if errors.Is(err, ErrNotFound) {
		return nil, r.missingOrConflict(ctx, rfpId)
	}
	return completed, err
}

// CountRFPsByStatus считает запросы по статусам.
func (r *PostgresRFPRepository) CountRFPsByStatus(ctx context.Context) (map[models.RFPStatus]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM rfp GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.RFPStatus]int{}
	for rows.Next() {
		var status models.RFPStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *PostgresRFPRepository) missingOrConflict(ctx context.Context, rfpId string) error {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rfp WHERE id = $1)`, rfpId).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}
