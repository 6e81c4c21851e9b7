package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/senyabanana/procurement-service/internal/models"
)

// SQLiteRFPRepository - реализация RFPRepository поверх SQLite.
type SQLiteRFPRepository struct {
	DB    *sql.DB
	NewID IDGenerator
	Now   Clock
}

// NewSQLiteRFPRepository создаёт новый экземпляр SQLiteRFPRepository.
func NewSQLiteRFPRepository(db *sql.DB) *SQLiteRFPRepository {
	return &SQLiteRFPRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

func scanSQLiteRFP(row rowScanner) (*models.RFP, error) {
	var rfp models.RFP
	var items, sentTo []byte
	var sentAt sql.NullTime
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
		&sentTo,
		&sentAt)
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(items, &rfp.Items); err != nil {
		return nil, fmt.Errorf("failed to decode rfp items: %w", err)
	}
	if err = json.Unmarshal(sentTo, &rfp.SentTo); err != nil {
		return nil, fmt.Errorf("failed to decode rfp recipients: %w", err)
	}
	rfp.SentTo = nonNil(rfp.SentTo)
	if sentAt.Valid {
		t := sentAt.Time
		rfp.SentAt = &t
	}
	return &rfp, nil
}

// CreateRFP сохраняет черновик, назначая id и время создания.
func (r *SQLiteRFPRepository) CreateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error) {
	rfp.ID = r.NewID()
	rfp.CreatedAt = r.Now()
	rfp.Status = models.DraftRFP
	rfp.SentTo = []string{}
	rfp.SentAt = nil

	items, err := json.Marshal(nonNil(rfp.Items))
	if err != nil {
		return nil, err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO rfp (id, title, description, budget, delivery_days, items, payment_terms, warranty, status, created_at, sent_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '[]')`,
		rfp.ID, rfp.Title, rfp.Description, rfp.Budget, rfp.DeliveryDays, string(items),
		rfp.PaymentTerms, rfp.Warranty, rfp.Status, rfp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rfp: %w", err)
	}
	return &rfp, nil
}

// GetRFP возвращает запрос по id.
func (r *SQLiteRFPRepository) GetRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	return scanSQLiteRFP(r.DB.QueryRowContext(ctx, `SELECT `+rfpColumns+` FROM rfp WHERE id = ?`, rfpId))
}

// ListRFPs возвращает список запросов, новые первыми.
func (r *SQLiteRFPRepository) ListRFPs(ctx context.Context, filter models.RFPFilter) ([]models.RFP, error) {
	query := `SELECT ` + rfpColumns + ` FROM rfp`
	var filters []string
	var args []any

	if filter.Status != "" {
		filters = append(filters, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		filters = append(filters, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		args = append(args, searchPattern(filter.Search), searchPattern(filter.Search))
	}
	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	limit := -1
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rfps := []models.RFP{}
	for rows.Next() {
		rfp, err := scanSQLiteRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, *rfp)
	}
	return rfps, rows.Err()
}

// UpdateRFP перезаписывает редактируемые поля черновика.
func (r *SQLiteRFPRepository) UpdateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error) {
	items, err := json.Marshal(nonNil(rfp.Items))
	if err != nil {
		return nil, err
	}
	return r.guardedUpdate(ctx, rfp.ID, `
		UPDATE rfp SET title = ?, description = ?, budget = ?, delivery_days = ?, items = ?, payment_terms = ?, warranty = ?
		WHERE id = ? AND status = 'draft'`,
		rfp.Title, rfp.Description, rfp.Budget, rfp.DeliveryDays, string(items), rfp.PaymentTerms, rfp.Warranty, rfp.ID)
}

// DeleteRFP удаляет запрос вместе с предложениями по нему.
func (r *SQLiteRFPRepository) DeleteRFP(ctx context.Context, rfpId string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rfp WHERE id = ?`, rfpId)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SendRFP одной командой переводит черновик в sent и заполняет sent_to и sent_at.
func (r *SQLiteRFPRepository) SendRFP(ctx context.Context, rfpId string, vendorIds []string) (*models.RFP, error) {
	sentTo, err := json.Marshal(nonNil(vendorIds))
	if err != nil {
		return nil, err
	}
	return r.guardedUpdate(ctx, rfpId, `
		UPDATE rfp SET status = 'sent', sent_to = ?, sent_at = ?
		WHERE id = ? AND status = 'draft'`,
		string(sentTo), r.Now(), rfpId)
}

// CompleteRFP завершает сбор предложений.
func (r *SQLiteRFPRepository) CompleteRFP(ctx context.Context, rfpId string) (*models.RFP, error) {
	return r.guardedUpdate(ctx, rfpId, `UPDATE rfp SET status = 'completed' WHERE id = ? AND status = 'sent'`, rfpId)
}

// CountRFPsByStatus считает запросы по статусам.
func (r *SQLiteRFPRepository) CountRFPsByStatus(ctx context.Context) (map[models.RFPStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM rfp GROUP BY status`)
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

// guardedUpdate выполняет UPDATE с условием на статус и перечитывает строку.
// RETURNING здесь не используется: драйвер не видит тип DATETIME у возвращаемых колонок.
func (r *SQLiteRFPRepository) guardedUpdate(ctx context.Context, rfpId, query string, args ...any) (*models.RFP, error) {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, r.missingOrConflict(ctx, rfpId)
	}
	return r.GetRFP(ctx, rfpId)
}

func (r *SQLiteRFPRepository) missingOrConflict(ctx context.Context, rfpId string) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rfp WHERE id = ?)`, rfpId).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}
