package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/senyabanana/procurement-service/internal/models"
)

// SQLiteVendorRepository - реализация VendorRepository поверх SQLite.
type SQLiteVendorRepository struct {
	DB    *sql.DB
	NewID IDGenerator
	Now   Clock
}

// NewSQLiteVendorRepository создаёт новый экземпляр SQLiteVendorRepository.
func NewSQLiteVendorRepository(db *sql.DB) *SQLiteVendorRepository {
	return &SQLiteVendorRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

// CreateVendor создаёт поставщика.
func (r *SQLiteVendorRepository) CreateVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.Vendor, error) {
	newVendor := models.Vendor{
		ID:        r.NewID(),
		Name:      vendorReq.Name,
		Email:     vendorReq.Email,
		Phone:     vendorReq.Phone,
		Specialty: vendorReq.Specialty,
		CreatedAt: r.Now(),
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO vendor (`+vendorColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		newVendor.ID, newVendor.Name, newVendor.Email, newVendor.Phone, newVendor.Specialty, newVendor.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newVendor, nil
}

// GetVendor возвращает поставщика по id.
func (r *SQLiteVendorRepository) GetVendor(ctx context.Context, vendorId string) (*models.Vendor, error) {
	return scanVendor(r.DB.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendor WHERE id = ?`, vendorId))
}

// ListVendors возвращает поставщиков по алфавиту; search ищет по имени, почте и специализации.
func (r *SQLiteVendorRepository) ListVendors(ctx context.Context, search string) ([]models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor`
	var args []any
	if search != "" {
		query += ` WHERE name LIKE ?1 ESCAPE '\' OR email LIKE ?1 ESCAPE '\' OR specialty LIKE ?1 ESCAPE '\'`
		args = append(args, searchPattern(search))
	}
	query += ` ORDER BY lower(name), id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

// UpdateVendor меняет данные поставщика.
func (r *SQLiteVendorRepository) UpdateVendor(ctx context.Context, vendorId string, vendorReq models.VendorRequest) (*models.Vendor, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE vendor SET name = ?, email = ?, phone = ?, specialty = ? WHERE id = ?`,
		vendorReq.Name, vendorReq.Email, vendorReq.Phone, vendorReq.Specialty, vendorId)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetVendor(ctx, vendorId)
}

// DeleteVendor удаляет поставщика.
func (r *SQLiteVendorRepository) DeleteVendor(ctx context.Context, vendorId string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vendor WHERE id = ?`, vendorId)
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

// CountVendors возвращает число поставщиков.
func (r *SQLiteVendorRepository) CountVendors(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vendor`).Scan(&count)
	return count, err
}

// MissingVendors возвращает идентификаторы, которых нет в базе.
func (r *SQLiteVendorRepository) MissingVendors(ctx context.Context, vendorIds []string) ([]string, error) {
	if len(vendorIds) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(vendorIds)), ", ")
	args := make([]any, len(vendorIds))
	for i, id := range vendorIds {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM vendor WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return missing(vendorIds, found), nil
}

// VendorInUse проверяет, упоминается ли поставщик в рассылках или предложениях.
func (r *SQLiteVendorRepository) VendorInUse(ctx context.Context, vendorId string) (bool, error) {
	var inUse bool
	query := `
		SELECT EXISTS(SELECT 1 FROM rfp, json_each(rfp.sent_to) WHERE json_each.value = ?1)
		    OR EXISTS(SELECT 1 FROM proposal WHERE vendor_id = ?1)`
	err := r.DB.QueryRowContext(ctx, query, vendorId).Scan(&inUse)
	return inUse, err
}
