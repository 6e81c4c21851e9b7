package repository

import (
	"context"

	"github.com/senyabanana/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const vendorColumns = `id, name, email, phone, specialty, created_at`

// PostgresVendorRepository - реализация VendorRepository для базы данных.
type PostgresVendorRepository struct {
	DB    *pgxpool.Pool
	NewID IDGenerator
	Now   Clock
}

// NewPostgresVendorRepository создаёт новый экземпляр PostgresVendorRepository.
func NewPostgresVendorRepository(db *pgxpool.Pool) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db, NewID: NewUUID, Now: UTCNow}
}

func scanVendor(row rowScanner) (*models.Vendor, error) {
	var v models.Vendor
	err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Specialty, &v.CreatedAt)
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVendor создаёт поставщика.
func (r *PostgresVendorRepository) CreateVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.Vendor, error) {
	newVendor := models.Vendor{
		ID:        r.NewID(),
		Name:      vendorReq.Name,
		Email:     vendorReq.Email,
		Phone:     vendorReq.Phone,
		Specialty: vendorReq.Specialty,
		CreatedAt: r.Now(),
	}
	_, err := r.DB.Exec(ctx, `INSERT INTO vendor (`+vendorColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		newVendor.ID, newVendor.Name, newVendor.Email, newVendor.Phone, newVendor.Specialty, newVendor.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newVendor, nil
}

// GetVendor возвращает поставщика по id.
func (r *PostgresVendorRepository) GetVendor(ctx context.Context, vendorId string) (*models.Vendor, error) {
	return scanVendor(r.DB.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendor WHERE id = $1`, vendorId))
}

// ListVendors возвращает поставщиков по алфавиту; search ищет по имени, почте и специализации.
func (r *PostgresVendorRepository) ListVendors(ctx context.Context, search string) ([]models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor`
	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\' OR specialty ILIKE $1 ESCAPE '\'`
		args = append(args, searchPattern(search))
	}
	query += ` ORDER BY lower(name), id`

	rows, err := r.DB.Query(ctx, query, args...)
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
func (r *PostgresVendorRepository) UpdateVendor(ctx context.Context, vendorId string, vendorReq models.VendorRequest) (*models.Vendor, error) {
	return scanVendor(r.DB.QueryRow(ctx, `
		UPDATE vendor SET name = $2, email = $3, phone = $4, specialty = $5 WHERE id = $1
		RETURNING `+vendorColumns,
		vendorId, vendorReq.Name, vendorReq.Email, vendorReq.Phone, vendorReq.Specialty))
}

// DeleteVendor удаляет поставщика.
func (r *PostgresVendorRepository) DeleteVendor(ctx context.Context, vendorId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM vendor WHERE id = $1`, vendorId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountVendors возвращает число поставщиков.
func (r *PostgresVendorRepository) CountVendors(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM vendor`).Scan(&count)
	return count, err
}

// MissingVendors возвращает идентификаторы, которых нет в базе.
func (r *PostgresVendorRepository) MissingVendors(ctx context.Context, vendorIds []string) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT id FROM vendor WHERE id = ANY($1)`, pq.Array(vendorIds))
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
func (r *PostgresVendorRepository) VendorInUse(ctx context.Context, vendorId string) (bool, error) {
	var inUse bool
	query := `
		SELECT EXISTS(SELECT 1 FROM rfp WHERE $1 = ANY(sent_to))
		    OR EXISTS(SELECT 1 FROM proposal WHERE vendor_id = $1)`
	err := r.DB.QueryRow(ctx, query, vendorId).Scan(&inUse)
	return inUse, err
}
