package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/senyabanana/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound - запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrStatusConflict - запись существует, но её статус не допускает операцию.
	ErrStatusConflict = errors.New("status does not allow this operation")
)

// IDGenerator выдаёт идентификаторы новых записей.
type IDGenerator func() string

// Clock выдаёт время создания записей.
type Clock func() time.Time

// NewUUID - генератор идентификаторов по умолчанию.
func NewUUID() string {
	return uuid.New().String()
}

// UTCNow - часы по умолчанию, с точностью Postgres.
func UTCNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// RFPRepository - интерфейс для работы с запросами предложений.
type RFPRepository interface {
	CreateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error)
	GetRFP(ctx context.Context, rfpId string) (*models.RFP, error)
	ListRFPs(ctx context.Context, filter models.RFPFilter) ([]models.RFP, error)
	UpdateRFP(ctx context.Context, rfp models.RFP) (*models.RFP, error)
	DeleteRFP(ctx context.Context, rfpId string) error
	SendRFP(ctx context.Context, rfpId string, vendorIds []string) (*models.RFP, error)
	CompleteRFP(ctx context.Context, rfpId string) (*models.RFP, error)
	CountRFPsByStatus(ctx context.Context) (map[models.RFPStatus]int, error)
}

// VendorRepository - интерфейс для работы с поставщиками.
type VendorRepository interface {
	CreateVendor(ctx context.Context, vendorReq models.VendorRequest) (*models.Vendor, error)
	GetVendor(ctx context.Context, vendorId string) (*models.Vendor, error)
	ListVendors(ctx context.Context, search string) ([]models.Vendor, error)
	UpdateVendor(ctx context.Context, vendorId string, vendorReq models.VendorRequest) (*models.Vendor, error)
	DeleteVendor(ctx context.Context, vendorId string) error
	CountVendors(ctx context.Context) (int, error)
	MissingVendors(ctx context.Context, vendorIds []string) ([]string, error)
	VendorInUse(ctx context.Context, vendorId string) (bool, error)
}

// ProposalRepository - интерфейс для работы с предложениями поставщиков.
type ProposalRepository interface {
	CreateProposal(ctx context.Context, proposal models.Proposal) (*models.Proposal, error)
	ListProposalsForRFP(ctx context.Context, rfpId string) ([]models.Proposal, error)
}

// rowScanner покрывает pgx.Row, pgx.Rows, *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// missing возвращает идентификаторы из want, которых нет в found, без повторов.
func missing(want, found []string) []string {
	have := make(map[string]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var out []string
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
			have[id] = struct{}{}
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern строит шаблон поиска подстроки. Символы LIKE экранируются, запросы используют ESCAPE '\'.
func searchPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
