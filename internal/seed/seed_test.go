package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/procurement-service/internal/comparison"
	"github.com/senyabanana/procurement-service/internal/db"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/repository"
)

func newStore(t *testing.T) Store {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return Store{
		RFPs:      repository.NewSQLiteRFPRepository(conn),
		Vendors:   repository.NewSQLiteVendorRepository(conn),
		Proposals: repository.NewSQLiteProposalRepository(conn),
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	loaded, err := Load(ctx, store, nil)
	require.NoError(t, err)
	assert.True(t, loaded)

	vendorCount, err := store.Vendors.CountVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, vendorCount)

	counts, err := store.RFPs.CountRFPsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.RFPStatus]int{
		models.DraftRFP:     1,
		models.SentRFP:      1,
		models.CompletedRFP: 1,
	}, counts)

	completed, err := store.RFPs.ListRFPs(ctx, models.RFPFilter{Status: models.CompletedRFP})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Network Infrastructure Upgrade", completed[0].Title)
	assert.Len(t, completed[0].SentTo, 2)

	proposals, err := store.Proposals.ListProposalsForRFP(ctx, completed[0].ID)
	require.NoError(t, err)
	require.Len(t, proposals, 2)

	result, ok := comparison.Compare(proposals)
	require.True(t, ok)
	assert.Equal(t, "TechSupply Pro", result.Recommendation.VendorName)
	assert.Equal(t, 92, result.Recommendation.Scores.Overall)
}

func TestLoadSkipsFilledStore(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Vendors.CreateVendor(ctx, models.VendorRequest{Name: "Existing", Email: "existing@example.com"})
	require.NoError(t, err)

	loaded, err := Load(ctx, store, nil)
	require.NoError(t, err)
	assert.False(t, loaded)

	rfps, err := store.RFPs.ListRFPs(ctx, models.RFPFilter{})
	require.NoError(t, err)
	assert.Empty(t, rfps)
}
