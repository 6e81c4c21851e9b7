package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/procurement-service/internal/db"
	"github.com/senyabanana/procurement-service/internal/models"
)

var baseTime = time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func steppingClock() Clock {
	now := baseTime
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

type testRepos struct {
	rfps      *SQLiteRFPRepository
	vendors   *SQLiteVendorRepository
	proposals *SQLiteProposalRepository
}

func newTestRepos(t *testing.T) testRepos {
	conn := setupTestDB(t)
	clock := steppingClock()
	repos := testRepos{
		rfps:      NewSQLiteRFPRepository(conn),
		vendors:   NewSQLiteVendorRepository(conn),
		proposals: NewSQLiteProposalRepository(conn),
	}
	repos.rfps.NewID, repos.rfps.Now = sequentialIDs("rfp"), clock
	repos.vendors.NewID, repos.vendors.Now = sequentialIDs("v"), clock
	repos.proposals.NewID, repos.proposals.Now = sequentialIDs("p"), clock
	return repos
}

func draft(title string) models.RFP {
	return models.RFP{
		Title:        title,
		Description:  title + " description",
		Budget:       30000,
		DeliveryDays: 30,
		Items:        []models.RFPItem{{Name: "Laptop", Quantity: 20, Specs: "16GB RAM"}},
		PaymentTerms: "Net 30 after delivery",
		Warranty:     "1 year manufacturer warranty",
	}
}

func TestSQLiteRFPCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)
	assert.Equal(t, "rfp1", created.ID)
	assert.Equal(t, models.DraftRFP, created.Status)
	assert.Equal(t, baseTime.Add(time.Minute), created.CreatedAt)

	got, err := repos.rfps.GetRFP(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Items, got.Items)
	assert.Equal(t, []string{}, got.SentTo)
	assert.Nil(t, got.SentAt)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = repos.rfps.GetRFP(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRFPListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	for _, title := range []string{"Laptops", "Office Furniture", "Network Upgrade"} {
		_, err := repos.rfps.CreateRFP(ctx, draft(title))
		require.NoError(t, err)
	}
	vendor, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "TechSupply Pro", Email: "sales@techsupplypro.com"})
	require.NoError(t, err)
	_, err = repos.rfps.SendRFP(ctx, "rfp3", []string{vendor.ID})
	require.NoError(t, err)

	all, err := repos.rfps.ListRFPs(ctx, models.RFPFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"rfp3", "rfp2", "rfp1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	sent, err := repos.rfps.ListRFPs(ctx, models.RFPFilter{Status: models.SentRFP})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "rfp3", sent[0].ID)

	search, err := repos.rfps.ListRFPs(ctx, models.RFPFilter{Search: "FURNITURE"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "rfp2", search[0].ID)

	page, err := repos.rfps.ListRFPs(ctx, models.RFPFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "rfp2", page[0].ID)
}

func TestSQLiteRFPUpdateOnlyWhileDraft(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)

	created.Budget = 45000
	created.Items = append(created.Items, models.RFPItem{Name: "Monitor", Quantity: 10, Specs: "4K"})
	updated, err := repos.rfps.UpdateRFP(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, 45000, updated.Budget)
	assert.Len(t, updated.Items, 2)

	vendor, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repos.rfps.SendRFP(ctx, created.ID, []string{vendor.ID})
	require.NoError(t, err)

	_, err = repos.rfps.UpdateRFP(ctx, *created)
	assert.ErrorIs(t, err, ErrStatusConflict)

	missingRFP := *created
	missingRFP.ID = "missing"
	_, err = repos.rfps.UpdateRFP(ctx, missingRFP)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRFPSendAndComplete(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)

	_, err = repos.rfps.CompleteRFP(ctx, created.ID)
	assert.ErrorIs(t, err, ErrStatusConflict)

	sent, err := repos.rfps.SendRFP(ctx, created.ID, []string{"v1", "v2"})
	require.NoError(t, err)
	assert.Equal(t, models.SentRFP, sent.Status)
	assert.Equal(t, []string{"v1", "v2"}, sent.SentTo)
	require.NotNil(t, sent.SentAt)

	_, err = repos.rfps.SendRFP(ctx, created.ID, []string{"v3"})
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, err := repos.rfps.GetRFP(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, stored.SentTo)

	completed, err := repos.rfps.CompleteRFP(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletedRFP, completed.Status)
	assert.Equal(t, []string{"v1", "v2"}, completed.SentTo)
	assert.NotNil(t, completed.SentAt)

	_, err = repos.rfps.SendRFP(ctx, "missing", []string{"v1"})
	assert.ErrorIs(t, err, ErrNotFound)

	counts, err := repos.rfps.CountRFPsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.RFPStatus]int{models.CompletedRFP: 1}, counts)
}

func TestSQLiteRFPDeleteCascadesProposals(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)
	vendor, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repos.proposals.CreateProposal(ctx, models.Proposal{
		RFPID: created.ID, VendorID: vendor.ID, VendorName: vendor.Name, TotalPrice: 100, DeliveryDays: 5, AIScore: 50,
	})
	require.NoError(t, err)

	require.NoError(t, repos.rfps.DeleteRFP(ctx, created.ID))
	assert.ErrorIs(t, repos.rfps.DeleteRFP(ctx, created.ID), ErrNotFound)

	proposals, err := repos.proposals.ListProposalsForRFP(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestSQLiteVendors(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	for _, req := range []models.VendorRequest{
		{Name: "Office Solutions Inc", Email: "procurement@officesolutions.com", Specialty: "Office Equipment"},
		{Name: "digital Systems Corp", Email: "bids@digitalsystems.com", Specialty: "IT Infrastructure"},
		{Name: "TechSupply Pro", Email: "sales@techsupplypro.com", Specialty: "Computer Hardware"},
	} {
		_, err := repos.vendors.CreateVendor(ctx, req)
		require.NoError(t, err)
	}

	all, err := repos.vendors.ListVendors(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"digital Systems Corp", "Office Solutions Inc", "TechSupply Pro"},
		[]string{all[0].Name, all[1].Name, all[2].Name})

	bySpecialty, err := repos.vendors.ListVendors(ctx, "hardware")
	require.NoError(t, err)
	require.Len(t, bySpecialty, 1)
	assert.Equal(t, "v3", bySpecialty[0].ID)

	byEmail, err := repos.vendors.ListVendors(ctx, "officesolutions")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	updated, err := repos.vendors.UpdateVendor(ctx, "v1", models.VendorRequest{Name: "Office Solutions LLC", Email: "new@officesolutions.com"})
	require.NoError(t, err)
	assert.Equal(t, "Office Solutions LLC", updated.Name)
	assert.Empty(t, updated.Specialty)

	_, err = repos.vendors.UpdateVendor(ctx, "missing", models.VendorRequest{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repos.vendors.CountVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	missingIDs, err := repos.vendors.MissingVendors(ctx, []string{"v1", "nope", "v2", "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, missingIDs)

	require.NoError(t, repos.vendors.DeleteVendor(ctx, "v2"))
	assert.ErrorIs(t, repos.vendors.DeleteVendor(ctx, "v2"), ErrNotFound)
	_, err = repos.vendors.GetVendor(ctx, "v2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteVendorInUse(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	b, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	inUse, err := repos.vendors.VendorInUse(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	rfp, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)
	_, err = repos.rfps.SendRFP(ctx, rfp.ID, []string{a.ID})
	require.NoError(t, err)

	inUse, err = repos.vendors.VendorInUse(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repos.vendors.VendorInUse(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestSQLiteProposalsInReceivedOrder(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	rfp, err := repos.rfps.CreateRFP(ctx, draft("Laptops"))
	require.NoError(t, err)
	vendor, err := repos.vendors.CreateVendor(ctx, models.VendorRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	first, err := repos.proposals.CreateProposal(ctx, models.Proposal{
		RFPID: rfp.ID, VendorID: vendor.ID, VendorName: vendor.Name, TotalPrice: 28500, DeliveryDays: 25,
		LineItems: []models.ProposalLineItem{{Item: "Laptop", Price: 1200}}, Notes: "Bulk discount.", AIScore: 87,
	})
	require.NoError(t, err)
	second, err := repos.proposals.CreateProposal(ctx, models.Proposal{
		RFPID: rfp.ID, VendorID: vendor.ID, VendorName: vendor.Name, TotalPrice: 29200, DeliveryDays: 28, AIScore: 82,
	})
	require.NoError(t, err)

	proposals, err := repos.proposals.ListProposalsForRFP(ctx, rfp.ID)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, first.ID, proposals[0].ID)
	assert.Equal(t, second.ID, proposals[1].ID)
	assert.Equal(t, []models.ProposalLineItem{{Item: "Laptop", Price: 1200}}, proposals[0].LineItems)
	assert.Equal(t, []models.ProposalLineItem{}, proposals[1].LineItems)
	assert.True(t, first.ReceivedAt.Equal(proposals[0].ReceivedAt))

	_, err = repos.proposals.CreateProposal(ctx, models.Proposal{
		RFPID: "missing", VendorID: vendor.ID, VendorName: vendor.Name, DeliveryDays: 1,
	})
	assert.Error(t, err)
}

func TestSQLiteSearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	for _, title := range []string{"Laptops 100% refurbished", "Office Furniture", `Cables C:\net`} {
		_, err := repos.rfps.CreateRFP(ctx, draft(title))
		require.NoError(t, err)
	}
	for _, req := range []models.VendorRequest{
		{Name: "Fifty_Fifty Supply", Email: "sales@fifty.example.com"},
		{Name: "Office Solutions Inc", Email: "procurement@officesolutions.com"},
	} {
		_, err := repos.vendors.CreateVendor(ctx, req)
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"rfp1"}},
		{"_", nil},
		{`\`, []string{"rfp3"}},
		{"100%", []string{"rfp1"}},
		{"office", []string{"rfp2"}},
	}
	for _, tt := range tests {
		t.Run("rfp "+tt.search, func(t *testing.T) {
			found, err := repos.rfps.ListRFPs(ctx, models.RFPFilter{Search: tt.search})
			require.NoError(t, err)
			var ids []string
			for _, rfp := range found {
				ids = append(ids, rfp.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	vendors, err := repos.vendors.ListVendors(ctx, "_")
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Fifty_Fifty Supply", vendors[0].Name)

	vendors, err = repos.vendors.ListVendors(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%laptop%", searchPattern("laptop"))
	assert.Equal(t, `%50\%\_off\\%`, searchPattern(`50%_off\`))
}

func TestSQLiteRejectsInconsistentSentState(t *testing.T) {
	conn := setupTestDB(t)
	insert := func(status, sentTo string, sentAt any) error {
		_, err := conn.Exec(`
			INSERT INTO rfp (id, title, description, budget, delivery_days, payment_terms, warranty, status, created_at, sent_to, sent_at)
			VALUES (?, 'T', 'D', 1, 1, 'Net 30', '1 year', ?, ?, ?, ?)`,
			fmt.Sprintf("%s-%s", status, sentTo), status, baseTime, sentTo, sentAt)
		return err
	}

	assert.Error(t, insert("archived", "[]", nil))
	assert.Error(t, insert("draft", `["v1"]`, nil))
	assert.Error(t, insert("draft", "[]", baseTime))
	assert.Error(t, insert("sent", "[]", baseTime))
	assert.Error(t, insert("completed", `["v1"]`, nil))

	assert.NoError(t, insert("draft", "[]", nil))
	assert.NoError(t, insert("sent", `["v1"]`, baseTime))
	assert.NoError(t, insert("completed", `["v1","v2"]`, baseTime))
}
