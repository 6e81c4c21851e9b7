// Package seed заполняет пустое хранилище демо-поставщиками, запросами и предложениями.
package seed

import (
	"context"
	"fmt"

	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/models"
	"github.com/senyabanana/procurement-service/internal/repository"
)

// Store - репозитории, через которые загружаются демо-данные.
type Store struct {
	RFPs      repository.RFPRepository
	Vendors   repository.VendorRepository
	Proposals repository.ProposalRepository
}

type demoRFP struct {
	key    string
	rfp    models.RFP
	status models.RFPStatus
	sentTo []string
}

type demoProposal struct {
	rfpKey    string
	vendorKey string
	proposal  models.Proposal
}

var vendors = []struct {
	key string
	req models.VendorRequest
}{
	{"techsupply", models.VendorRequest{Name: "TechSupply Pro", Email: "sales@techsupplypro.com", Phone: "+1 (555) 123-4567", Specialty: "Computer Hardware"}},
	{"officesolutions", models.VendorRequest{Name: "Office Solutions Inc", Email: "procurement@officesolutions.com", Phone: "+1 (555) 234-5678", Specialty: "Office Equipment"}},
	{"digitalsystems", models.VendorRequest{Name: "Digital Systems Corp", Email: "bids@digitalsystems.com", Phone: "+1 (555) 345-6789", Specialty: "IT Infrastructure"}},
}

// RFP создаются в порядке создания, чтобы список "новые первыми" совпадал с демо.
var rfps = []demoRFP{
	{
		key: "network",
		rfp: models.RFP{
			Title:        "Network Infrastructure Upgrade",
			Description:  "Complete network overhaul for improved performance.",
			Budget:       50000,
			DeliveryDays: 60,
			Items: []models.RFPItem{
				{Name: "Enterprise Switch", Quantity: 5, Specs: "48-port, PoE+, managed"},
				{Name: "Access Points", Quantity: 20, Specs: "WiFi 6E, indoor/outdoor"},
				{Name: "Firewall", Quantity: 2, Specs: "Next-gen, 10Gbps throughput"},
			},
			PaymentTerms: "Net 45 after installation",
			Warranty:     "5 years with 24/7 support",
		},
		status: models.CompletedRFP,
		sentTo: []string{"techsupply", "digitalsystems"},
	},
	{
		key: "laptops",
		rfp: models.RFP{
			Title:        "Laptop and Monitor Procurement",
			Description:  "Procurement of laptops and monitors for the engineering team expansion.",
			Budget:       30000,
			DeliveryDays: 30,
			Items: []models.RFPItem{
				{Name: "Laptop 16GB RAM", Quantity: 20, Specs: "Intel i7, 512GB SSD, 16GB RAM"},
				{Name: `Monitor 27"`, Quantity: 10, Specs: "4K Resolution, USB-C connectivity"},
			},
			PaymentTerms: "Net 30 after delivery",
			Warranty:     "3 years manufacturer warranty",
		},
		status: models.SentRFP,
		sentTo: []string{"techsupply", "officesolutions"},
	},
	{
		key: "furniture",
		rfp: models.RFP{
			Title:        "Office Furniture Setup",
			Description:  "New office furniture for the downtown location.",
			Budget:       15000,
			DeliveryDays: 45,
			Items: []models.RFPItem{
				{Name: "Standing Desk", Quantity: 15, Specs: `Electric adjustable, 60" width`},
				{Name: "Ergonomic Chair", Quantity: 15, Specs: "Lumbar support, mesh back"},
			},
			PaymentTerms: "50% upfront, 50% on delivery",
			Warranty:     "5 years on all items",
		},
		status: models.DraftRFP,
	},
}

// Предложения по завершённому запросу регистрируются до его завершения.
var proposals = []demoProposal{
	{"network", "techsupply", models.Proposal{
		TotalPrice:   47800,
		DeliveryDays: 55,
		Terms:        "Net 45 after installation",
		Warranty:     "5 years with 24/7 support",
		LineItems: []models.ProposalLineItem{
			{Item: "Enterprise Switch", Price: 3200},
			{Item: "Access Points", Price: 850},
			{Item: "Firewall", Price: 8500},
		},
		Notes:   "Includes professional installation by certified engineers.",
		AIScore: 92,
	}},
	{"network", "digitalsystems", models.Proposal{
		TotalPrice:   49500,
		DeliveryDays: 50,
		Terms:        "Net 45 after installation",
		Warranty:     "7 years with priority support",
		LineItems: []models.ProposalLineItem{
			{Item: "Enterprise Switch", Price: 3500},
			{Item: "Access Points", Price: 900},
			{Item: "Firewall", Price: 9000},
		},
		Notes:   "Extended warranty and dedicated account manager included.",
		AIScore: 88,
	}},
	{"laptops", "techsupply", models.Proposal{
		TotalPrice:   28500,
		DeliveryDays: 25,
		Terms:        "Net 30 after delivery",
		Warranty:     "3 years manufacturer warranty + 1 year extended",
		LineItems: []models.ProposalLineItem{
			{Item: "Laptop 16GB RAM", Price: 1200},
			{Item: `Monitor 27"`, Price: 450},
		},
		Notes:   "We can offer bulk discount for orders over 15 units.",
		AIScore: 87,
	}},
	{"laptops", "officesolutions", models.Proposal{
		TotalPrice:   29200,
		DeliveryDays: 28,
		Terms:        "Net 30 after delivery",
		Warranty:     "3 years manufacturer warranty",
		LineItems: []models.ProposalLineItem{
			{Item: "Laptop 16GB RAM", Price: 1250},
			{Item: `Monitor 27"`, Price: 420},
		},
		Notes:   "Free installation and setup included.",
		AIScore: 82,
	}},
}

// Load загружает демо-данные, если в хранилище нет ни поставщиков, ни запросов.
// Возвращает false, если хранилище уже заполнено.
func Load(ctx context.Context, store Store, logg *logger.Logger) (bool, error) {
	if logg == nil {
		logg = logger.Nop()
	}

	vendorCount, err := store.Vendors.CountVendors(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count vendors: %w", err)
	}
	rfpCounts, err := store.RFPs.CountRFPsByStatus(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count rfps: %w", err)
	}
	if vendorCount > 0 || len(rfpCounts) > 0 {
		logg.Info(ctx, "seed.skipped")
		return false, nil
	}

	vendorIDs := make(map[string]*models.Vendor, len(vendors))
	for _, v := range vendors {
		created, err := store.Vendors.CreateVendor(ctx, v.req)
		if err != nil {
			return false, fmt.Errorf("failed to seed vendor %s: %w", v.req.Name, err)
		}
		vendorIDs[v.key] = created
	}

	rfpIDs := make(map[string]string, len(rfps))
	for _, d := range rfps {
		created, err := store.RFPs.CreateRFP(ctx, d.rfp)
		if err != nil {
			return false, fmt.Errorf("failed to seed rfp %s: %w", d.rfp.Title, err)
		}
		rfpIDs[d.key] = created.ID

		if d.status == models.DraftRFP {
			continue
		}
		sentTo := make([]string, 0, len(d.sentTo))
		for _, key := range d.sentTo {
			sentTo = append(sentTo, vendorIDs[key].ID)
		}
		if _, err = store.RFPs.SendRFP(ctx, created.ID, sentTo); err != nil {
			return false, fmt.Errorf("failed to send rfp %s: %w", d.rfp.Title, err)
		}
	}

	for _, d := range proposals {
		vendor := vendorIDs[d.vendorKey]
		p := d.proposal
		p.RFPID = rfpIDs[d.rfpKey]
		p.VendorID = vendor.ID
		p.VendorName = vendor.Name
		if _, err = store.Proposals.CreateProposal(ctx, p); err != nil {
			return false, fmt.Errorf("failed to seed proposal from %s: %w", vendor.Name, err)
		}
	}

	for _, d := range rfps {
		if d.status != models.CompletedRFP {
			continue
		}
		if _, err = store.RFPs.CompleteRFP(ctx, rfpIDs[d.key]); err != nil {
			return false, fmt.Errorf("failed to complete rfp %s: %w", d.rfp.Title, err)
		}
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"vendors":   len(vendors),
		"rfps":      len(rfps),
		"proposals": len(proposals),
	}), "seed.loaded")
	return true, nil
}
