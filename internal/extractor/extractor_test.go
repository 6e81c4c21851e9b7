package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/procurement-service/internal/models"
)

func TestExtractLaptopsAndMonitors(t *testing.T) {
	input := "I need 20 laptops with 16GB RAM and 10 monitors. Budget is $30,000. Need delivery in 30 days."

	rfp := Extract(input)

	assert.Equal(t, []models.RFPItem{
		{Name: "Laptop", Quantity: 20, Specs: "16GB RAM, Intel i7, 512GB SSD"},
		{Name: "Monitor", Quantity: 10, Specs: `27" 4K Resolution`},
	}, rfp.Items)
	assert.Equal(t, 30000, rfp.Budget)
	assert.Equal(t, 30, rfp.DeliveryDays)
	assert.Equal(t, "20x Laptop + 10x Monitor Procurement", rfp.Title)
	assert.Equal(t, input, rfp.Description)
	assert.Equal(t, DefaultPaymentTerms, rfp.PaymentTerms)
	assert.Equal(t, DefaultWarranty, rfp.Warranty)
	assert.Equal(t, models.DraftRFP, rfp.Status)
	assert.Empty(t, rfp.SentTo)
	assert.Nil(t, rfp.SentAt)
	assert.Empty(t, rfp.ID)
	assert.True(t, rfp.CreatedAt.IsZero())
}

func TestExtractFallsBackToDefaults(t *testing.T) {
	res := Parse("Need some general supplies")

	require.True(t, res.UsedDefaults)
	assert.Equal(t, []models.RFPItem{{Name: "Item 1", Quantity: 10, Specs: "Standard specifications"}}, res.RFP.Items)
	assert.Equal(t, DefaultTitle, res.RFP.Title)
	assert.Equal(t, DefaultBudget, res.RFP.Budget)
	assert.Equal(t, DefaultDeliveryDays, res.RFP.DeliveryDays)
}

func TestExtractEmptyInput(t *testing.T) {
	res := Parse("")

	assert.True(t, res.UsedDefaults)
	assert.Equal(t, "", res.RFP.Description)
	assert.Equal(t, DefaultBudget, res.RFP.Budget)
	assert.Equal(t, DefaultDeliveryDays, res.RFP.DeliveryDays)
}

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"dollar with commas", "Budget is $30,000 total", 30000},
		{"dollar wins over earlier number", "5 chairs, budget $1,200", 1200},
		{"bare number", "we can spend 30000 on this", 30000},
		{"first bare number", "20 laptops, no budget given", 20},
		{"trailing comma", "spend $45,000, maybe more", 45000},
		{"no digits", "just some chairs please", DefaultBudget},
		{"overflow", "$99999999999999999999999", DefaultBudget},
		{"above storable range", "budget $9,000,000,000", DefaultBudget},
		{"largest storable", "budget $2,147,483,647", MaxAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.input).Budget)
		})
	}
}

func TestExtractDeliveryDays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plural", "deliver within 45 days", 45},
		{"singular", "1 day turnaround", 1},
		{"upper case", "WITHIN 14 DAYS", 14},
		{"no space", "ship in 10days", 10},
		{"first match", "7 days for laptops, 21 days for monitors", 7},
		{"zero means absent", "0 days", DefaultDeliveryDays},
		{"above storable range", "need 5000000000 days", DefaultDeliveryDays},
		{"absent", "as soon as possible", DefaultDeliveryDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.input).DeliveryDays)
		})
	}
}

func TestExtractItems(t *testing.T) {
	t.Run("laptop without ram", func(t *testing.T) {
		rfp := Extract("5 Laptops")
		require.Len(t, rfp.Items, 1)
		assert.Equal(t, models.RFPItem{Name: "Laptop", Quantity: 5, Specs: "Standard configuration"}, rfp.Items[0])
		assert.Equal(t, "5x Laptop Procurement", rfp.Title)
	})

	t.Run("single monitor ignores ram", func(t *testing.T) {
		rfp := Extract("1 monitor and 32GB RAM")
		require.Len(t, rfp.Items, 1)
		assert.Equal(t, models.RFPItem{Name: "Monitor", Quantity: 1, Specs: `27" 4K Resolution`}, rfp.Items[0])
	})

	t.Run("laptop listed before monitor regardless of text order", func(t *testing.T) {
		rfp := Extract("3 monitors and 2 laptops with 8 GB RAM")
		require.Len(t, rfp.Items, 2)
		assert.Equal(t, "Laptop", rfp.Items[0].Name)
		assert.Equal(t, "8GB RAM, Intel i7, 512GB SSD", rfp.Items[0].Specs)
		assert.Equal(t, "Monitor", rfp.Items[1].Name)
		assert.Equal(t, "2x Laptop + 3x Monitor Procurement", rfp.Title)
	})

	t.Run("quantity above storable range is ignored", func(t *testing.T) {
		res := Parse("3000000000 laptops and 2 monitors")
		require.Len(t, res.RFP.Items, 1)
		assert.Equal(t, "Monitor", res.RFP.Items[0].Name)
		assert.Equal(t, "2x Monitor Procurement", res.RFP.Title)
	})

	t.Run("zero quantity is ignored", func(t *testing.T) {
		res := Parse("0 laptops")
		assert.True(t, res.UsedDefaults)
		assert.Equal(t, DefaultTitle, res.RFP.Title)
	})
}

func TestExtractOversizedValuesFallBack(t *testing.T) {
	rfp := Extract("need 5000000000 days, budget $9,000,000,000")

	assert.Equal(t, DefaultBudget, rfp.Budget)
	assert.Equal(t, DefaultDeliveryDays, rfp.DeliveryDays)
}

func TestExtractIsDeterministic(t *testing.T) {
	input := "12 laptops, 4 monitors, $18,500, 20 days"
	assert.Equal(t, Extract(input), Extract(input))
}
