package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/procurement-service/internal/models"
)

func TestExtractCommandFromArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"extract", "Need", "20 laptops", "budget $40,000"})

	require.NoError(t, cmd.Execute())

	var rfp models.RFP
	require.NoError(t, json.Unmarshal(out.Bytes(), &rfp))
	assert.Equal(t, "20x Laptop Procurement", rfp.Title)
	assert.Equal(t, 40000, rfp.Budget)
}

func TestExtractCommandFromStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("15 monitors within 14 days\n"))
	cmd.SetArgs([]string{"extract"})

	require.NoError(t, cmd.Execute())

	var rfp models.RFP
	require.NoError(t, json.Unmarshal(out.Bytes(), &rfp))
	assert.Equal(t, 14, rfp.DeliveryDays)
	assert.Equal(t, "15 monitors within 14 days", rfp.Description)
}

func TestExtractCommandRejectsEmptyInput(t *testing.T) {
	cmd := rootCmd()
	cmd.SetIn(strings.NewReader("   "))
	cmd.SetArgs([]string{"extract"})

	assert.Error(t, cmd.Execute())
}
