package pdf

import (
	"testing"
	"time"

	"transitaire-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	issued := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	invoice := models.Invoice{
		InvoiceNumber:   "FAC-2026-0007",
		TrackingNumber:  "CNK-2026-113",
		CompanyName:     "Transit Kaloum SARL",
		CompanyAddress:  "Quartier Almamya, Conakry",
		CompanyNIF:      "123456789",
		ClientName:      "Importations Bah & Frères",
		IssuedAt:        &issued,
		Subtotal:        15_750_000,
		TotalAmount:     15_750_000,
		TotalProvisions: 10_000_000,
		AmountDue:       5_750_000,
		Lines: []models.InvoiceLine{
			{Description: "Droits de douane", Quantity: 1, Amount: 15_000_000},
			{Description: "Honoraires de transit", Quantity: 1, Amount: 750_000},
		},
	}

	html, err := renderHTML(invoice)
	require.NoError(t, err)

	assert.Contains(t, html, "FAC-2026-0007")
	assert.Contains(t, html, "Droits de douane")
	assert.Contains(t, html, "15 750 000 GNF")
	assert.Contains(t, html, "émise le 03/02/2026")
	assert.Contains(t, html, "Reste à payer")
}

func TestBalanceLabel(t *testing.T) {
	assert.Equal(t, "Reste à payer", balanceLabel(6_500_000))
	assert.Equal(t, "Reste à payer", balanceLabel(0))
	assert.Equal(t, "Trop-perçu", balanceLabel(-2_000_000))
}
