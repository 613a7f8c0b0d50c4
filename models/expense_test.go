package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryLabels(t *testing.T) {
	labels := map[ExpenseCategory]string{
		CategoryDD:            "Droits de douane",
		CategoryManutention:   "Frais de manutention",
		CategoryTransport:     "Transport",
		CategoryMagasinage:    "Magasinage",
		CategoryDocumentation: "Frais de documentation",
		CategoryEscorte:       "Escorte douanière",
		CategoryAutre:         "Autres frais",
		CategoryHonoraires:    "Honoraires de transit",
	}
	for cat, want := range labels {
		assert.Equal(t, want, cat.Label())
		assert.True(t, ValidExpenseCategory(cat))
	}

	// Unknown codes render as-is instead of breaking invoice output.
	assert.Equal(t, "SCANNER", ExpenseCategory("SCANNER").Label())
	assert.False(t, ValidExpenseCategory("SCANNER"))
}

func TestValidShipmentStatus(t *testing.T) {
	assert.True(t, ValidShipmentStatus(ShipmentDelivered))
	assert.False(t, ValidShipmentStatus("LOST"))
}
