package billing

import (
	"testing"

	"transitaire-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disbursement(cat models.ExpenseCategory, amount int64) models.Expense {
	return models.Expense{Type: models.ExpenseDisbursement, Category: cat, Amount: amount}
}

func provision(amount int64) models.Expense {
	return models.Expense{Type: models.ExpenseProvision, Category: models.CategoryAutre, Amount: amount}
}

func TestBuildLines_SingleDisbursement(t *testing.T) {
	expenses := []models.Expense{disbursement(models.CategoryDD, 15_000_000)}

	lines, totals := BuildLines(expenses, nil)

	require.Len(t, lines, 2)
	assert.Equal(t, "Droits de douane", lines[0].Description)
	assert.Equal(t, int64(15_000_000), lines[0].Amount)
	assert.Equal(t, "Honoraires de transit", lines[1].Description)
	assert.Equal(t, int64(750_000), lines[1].Amount) // 5% of 15M, above the floor
	assert.Equal(t, int64(15_000_000), totals.TotalDisbursements)
	assert.Equal(t, int64(750_000), totals.Honoraires)
	assert.Equal(t, int64(0), totals.TotalProvisions)
}

func TestBuildLines_EmptyDossier(t *testing.T) {
	lines, totals := BuildLines(nil, nil)

	assert.Empty(t, lines)
	assert.Equal(t, int64(0), totals.Honoraires)
	assert.Equal(t, int64(0), totals.TotalDisbursements)
}

func TestBuildLines_HonorairesFloor(t *testing.T) {
	// 5% of 1M is 50 000, well under the 500 000 floor.
	lines, totals := BuildLines([]models.Expense{disbursement(models.CategoryTransport, 1_000_000)}, nil)

	require.Len(t, lines, 2)
	assert.Equal(t, int64(500_000), totals.Honoraires)
	assert.Equal(t, int64(500_000), lines[1].Amount)
}

func TestBuildLines_ExplicitHonorairesOverride(t *testing.T) {
	override := int64(2_000_000)
	lines, totals := BuildLines([]models.Expense{disbursement(models.CategoryDD, 1_000_000)}, &override)

	require.Len(t, lines, 2)
	assert.Equal(t, int64(2_000_000), totals.Honoraires)

	// An explicit zero suppresses the honoraires line entirely.
	zero := int64(0)
	lines, totals = BuildLines([]models.Expense{disbursement(models.CategoryDD, 1_000_000)}, &zero)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(0), totals.Honoraires)
}

func TestBuildLines_OverrideOnEmptyDossier(t *testing.T) {
	override := int64(750_000)
	lines, totals := BuildLines(nil, &override)

	require.Len(t, lines, 1)
	assert.Equal(t, models.CategoryHonoraires, lines[0].Category)
	assert.Equal(t, int64(750_000), totals.Honoraires)
}

func TestBuildLines_GroupsByCategoryInEncounterOrder(t *testing.T) {
	expenses := []models.Expense{
		disbursement(models.CategoryMagasinage, 300_000),
		disbursement(models.CategoryDD, 8_000_000),
		disbursement(models.CategoryMagasinage, 200_000),
		disbursement(models.CategoryTransport, 1_500_000),
	}

	lines, _ := BuildLines(expenses, nil)

	require.Len(t, lines, 4)
	assert.Equal(t, "Magasinage (2 opérations)", lines[0].Description)
	assert.Equal(t, int64(500_000), lines[0].Amount)
	assert.Equal(t, models.CategoryDD, lines[1].Category)
	assert.Equal(t, models.CategoryTransport, lines[2].Category)
	assert.Equal(t, models.CategoryHonoraires, lines[3].Category)

	for i, l := range lines {
		assert.Equal(t, i+1, l.Position)
		assert.Equal(t, 1, l.Quantity)
		assert.Equal(t, l.UnitPrice, l.Amount)
	}
}

func TestBuildLines_ProvisionsProduceNoLines(t *testing.T) {
	expenses := []models.Expense{
		provision(20_000_000),
		disbursement(models.CategoryDD, 10_000_000),
	}

	lines, totals := BuildLines(expenses, nil)

	require.Len(t, lines, 2) // DD + honoraires, nothing for the provision
	assert.Equal(t, int64(20_000_000), totals.TotalProvisions)
	assert.Equal(t, int64(10_000_000), totals.TotalDisbursements)
}

func TestHonoraires_NoFeeOnEmptyDossier(t *testing.T) {
	assert.Equal(t, int64(0), Honoraires(0, nil))
	assert.Equal(t, int64(500_000), Honoraires(1, nil))
	assert.Equal(t, int64(750_000), Honoraires(15_000_000, nil))
}
