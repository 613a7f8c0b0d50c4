package billing

import (
	"testing"

	"transitaire-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals_ReferenceScenario(t *testing.T) {
	// Dossier with a single 15M DD disbursement, default honoraires, no tax.
	lines, lt := BuildLines([]models.Expense{disbursement(models.CategoryDD, 15_000_000)}, nil)

	totals := ComputeTotals(lines, lt, 0)

	assert.Equal(t, int64(15_750_000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TaxAmount)
	assert.Equal(t, int64(15_750_000), totals.TotalAmount)
	assert.Equal(t, int64(15_750_000), totals.AmountDue)
}

func TestComputeTotals_SubtotalMatchesLines(t *testing.T) {
	cases := [][]models.Expense{
		nil,
		{disbursement(models.CategoryDD, 15_000_000)},
		{disbursement(models.CategoryDD, 1), disbursement(models.CategoryAutre, 999_999)},
		{provision(5_000_000), disbursement(models.CategoryTransport, 3_333_333)},
		{
			disbursement(models.CategoryManutention, 750_000),
			disbursement(models.CategoryManutention, 250_000),
			disbursement(models.CategoryEscorte, 1_200_000),
			provision(10_000_000),
		},
	}
	for _, expenses := range cases {
		lines, lt := BuildLines(expenses, nil)
		totals := ComputeTotals(lines, lt, 0.18)

		var sum int64
		for _, l := range lines {
			sum += l.Amount
		}
		require.Equal(t, sum, totals.Subtotal)
		assert.Equal(t, totals.Subtotal+totals.TaxAmount, totals.TotalAmount)
		assert.Equal(t, totals.TotalAmount-lt.TotalProvisions, totals.AmountDue)
	}
}

func TestComputeTotals_TaxAppliesToHonorairesOnly(t *testing.T) {
	honoraires := int64(1_000_000)

	// Same override and rate, wildly different disbursement volumes: the tax
	// must not move.
	small, ltSmall := BuildLines([]models.Expense{disbursement(models.CategoryDD, 100_000)}, &honoraires)
	big, ltBig := BuildLines([]models.Expense{disbursement(models.CategoryDD, 900_000_000)}, &honoraires)

	tSmall := ComputeTotals(small, ltSmall, 0.18)
	tBig := ComputeTotals(big, ltBig, 0.18)

	assert.Equal(t, int64(180_000), tSmall.TaxAmount)
	assert.Equal(t, tSmall.TaxAmount, tBig.TaxAmount)
}

func TestComputeTotals_TaxRounding(t *testing.T) {
	honoraires := int64(333_333)
	lines, lt := BuildLines([]models.Expense{disbursement(models.CategoryDD, 1_000_000)}, &honoraires)

	totals := ComputeTotals(lines, lt, 0.18)

	// 333333 * 0.18 = 59999.94, rounds to the nearest whole franc.
	assert.Equal(t, int64(60_000), totals.TaxAmount)
}

func TestComputeTotals_AmountDueSign(t *testing.T) {
	honoraires := int64(6_500_000)
	lines, lt := BuildLines([]models.Expense{
		provision(20_000_000),
		disbursement(models.CategoryDD, 20_000_000),
	}, &honoraires)
	totals := ComputeTotals(lines, lt, 0)

	// 26.5M billed against 20M of provisions: 6.5M reste à payer.
	assert.Equal(t, int64(26_500_000), totals.TotalAmount)
	assert.Equal(t, int64(6_500_000), totals.AmountDue)

	// 10M billed against 12M of provisions: 2M trop-perçu, sign preserved.
	feeless := int64(0)
	lines, lt = BuildLines([]models.Expense{
		provision(12_000_000),
		disbursement(models.CategoryDD, 10_000_000),
	}, &feeless)
	totals = ComputeTotals(lines, lt, 0)

	assert.Equal(t, int64(10_000_000), totals.TotalAmount)
	assert.Equal(t, int64(-2_000_000), totals.AmountDue)
}
