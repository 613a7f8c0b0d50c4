package billing

import (
	"fmt"

	"transitaire-backend/models"
	"transitaire-backend/utils"
)

const (
	// Default honoraires policy: 5% of disbursements, floored at 500 000 GNF.
	honorairesRate  = 0.05
	honorairesFloor = 500_000
)

// LineTotals carries the sums derived while building invoice lines.
type LineTotals struct {
	TotalProvisions    int64
	TotalDisbursements int64
	Honoraires         int64
}

// Honoraires resolves the service fee for a dossier. An explicit override
// always wins. Otherwise the fee is 5% of disbursements with the 500 000 GNF
// floor, except that an empty dossier (zero disbursements) carries no fee
// at all.
func Honoraires(totalDisbursements int64, override *int64) int64 {
	if override != nil {
		return *override
	}
	if totalDisbursements == 0 {
		return 0
	}
	fee := utils.RoundGNF(float64(totalDisbursements) * honorairesRate)
	if fee < honorairesFloor {
		fee = honorairesFloor
	}
	return fee
}

// BuildLines turns a dossier's expenses into invoice lines.
//
// Disbursements are grouped by category, one line per category in
// first-encounter order, then the honoraires line last (when the fee is
// non-zero). Provisions produce no lines; they only reduce the amount due.
func BuildLines(expenses []models.Expense, honorairesOverride *int64) ([]models.InvoiceLine, LineTotals) {
	var totals LineTotals
	sums := make(map[models.ExpenseCategory]int64)
	counts := make(map[models.ExpenseCategory]int)
	var order []models.ExpenseCategory

	for _, e := range expenses {
		switch e.Type {
		case models.ExpenseProvision:
			totals.TotalProvisions += e.Amount
		case models.ExpenseDisbursement:
			totals.TotalDisbursements += e.Amount
			if _, seen := sums[e.Category]; !seen {
				order = append(order, e.Category)
			}
			sums[e.Category] += e.Amount
			counts[e.Category]++
		}
	}

	var lines []models.InvoiceLine
	for i, cat := range order {
		desc := cat.Label()
		if counts[cat] > 1 {
			desc = fmt.Sprintf("%s (%d opérations)", desc, counts[cat])
		}
		lines = append(lines, models.InvoiceLine{
			Position:    i + 1,
			Description: desc,
			Category:    cat,
			Quantity:    1,
			UnitPrice:   sums[cat],
			Amount:      sums[cat],
		})
	}

	totals.Honoraires = Honoraires(totals.TotalDisbursements, honorairesOverride)
	if totals.Honoraires > 0 {
		lines = append(lines, models.InvoiceLine{
			Position:    len(lines) + 1,
			Description: models.CategoryHonoraires.Label(),
			Category:    models.CategoryHonoraires,
			Quantity:    1,
			UnitPrice:   totals.Honoraires,
			Amount:      totals.Honoraires,
		})
	}

	return lines, totals
}
