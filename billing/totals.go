package billing

import (
	"transitaire-backend/models"
	"transitaire-backend/utils"
)

// Totals is the reconciled bottom of an invoice.
type Totals struct {
	Subtotal    int64
	TaxAmount   int64
	TotalAmount int64
	// AmountDue keeps its sign: positive is "reste à payer", negative is
	// "trop-perçu" (the client's provisions exceeded the bill).
	AmountDue int64
}

// ComputeTotals derives the invoice footer from its lines.
//
// Tax applies to the honoraires component only: disbursements are the
// client's own money advanced by the agency, not taxable agency revenue.
func ComputeTotals(lines []models.InvoiceLine, totals LineTotals, taxRate float64) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Amount
	}
	tax := utils.RoundGNF(float64(totals.Honoraires) * taxRate)
	total := subtotal + tax
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: total,
		AmountDue:   total - totals.TotalProvisions,
	}
}
