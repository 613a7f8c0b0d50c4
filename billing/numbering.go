// Package billing holds the invoice arithmetic and lifecycle rules for
// dossiers: sequential numbering, line building from recorded expenses,
// totals, and the DRAFT/ISSUED/PAID/CANCELLED state machine. Everything here
// is pure computation over already-loaded records; persistence stays in the
// controllers.
package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// seqDigits is the zero-padded width of the per-year sequence.
const seqDigits = 4

// NumberPrefix returns the invoice number prefix for a calendar year,
// e.g. "FAC-2026-". The sequence resets implicitly each year because the
// prefix changes.
func NumberPrefix(year int) string {
	return fmt.Sprintf("FAC-%d-", year)
}

// NextNumber computes the invoice number following latest for the given
// year. latest is the lexicographically greatest persisted number with this
// year's prefix, or empty when the year has no invoices yet. A latest value
// whose suffix does not parse restarts the sequence at 1 rather than failing
// the whole invoice creation.
//
// The read-then-insert around this computation races between concurrent
// creations; the unique index on invoice_number catches the loser, which
// must retry with a re-read (see controllers.createNumberedInvoice).
func NextNumber(latest string, year int) string {
	prefix := NumberPrefix(year)
	seq := 1
	if strings.HasPrefix(latest, prefix) {
		if n, err := strconv.Atoi(latest[len(prefix):]); err == nil && n > 0 {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, seqDigits, seq)
}
