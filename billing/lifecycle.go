package billing

import (
	"errors"
	"fmt"
	"time"

	"transitaire-backend/models"
)

// ErrInvalidState indicates a lifecycle precondition on the invoice status
// was violated. Callers should re-fetch current state before retrying.
var ErrInvalidState = errors.New("invalid invoice state")

// Issue moves a DRAFT invoice to ISSUED and stamps issuedAt.
func Issue(inv *models.Invoice, now time.Time) error {
	if inv.Status != models.InvoiceDraft {
		return fmt.Errorf("%w: issue requires a draft invoice", ErrInvalidState)
	}
	inv.Status = models.InvoiceIssued
	inv.IssuedAt = &now
	return nil
}

// Pay marks an invoice PAID. Paying twice or paying a cancelled invoice is
// rejected.
func Pay(inv *models.Invoice, now time.Time) error {
	switch inv.Status {
	case models.InvoicePaid:
		return fmt.Errorf("%w: already paid", ErrInvalidState)
	case models.InvoiceCancelled:
		return fmt.Errorf("%w: cancelled invoice", ErrInvalidState)
	}
	inv.Status = models.InvoicePaid
	inv.PaidAt = &now
	return nil
}

// Cancel marks an invoice CANCELLED. A paid invoice is final and cannot be
// cancelled. Cancellation has no shipment side effect.
func Cancel(inv *models.Invoice, now time.Time) error {
	if inv.Status == models.InvoicePaid {
		return fmt.Errorf("%w: cannot cancel a paid invoice", ErrInvalidState)
	}
	inv.Status = models.InvoiceCancelled
	inv.CancelledAt = &now
	return nil
}

// shipmentAdvance couples one invoice transition to one shipment status
// move: only when the dossier sits exactly at `from` does the transition
// push it to `to`. Kept as data so the coupling is auditable in one place.
type shipmentAdvance struct {
	from models.ShipmentStatus
	to   models.ShipmentStatus
}

var (
	advanceOnIssue = shipmentAdvance{from: models.ShipmentDelivered, to: models.ShipmentInvoiced}
	advanceOnPay   = shipmentAdvance{from: models.ShipmentInvoiced, to: models.ShipmentClosed}
)

// AdvanceOnIssue returns the new shipment status triggered by issuing an
// invoice, if the dossier's current status calls for one.
func AdvanceOnIssue(current models.ShipmentStatus) (models.ShipmentStatus, bool) {
	return advanceOnIssue.apply(current)
}

// AdvanceOnPay returns the new shipment status triggered by paying an
// invoice, if the dossier's current status calls for one.
func AdvanceOnPay(current models.ShipmentStatus) (models.ShipmentStatus, bool) {
	return advanceOnPay.apply(current)
}

func (a shipmentAdvance) apply(current models.ShipmentStatus) (models.ShipmentStatus, bool) {
	if current == a.from {
		return a.to, true
	}
	return current, false
}
