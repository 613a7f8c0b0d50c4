package billing

import (
	"testing"
	"time"

	"transitaire-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestIssue(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceDraft}

	require.NoError(t, Issue(inv, now))
	assert.Equal(t, models.InvoiceIssued, inv.Status)
	require.NotNil(t, inv.IssuedAt)
	assert.Equal(t, now, *inv.IssuedAt)

	// Issuing twice is illegal.
	err := Issue(inv, now)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestIssue_RejectsNonDraft(t *testing.T) {
	for _, status := range []models.InvoiceStatus{models.InvoiceIssued, models.InvoicePaid, models.InvoiceCancelled} {
		inv := &models.Invoice{Status: status}
		err := Issue(inv, now)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, status, inv.Status, "status must not move on rejection")
	}
}

func TestPay(t *testing.T) {
	for _, status := range []models.InvoiceStatus{models.InvoiceDraft, models.InvoiceIssued} {
		inv := &models.Invoice{Status: status}
		require.NoError(t, Pay(inv, now))
		assert.Equal(t, models.InvoicePaid, inv.Status)
		require.NotNil(t, inv.PaidAt)
	}
}

func TestPay_RejectsPaidAndCancelled(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoicePaid}
	err := Pay(inv, now)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "already paid")

	inv = &models.Invoice{Status: models.InvoiceCancelled}
	err = Pay(inv, now)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "cancelled invoice")
	assert.Nil(t, inv.PaidAt)
}

func TestCancel(t *testing.T) {
	for _, status := range []models.InvoiceStatus{models.InvoiceDraft, models.InvoiceIssued} {
		inv := &models.Invoice{Status: status}
		require.NoError(t, Cancel(inv, now))
		assert.Equal(t, models.InvoiceCancelled, inv.Status)
		require.NotNil(t, inv.CancelledAt)
	}
}

func TestCancel_RejectsPaid(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoicePaid}
	err := Cancel(inv, now)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "cannot cancel a paid invoice")
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestAdvanceOnIssue(t *testing.T) {
	next, ok := AdvanceOnIssue(models.ShipmentDelivered)
	require.True(t, ok)
	assert.Equal(t, models.ShipmentInvoiced, next)

	// Any other dossier status stays put, ARRIVED included.
	for _, status := range []models.ShipmentStatus{
		models.ShipmentOpen, models.ShipmentInTransit, models.ShipmentArrived,
		models.ShipmentClearing, models.ShipmentInvoiced, models.ShipmentClosed,
	} {
		next, ok := AdvanceOnIssue(status)
		assert.False(t, ok)
		assert.Equal(t, status, next)
	}
}

func TestAdvanceOnPay(t *testing.T) {
	next, ok := AdvanceOnPay(models.ShipmentInvoiced)
	require.True(t, ok)
	assert.Equal(t, models.ShipmentClosed, next)

	for _, status := range []models.ShipmentStatus{
		models.ShipmentOpen, models.ShipmentArrived, models.ShipmentDelivered, models.ShipmentClosed,
	} {
		next, ok := AdvanceOnPay(status)
		assert.False(t, ok)
		assert.Equal(t, status, next)
	}
}
