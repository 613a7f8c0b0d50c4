package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of who did what to the money. The
// snapshot is a JSONB copy of the fields that mattered at the time (invoice
// number, amounts, tracking number) so the entry stays readable after the
// live rows move on.
type AuditLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ActorID   string         `json:"actor_id" gorm:"size:128;index"`
	Action    string         `json:"action" gorm:"type:VARCHAR(40);not null"`
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

// Audit actions.
const (
	AuditInvoiceCreated   = "INVOICE_CREATED"
	AuditInvoiceIssued    = "INVOICE_ISSUED"
	AuditInvoicePaid      = "INVOICE_PAID"
	AuditInvoiceCancelled = "INVOICE_CANCELLED"
)
