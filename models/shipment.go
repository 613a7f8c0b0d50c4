package models

import "time"

// ShipmentStatus is the dossier pipeline position, from intake to closure.
type ShipmentStatus string

const (
	ShipmentOpen      ShipmentStatus = "OPEN"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentArrived   ShipmentStatus = "ARRIVED"
	ShipmentClearing  ShipmentStatus = "CLEARING"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentInvoiced  ShipmentStatus = "INVOICED"
	ShipmentClosed    ShipmentStatus = "CLOSED"
	ShipmentArchived  ShipmentStatus = "ARCHIVED"
)

// ValidShipmentStatus reports whether s is a known pipeline status.
func ValidShipmentStatus(s ShipmentStatus) bool {
	switch s {
	case ShipmentOpen, ShipmentInTransit, ShipmentArrived, ShipmentClearing,
		ShipmentDelivered, ShipmentInvoiced, ShipmentClosed, ShipmentArchived:
		return true
	}
	return false
}

// Shipment is a customs dossier tracked end-to-end. Dossiers are never
// deleted; closing the books on one means archiving it.
type Shipment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	TrackingNumber string         `json:"tracking_number" gorm:"not null;uniqueIndex"`
	ClientName     string         `json:"client_name" gorm:"not null"`
	ClientPhone    string         `json:"client_phone"`
	ClientEmail    string         `json:"client_email"`
	Description    string         `json:"description"`
	ContainerCount int            `json:"container_count"`
	CustomsRegime  string         `json:"customs_regime"`
	DeclarationNo  string         `json:"declaration_no"`
	Status         ShipmentStatus `json:"status" gorm:"type:VARCHAR(20);not null;default:'OPEN';index"`

	Expenses []Expense       `json:"expenses,omitempty" gorm:"foreignKey:ShipmentID"`
	Invoices []Invoice       `json:"invoices,omitempty" gorm:"foreignKey:ShipmentID"`
	Timeline []TimelineEvent `json:"timeline,omitempty" gorm:"foreignKey:ShipmentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimelineEvent is one append-only narrative entry on a dossier.
// Rows are written as side effects of expense/invoice/status operations
// and are never updated or deleted.
type TimelineEvent struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShipmentID uint      `json:"-" gorm:"index;not null"`
	Kind       string    `json:"kind" gorm:"type:VARCHAR(30);not null"`
	Message    string    `json:"message" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Timeline event kinds.
const (
	EventStatusChanged   = "STATUS_CHANGED"
	EventExpenseRecorded = "EXPENSE_RECORDED"
	EventExpensePaid     = "EXPENSE_PAID"
	EventInvoiceCreated  = "INVOICE_CREATED"
	EventInvoiceIssued   = "INVOICE_ISSUED"
	EventInvoicePaid     = "INVOICE_PAID"
	EventInvoiceCanceled = "INVOICE_CANCELLED"
)
