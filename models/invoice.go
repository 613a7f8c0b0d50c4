package models

import "time"

// InvoiceStatus is the billing lifecycle position.
// DRAFT -> ISSUED -> PAID, with CANCELLED reachable from DRAFT or ISSUED.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceIssued    InvoiceStatus = "ISSUED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is one formal bill for a dossier. Company and client identity are
// snapshotted at creation time so the document stays historically accurate
// even if the agency or the dossier record changes later. Invoices are never
// deleted; cancellation is a status.
//
// All monetary fields are whole GNF.
type Invoice struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoice_number" gorm:"not null;uniqueIndex"`

	ShipmentID uint     `json:"shipment_id" gorm:"index;not null"`
	Shipment   Shipment `json:"-" gorm:"foreignKey:ShipmentID"`

	// Agency snapshot
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyNIF     string `json:"company_nif"`

	// Client snapshot
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	TrackingNumber string `json:"tracking_number"`

	Lines []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	Subtotal           int64   `json:"subtotal" gorm:"not null"`
	TaxRate            float64 `json:"tax_rate" gorm:"not null;default:0"`
	TaxAmount          int64   `json:"tax_amount" gorm:"not null"`
	TotalAmount        int64   `json:"total_amount" gorm:"not null"`
	TotalProvisions    int64   `json:"total_provisions" gorm:"not null"`
	TotalDisbursements int64   `json:"total_disbursements" gorm:"not null"`
	Honoraires         int64   `json:"honoraires" gorm:"not null"`
	// AmountDue may be negative: the client overpaid (trop-perçu).
	AmountDue int64 `json:"amount_due" gorm:"not null"`

	Status      InvoiceStatus `json:"status" gorm:"type:VARCHAR(15);not null;default:'DRAFT';index"`
	IssuedAt    *time.Time    `json:"issued_at"`
	PaidAt      *time.Time    `json:"paid_at"`
	CancelledAt *time.Time    `json:"cancelled_at"`
	DueDate     *time.Time    `json:"due_date"`
	Notes       string        `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

// InvoiceLine is one row on an invoice, immutable once created.
// Category-grouped lines always carry quantity 1, so amount == unit_price.
type InvoiceLine struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	InvoiceID   uint            `json:"-" gorm:"index"`
	Position    int             `json:"position" gorm:"not null"`
	Description string          `json:"description" gorm:"not null"`
	Category    ExpenseCategory `json:"category" gorm:"type:VARCHAR(20);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   int64           `json:"unit_price" gorm:"not null"`
	Amount      int64           `json:"amount" gorm:"not null"`
}
