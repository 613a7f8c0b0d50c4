package models

import "time"

// ExpenseType splits money received from the client (provisions) from money
// paid out on the client's behalf (disbursements / débours).
type ExpenseType string

const (
	ExpenseProvision    ExpenseType = "PROVISION"
	ExpenseDisbursement ExpenseType = "DISBURSEMENT"
)

// ExpenseCategory is the closed set of cost types a disbursement can carry.
type ExpenseCategory string

const (
	CategoryDD            ExpenseCategory = "DD"            // droits de douane
	CategoryManutention   ExpenseCategory = "MANUTENTION"   // terminal handling
	CategoryTransport     ExpenseCategory = "TRANSPORT"
	CategoryMagasinage    ExpenseCategory = "MAGASINAGE"    // storage/demurrage
	CategoryDocumentation ExpenseCategory = "DOCUMENTATION"
	CategoryEscorte       ExpenseCategory = "ESCORTE"
	CategoryAutre         ExpenseCategory = "AUTRE"
	CategoryHonoraires    ExpenseCategory = "HONORAIRES"
)

// Label returns the French display label printed on invoices. Unknown codes
// fall back to the raw code so an invoice can always be rendered.
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryDD:
		return "Droits de douane"
	case CategoryManutention:
		return "Frais de manutention"
	case CategoryTransport:
		return "Transport"
	case CategoryMagasinage:
		return "Magasinage"
	case CategoryDocumentation:
		return "Frais de documentation"
	case CategoryEscorte:
		return "Escorte douanière"
	case CategoryAutre:
		return "Autres frais"
	case CategoryHonoraires:
		return "Honoraires de transit"
	}
	return string(c)
}

// ValidExpenseCategory reports whether c is a known category code.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryDD, CategoryManutention, CategoryTransport, CategoryMagasinage,
		CategoryDocumentation, CategoryEscorte, CategoryAutre, CategoryHonoraires:
		return true
	}
	return false
}

// Expense is one financial entry on a dossier. Amounts are whole Guinean
// Francs (GNF has no subunit). A paid expense is immutable and undeletable.
type Expense struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	ShipmentID uint            `json:"-" gorm:"index;not null"`
	Type       ExpenseType     `json:"type" gorm:"type:VARCHAR(15);not null"`
	Category   ExpenseCategory `json:"category" gorm:"type:VARCHAR(20);not null"`
	Label      string          `json:"label" gorm:"not null"`
	Amount     int64           `json:"amount" gorm:"not null"`
	Paid       bool            `json:"paid"`
	PaidAt     *time.Time      `json:"paid_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
