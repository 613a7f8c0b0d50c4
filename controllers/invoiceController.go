package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transitaire-backend/billing"
	"transitaire-backend/database"
	"transitaire-backend/logger"
	"transitaire-backend/middlewares"
	"transitaire-backend/models"
	"transitaire-backend/pdf"
	"transitaire-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateInvoiceInput is the validated body of POST /invoice. Honoraires and
// tax_rate may come from OCR-assisted data entry upstream; they are treated
// as ordinary caller input.
type CreateInvoiceInput struct {
	ShipmentID uint       `json:"shipment_id" validate:"required"`
	Honoraires *int64     `json:"honoraires" validate:"omitempty,gte=0"`
	TaxRate    float64    `json:"tax_rate" validate:"gte=0,lte=1"`
	DueDate    *time.Time `json:"due_date"`
	Notes      string     `json:"notes"`
	AutoIssue  bool       `json:"auto_issue"`
}

// CreateInvoice derives an invoice from the dossier's recorded expenses:
// disbursements grouped by category become the lines, provisions reduce the
// amount due, honoraires are added per the 5%-with-floor policy unless
// overridden. With auto_issue the invoice is issued in the same transaction.
func CreateInvoice(c *fiber.Ctx) error {
	var input CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.Preload("Expenses").First(&shipment, input.ShipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}

	lines, lineTotals := billing.BuildLines(shipment.Expenses, input.Honoraires)
	totals := billing.ComputeTotals(lines, lineTotals, input.TaxRate)

	schema, _ := c.Locals("schema").(string)
	company, err := companyForSchema(schema)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load agency identity")
	}

	invoice := models.Invoice{
		ShipmentID:         shipment.ID,
		CompanyName:        company.CompanyName,
		CompanyAddress:     company.Address + ", " + company.City,
		CompanyNIF:         company.NIF,
		ClientName:         shipment.ClientName,
		ClientPhone:        shipment.ClientPhone,
		TrackingNumber:     shipment.TrackingNumber,
		Lines:              lines,
		Subtotal:           totals.Subtotal,
		TaxRate:            input.TaxRate,
		TaxAmount:          totals.TaxAmount,
		TotalAmount:        totals.TotalAmount,
		TotalProvisions:    lineTotals.TotalProvisions,
		TotalDisbursements: lineTotals.TotalDisbursements,
		Honoraires:         lineTotals.Honoraires,
		AmountDue:          totals.AmountDue,
		Status:             models.InvoiceDraft,
		DueDate:            input.DueDate,
		Notes:              input.Notes,
	}

	if err := createNumberedInvoice(tx, &invoice); err != nil {
		return err
	}

	if err := appendEvent(tx, shipment.ID, models.EventInvoiceCreated,
		fmt.Sprintf("Facture %s créée (brouillon)", invoice.InvoiceNumber)); err != nil {
		return err
	}

	if input.AutoIssue {
		if err := issueInTx(tx, &invoice, &shipment); err != nil {
			return err
		}
	}

	writeAudit(c, models.AuditInvoiceCreated, &invoice)
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// numberingRetries bounds the retry-on-conflict loop around the sequential
// numbering race (two concurrent creations computing the same next number).
const numberingRetries = 3

// createNumberedInvoice allocates the next FAC-<year>-NNNN number and
// persists the invoice with its lines. The unique index on invoice_number
// turns a concurrent double-allocation into gorm.ErrDuplicatedKey; we roll
// back to a savepoint (a plain retry would die on the aborted transaction)
// and re-read the latest number.
func createNumberedInvoice(tx *gorm.DB, invoice *models.Invoice) error {
	year := time.Now().Year()
	prefix := billing.NumberPrefix(year)

	for attempt := 0; attempt < numberingRetries; attempt++ {
		var latest string
		if err := tx.Model(&models.Invoice{}).
			Where("invoice_number LIKE ?", prefix+"%").
			Select("COALESCE(MAX(invoice_number), '')").
			Scan(&latest).Error; err != nil {
			return err
		}
		invoice.InvoiceNumber = billing.NextNumber(latest, year)

		if err := tx.SavePoint("invoice_number").Error; err != nil {
			return err
		}
		err := tx.Create(invoice).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if err := tx.RollbackTo("invoice_number").Error; err != nil {
			return err
		}
	}
	return fiber.NewError(fiber.StatusConflict, "invoice numbering contention, please retry")
}

// issueInTx applies the issue transition plus its shipment side effects
// inside the caller's transaction.
func issueInTx(tx *gorm.DB, invoice *models.Invoice, shipment *models.Shipment) error {
	if err := billing.Issue(invoice, time.Now()); err != nil {
		return err
	}
	if err := tx.Model(invoice).Updates(map[string]any{
		"status":    invoice.Status,
		"issued_at": invoice.IssuedAt,
	}).Error; err != nil {
		return err
	}

	if next, ok := billing.AdvanceOnIssue(shipment.Status); ok {
		if err := tx.Model(shipment).Update("status", next).Error; err != nil {
			return err
		}
		shipment.Status = next
		if err := appendEvent(tx, shipment.ID, models.EventStatusChanged,
			"Dossier facturé, statut avancé à INVOICED"); err != nil {
			return err
		}
	}
	return appendEvent(tx, shipment.ID, models.EventInvoiceIssued,
		fmt.Sprintf("Facture %s émise", invoice.InvoiceNumber))
}

// IssueInvoice moves a draft invoice to ISSUED.
func IssueInvoice(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var invoice models.Invoice
	if err := tx.Preload("Lines").First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}
	var shipment models.Shipment
	if err := tx.First(&shipment, invoice.ShipmentID).Error; err != nil {
		return err
	}

	if err := issueInTx(tx, &invoice, &shipment); err != nil {
		return err
	}

	writeAudit(c, models.AuditInvoiceIssued, &invoice)
	return c.JSON(invoice)
}

// PayInvoice settles an invoice. Paying the invoice of an INVOICED dossier
// closes the dossier.
func PayInvoice(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var invoice models.Invoice
	if err := tx.Preload("Lines").First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}

	if err := billing.Pay(&invoice, time.Now()); err != nil {
		return err
	}
	if err := tx.Model(&invoice).Updates(map[string]any{
		"status":  invoice.Status,
		"paid_at": invoice.PaidAt,
	}).Error; err != nil {
		return err
	}

	var shipment models.Shipment
	if err := tx.First(&shipment, invoice.ShipmentID).Error; err != nil {
		return err
	}
	if next, ok := billing.AdvanceOnPay(shipment.Status); ok {
		if err := tx.Model(&shipment).Update("status", next).Error; err != nil {
			return err
		}
		if err := appendEvent(tx, shipment.ID, models.EventStatusChanged,
			"Facture réglée, dossier clôturé"); err != nil {
			return err
		}
	}
	if err := appendEvent(tx, shipment.ID, models.EventInvoicePaid,
		fmt.Sprintf("Paiement reçu pour la facture %s", invoice.InvoiceNumber)); err != nil {
		return err
	}

	writeAudit(c, models.AuditInvoicePaid, &invoice)
	return c.JSON(invoice)
}

// CancelInvoice voids an unpaid invoice. Cancellation is a status, never a
// delete, and has no shipment side effect.
func CancelInvoice(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var invoice models.Invoice
	if err := tx.First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}

	if err := billing.Cancel(&invoice, time.Now()); err != nil {
		return err
	}
	if err := tx.Model(&invoice).Updates(map[string]any{
		"status":       invoice.Status,
		"cancelled_at": invoice.CancelledAt,
	}).Error; err != nil {
		return err
	}

	writeAudit(c, models.AuditInvoiceCancelled, &invoice)
	return c.JSON(invoice)
}

// GetInvoices lists invoices, optionally filtered by ?status=.
func GetInvoices(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	q := tx.Model(&models.Invoice{}).Preload("Lines").Order("created_at DESC").Limit(limit)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoices": invoices, "message": "success"})
}

func GetInvoice(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var invoice models.Invoice
	if err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}
	return c.JSON(invoice)
}

// DownloadInvoicePDF renders the finalized invoice through headless
// Chromium. Totals come straight from the stored invoice; nothing is
// recomputed at render time.
func DownloadInvoicePDF(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var invoice models.Invoice
	if err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&invoice, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}

	doc, err := pdf.NewRenderer().Render(c.Context(), invoice)
	if err != nil {
		logger.WithComponent("pdf").Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("render failed")
		return fiber.NewError(fiber.StatusServiceUnavailable, "PDF rendering unavailable")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, invoice.InvoiceNumber))
	return c.Send(doc)
}

// companyForSchema loads the agency identity from the public schema for the
// invoice snapshot fields.
func companyForSchema(schema string) (models.Company, error) {
	var company models.Company
	err := database.DB.Table("public.companies").Where("schema_name = ?", schema).First(&company).Error
	return company, err
}

// writeAudit appends the immutable audit entry for a lifecycle operation.
// Best-effort: it runs on its own short session so an audit failure never
// blocks the transition itself.
func writeAudit(c *fiber.Ctx, action string, invoice *models.Invoice) {
	schema, _ := c.Locals("schema").(string)
	userID, _ := c.Locals("userID").(string)

	sess, err := database.GetSchemaDB(schema)
	if err != nil {
		logger.WithComponent("audit").Warn().Err(err).Msg("audit session unavailable")
		return
	}

	snap, _ := json.Marshal(fiber.Map{
		"invoice_number":  invoice.InvoiceNumber,
		"status":          invoice.Status,
		"total_amount":    invoice.TotalAmount,
		"amount_due":      invoice.AmountDue,
		"honoraires":      invoice.Honoraires,
		"tracking_number": invoice.TrackingNumber,
	})
	entry := models.AuditLog{
		ActorID:  userID,
		Action:   action,
		Snapshot: datatypes.JSON(snap),
	}
	if err := sess.Create(&entry).Error; err != nil {
		logger.WithComponent("audit").Warn().Err(err).Str("action", action).Msg("audit write failed")
	}
}
