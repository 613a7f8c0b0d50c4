package controllers

import (
	"errors"
	"fmt"

	"transitaire-backend/database"
	"transitaire-backend/middlewares"
	"transitaire-backend/models"
	"transitaire-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateShipmentInput struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	ClientName     string `json:"client_name" validate:"required"`
	ClientPhone    string `json:"client_phone"`
	ClientEmail    string `json:"client_email" validate:"omitempty,email"`
	Description    string `json:"description"`
	ContainerCount int    `json:"container_count" validate:"gte=0"`
	CustomsRegime  string `json:"customs_regime"`
	DeclarationNo  string `json:"declaration_no"`
}

// UpdateShipmentInput carries the patchable dossier fields; nil pointers are
// left untouched (see utils.UpdatesFromPtrDTO). Status moves through the
// dedicated status endpoint, never through a plain update.
type UpdateShipmentInput struct {
	ClientName     *string `json:"client_name"`
	ClientPhone    *string `json:"client_phone"`
	ClientEmail    *string `json:"client_email"`
	Description    *string `json:"description"`
	ContainerCount *int    `json:"container_count"`
	CustomsRegime  *string `json:"customs_regime"`
	DeclarationNo  *string `json:"declaration_no"`
}

func CreateShipment(c *fiber.Ctx) error {
	var input CreateShipmentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	shipment := models.Shipment{
		TrackingNumber: input.TrackingNumber,
		ClientName:     input.ClientName,
		ClientPhone:    input.ClientPhone,
		ClientEmail:    input.ClientEmail,
		Description:    input.Description,
		ContainerCount: input.ContainerCount,
		CustomsRegime:  input.CustomsRegime,
		DeclarationNo:  input.DeclarationNo,
		Status:         models.ShipmentOpen,
	}
	if err := tx.Create(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "tracking number already in use")
		}
		return err
	}

	if err := appendEvent(tx, shipment.ID, models.EventStatusChanged,
		fmt.Sprintf("Dossier %s ouvert", shipment.TrackingNumber)); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// GetShipments lists dossiers, optionally filtered by ?status=. Archived
// dossiers are excluded unless requested explicitly.
func GetShipments(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	q := tx.Model(&models.Shipment{}).Order("created_at DESC").Limit(limit)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status <> ?", models.ShipmentArchived)
	}

	var shipments []models.Shipment
	if err := q.Find(&shipments).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"shipments": shipments, "message": "success"})
}

func GetShipment(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.
		Preload("Expenses").
		Preload("Invoices").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&shipment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}
	return c.JSON(shipment)
}

func UpdateShipment(c *fiber.Ctx) error {
	var input UpdateShipmentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.First(&shipment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) == 0 {
		return c.JSON(shipment)
	}
	if err := tx.Model(&shipment).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(shipment)
}

type UpdateShipmentStatusInput struct {
	Status models.ShipmentStatus `json:"status" validate:"required"`
}

// UpdateShipmentStatus moves a dossier along the pipeline by hand (arrival,
// clearance, delivery...). INVOICED and CLOSED are reached through invoice
// operations only.
func UpdateShipmentStatus(c *fiber.Ctx) error {
	var input UpdateShipmentStatusInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if !models.ValidShipmentStatus(input.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown shipment status")
	}
	if input.Status == models.ShipmentInvoiced || input.Status == models.ShipmentClosed {
		return fiber.NewError(fiber.StatusBadRequest, "status is advanced by invoice operations")
	}

	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.First(&shipment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}

	previous := shipment.Status
	if err := tx.Model(&shipment).Update("status", input.Status).Error; err != nil {
		return err
	}
	if err := appendEvent(tx, shipment.ID, models.EventStatusChanged,
		fmt.Sprintf("Statut du dossier : %s → %s", previous, input.Status)); err != nil {
		return err
	}

	shipment.Status = input.Status
	return c.JSON(shipment)
}

// ArchiveShipment retires a dossier. Dossiers are never deleted.
func ArchiveShipment(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.First(&shipment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}

	if err := tx.Model(&shipment).Update("status", models.ShipmentArchived).Error; err != nil {
		return err
	}
	if err := appendEvent(tx, shipment.ID, models.EventStatusChanged, "Dossier archivé"); err != nil {
		return err
	}

	shipment.Status = models.ShipmentArchived
	return c.JSON(shipment)
}

// GetShipmentSummary aggregates the dossier's money position: provisions
// collected, disbursements advanced, amounts invoiced and the running
// balance.
func GetShipmentSummary(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var shipment models.Shipment
	if err := tx.First(&shipment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipment not found")
		}
		return err
	}

	var provisions, disbursements int64
	if err := tx.Model(&models.Expense{}).
		Where("shipment_id = ? AND type = ?", shipment.ID, models.ExpenseProvision).
		Select("COALESCE(SUM(amount), 0)").Scan(&provisions).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Expense{}).
		Where("shipment_id = ? AND type = ?", shipment.ID, models.ExpenseDisbursement).
		Select("COALESCE(SUM(amount), 0)").Scan(&disbursements).Error; err != nil {
		return err
	}

	var invoiced int64
	if err := tx.Model(&models.Invoice{}).
		Where("shipment_id = ? AND status <> ?", shipment.ID, models.InvoiceCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&invoiced).Error; err != nil {
		return err
	}

	balance := invoiced - provisions
	label := "reste à payer"
	if balance < 0 {
		label = "trop-perçu"
	}

	return c.JSON(fiber.Map{
		"tracking_number":     shipment.TrackingNumber,
		"status":              shipment.Status,
		"total_provisions":    provisions,
		"total_disbursements": disbursements,
		"total_invoiced":      invoiced,
		"balance":             balance,
		"balance_label":       label,
		"balance_display":     utils.FormatGNF(balance),
	})
}

// appendEvent writes one append-only timeline entry inside the caller's
// transaction.
func appendEvent(tx *gorm.DB, shipmentID uint, kind, message string) error {
	return tx.Create(&models.TimelineEvent{
		ShipmentID: shipmentID,
		Kind:       kind,
		Message:    message,
	}).Error
}
