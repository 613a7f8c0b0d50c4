package controllers

import (
	"errors"
	"fmt"
	"time"

	"transitaire-backend/database"
	"transitaire-backend/middlewares"
	"transitaire-backend/models"
	"transitaire-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateExpenseInput struct {
	Type     models.ExpenseType     `json:"type" validate:"required,oneof=PROVISION DISBURSEMENT"`
	Category models.ExpenseCategory `json:"category" validate:"required"`
	Label    string                 `json:"label" validate:"required"`
	Amount   int64                  `json:"amount" validate:"gte=0"`
}

// CreateExpense records a provision or disbursement on a dossier. Amounts
// are whole GNF and validated non-negative before anything is persisted.
func CreateExpense(c *fiber.Ctx) error {
	var input CreateExpenseInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if !models.ValidExpenseCategory(input.Category) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown expense category")
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

	expense := models.Expense{
		ShipmentID: shipment.ID,
		Type:       input.Type,
		Category:   input.Category,
		Label:      input.Label,
		Amount:     input.Amount,
	}
	if err := tx.Create(&expense).Error; err != nil {
		return err
	}

	verb := "Débours"
	if expense.Type == models.ExpenseProvision {
		verb = "Provision"
	}
	if err := appendEvent(tx, shipment.ID, models.EventExpenseRecorded,
		fmt.Sprintf("%s enregistré : %s, %s", verb, expense.Label, utils.FormatGNF(expense.Amount))); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(expense)
}

func GetExpenses(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var expenses []models.Expense
	if err := tx.Where("shipment_id = ?", c.Params("id")).
		Order("created_at ASC").Find(&expenses).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"expenses": expenses, "message": "success"})
}

// PayExpense marks an expense as paid. A paid expense is frozen: it can no
// longer be modified or deleted.
func PayExpense(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var expense models.Expense
	if err := tx.First(&expense, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return err
	}
	if expense.Paid {
		return fiber.NewError(fiber.StatusConflict, "expense already paid")
	}

	now := time.Now()
	if err := tx.Model(&expense).Updates(map[string]any{
		"paid":    true,
		"paid_at": &now,
	}).Error; err != nil {
		return err
	}

	if err := appendEvent(tx, expense.ShipmentID, models.EventExpensePaid,
		fmt.Sprintf("Règlement : %s, %s", expense.Label, utils.FormatGNF(expense.Amount))); err != nil {
		return err
	}

	expense.Paid = true
	expense.PaidAt = &now
	return c.JSON(expense)
}

// DeleteExpense removes an unpaid entry. Paid expenses are part of the money
// trail and cannot be deleted.
func DeleteExpense(c *fiber.Ctx) error {
	tx, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve tenant")
	}

	var expense models.Expense
	if err := tx.First(&expense, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return err
	}
	if expense.Paid {
		return fiber.NewError(fiber.StatusConflict, "cannot delete a paid expense")
	}

	if err := tx.Delete(&expense).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
