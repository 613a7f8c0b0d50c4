package database

import (
	"fmt"

	"transitaire-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single
// agency schema. It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Unique index on invoices.invoice_number (backs the numbering retry loop)
// - Non-negative CHECK constraints on money columns
// - Lookup indexes on expenses, timeline events and invoices
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Shipment{},
			&models.Expense{},
			&models.Invoice{},
			&models.InvoiceLine{},
			&models.TimelineEvent{},
			&models.AuditLog{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Indexes (idempotent) ---
		// The unique index on invoice_number is what turns the numbering race
		// into a retryable duplicate-key error instead of a silent double.
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_invoice_number ON invoices (invoice_number)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_shipments_tracking_number ON shipments (tracking_number)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_shipment ON expenses (shipment_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_timeline_events_shipment_created ON timeline_events (shipment_id, created_at)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Expense amounts are non-negative whole GNF
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'expenses'::regclass
					  AND conname  = 'chk_expenses_amount_nonneg'
				) THEN
					ALTER TABLE expenses
					ADD CONSTRAINT chk_expenses_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			// Invoice line amounts are non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_lines'::regclass
					  AND conname  = 'chk_invoice_lines_amount_nonneg'
				) THEN
					ALTER TABLE invoice_lines
					ADD CONSTRAINT chk_invoice_lines_amount_nonneg
					CHECK (amount >= 0 AND unit_price >= 0);
				END IF;
			END $$;`,
			// Invoice totals: subtotal and tax never negative (amount_due may be)
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_subtotal_nonneg'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_subtotal_nonneg
					CHECK (subtotal >= 0 AND tax_amount >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
