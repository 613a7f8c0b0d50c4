package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetTenantDB returns a *gorm.DB bound to the request's agency schema.
// It prefers the per-request transaction opened by middlewares.TenantTx, so
// every write a handler performs lands in the same atomic transaction.
func GetTenantDB(c *fiber.Ctx) (*gorm.DB, error) {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx, nil
		}
	}

	schema, _ := c.Locals("schema").(string)
	return GetSchemaDB(schema)
}

// GetSchemaDB returns a dedicated session with search_path pinned to the
// given agency schema. Used outside request transactions (migrations,
// best-effort audit writes).
func GetSchemaDB(schema string) (*gorm.DB, error) {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return nil, errors.New("tenant schema missing")
	}
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	sess := DB.Session(&gorm.Session{NewDB: true})
	if err := sess.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
		return nil, fmt.Errorf("set search_path failed: %w", err)
	}
	return sess, nil
}
