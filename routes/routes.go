package routes

import (
	"github.com/gofiber/fiber/v2"

	"transitaire-backend/controllers"
	"transitaire-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Shipments (dossiers)
	protected.Post("/shipment", controllers.CreateShipment)
	protected.Get("/shipments", controllers.GetShipments)
	protected.Get("/shipment/:id", controllers.GetShipment)
	protected.Put("/shipment/:id", controllers.UpdateShipment)
	protected.Put("/shipment/:id/status", controllers.UpdateShipmentStatus)
	protected.Put("/shipment/:id/archive", controllers.ArchiveShipment)
	protected.Get("/shipment/:id/summary", controllers.GetShipmentSummary)

	// Money endpoints require the finance (or admin) role
	finance := protected.Group("", middlewares.RequireFinance())

	// Expenses (provisions & débours)
	finance.Post("/shipment/:id/expense", controllers.CreateExpense)
	protected.Get("/shipment/:id/expenses", controllers.GetExpenses)
	finance.Put("/expense/:id/pay", controllers.PayExpense)
	finance.Delete("/expense/:id", controllers.DeleteExpense)

	// Invoices (lifecycle + rendering)
	finance.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	finance.Put("/invoice/:id/issue", controllers.IssueInvoice)
	finance.Put("/invoice/:id/pay", controllers.PayInvoice)
	finance.Put("/invoice/:id/cancel", controllers.CancelInvoice)
	protected.Get("/invoice/:id/pdf", controllers.DownloadInvoicePDF)
}
