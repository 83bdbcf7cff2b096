package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/collections"
	"brandquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateTenderPricingDefaults(app); err != nil {
			log.Printf("Warning: tender settings migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active project middleware globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		se.Router.GET("/options", handlers.HandleFormOptions(app))

		// ── Clients ──────────────────────────────────────────────
		se.Router.GET("/clients", handlers.HandleClientList(app))
		se.Router.POST("/clients", handlers.HandleClientCreate(app))
		se.Router.POST("/clients/{id}", handlers.HandleClientUpdate(app))

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))
		se.Router.POST("/projects/{id}", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/activate", handlers.HandleProjectSwitch(app))

		// ── Project expenses / budget ────────────────────────────
		se.Router.GET("/projects/{id}/expenses", handlers.HandleExpenseList(app))
		se.Router.POST("/projects/{id}/expenses", handlers.HandleExpenseCreate(app))
		se.Router.DELETE("/expenses/{id}", handlers.HandleExpenseDelete(app))

		// ── Product catalog & price calculator ───────────────────
		se.Router.GET("/products", handlers.HandleProductList(app))
		se.Router.POST("/products", handlers.HandleProductCreate(app))
		se.Router.POST("/products/preview", handlers.HandlePricePreview(app))

		// ── Supplier catalog ─────────────────────────────────────
		se.Router.GET("/suppliers", handlers.HandleSupplierList(app))
		se.Router.POST("/suppliers/import", handlers.HandleSupplierImport(app))
		se.Router.POST("/suppliers/{id}", handlers.HandleSupplierUpdate(app))
		se.Router.DELETE("/suppliers/{id}", handlers.HandleSupplierDelete(app))
		se.Router.GET("/suppliers/export", handlers.HandleCatalogExport(app))

		// ── Tenders ──────────────────────────────────────────────
		se.Router.POST("/tenders", handlers.HandleTenderCreate(app))
		se.Router.POST("/tenders/{id}/upload", handlers.HandleTenderUpload(app))
		se.Router.GET("/tenders/{id}", handlers.HandleTenderView(app))
		se.Router.POST("/tenders/{id}/settings", handlers.HandleTenderSettings(app))
		se.Router.POST("/tenders/items/{itemId}/choose", handlers.HandleTenderChooseOption(app))
		se.Router.POST("/tenders/items/{itemId}/cost", handlers.HandleTenderCostOverride(app))
		se.Router.GET("/tenders/{id}/export", handlers.HandleTenderExportCSV(app))

		// ── Quotes ───────────────────────────────────────────────
		se.Router.POST("/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.GET("/quotes/{id}/pdf", handlers.HandleQuotePDF(app))
		se.Router.POST("/quotes/{id}/email", handlers.HandleQuoteEmail(app))

		// ── Invoices ─────────────────────────────────────────────
		se.Router.POST("/invoices", handlers.HandleInvoiceCreate(app))
		se.Router.GET("/invoices/{id}", handlers.HandleInvoiceView(app))
		se.Router.GET("/invoices/{id}/pdf", handlers.HandleInvoicePDF(app))
		se.Router.POST("/invoices/{id}/paid", handlers.HandleInvoiceMarkPaid(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
