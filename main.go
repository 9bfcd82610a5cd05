package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/collections"
	"tenderprep/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed data and run migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyCompetingBids(app); err != nil {
			log.Printf("Warning: legacy competing bid migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Tender CRUD ──────────────────────────────────────────
		se.Router.GET("/api/tenderprep/tenders", handlers.HandleTenderList(app))
		se.Router.POST("/api/tenderprep/tenders", handlers.HandleTenderCreate(app))
		se.Router.DELETE("/api/tenderprep/tenders/{id}", handlers.HandleTenderDelete(app))

		// ── Bid snapshot and inputs ──────────────────────────────
		se.Router.GET("/api/tenderprep/tenders/{id}/bid", handlers.HandleBidView(app))
		se.Router.PUT("/api/tenderprep/tenders/{id}/bid", handlers.HandleBidSave(app))

		// ── Competitor bids and threshold ────────────────────────
		se.Router.PUT("/api/tenderprep/tenders/{id}/competing-bids", handlers.HandleCompetingBidsSave(app))
		se.Router.POST("/api/tenderprep/tenders/{id}/threshold", handlers.HandleThresholdCompute(app))

		// ── Unit price schedule ──────────────────────────────────
		se.Router.POST("/api/tenderprep/tenders/{id}/schedule", handlers.HandleScheduleCreate(app))
		se.Router.PUT("/api/tenderprep/tenders/{id}/schedule/{lineId}", handlers.HandleScheduleEdit(app))
		se.Router.DELETE("/api/tenderprep/tenders/{id}/schedule/{lineId}", handlers.HandleScheduleDelete(app))

		// ── Detected value suggestions ───────────────────────────
		se.Router.GET("/api/tenderprep/tenders/{id}/suggestions", handlers.HandleSuggestionsList(app))
		se.Router.POST("/api/tenderprep/tenders/{id}/suggestions", handlers.HandleSuggestionsIngest(app))
		se.Router.POST("/api/tenderprep/tenders/{id}/suggestions/apply", handlers.HandleSuggestionsApply(app))

		// ── Document exports ─────────────────────────────────────
		se.Router.GET("/api/tenderprep/tenders/{id}/export/excel", handlers.HandleBidExportExcel(app))
		se.Router.GET("/api/tenderprep/tenders/{id}/export/pdf", handlers.HandleBidExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
