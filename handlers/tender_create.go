package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type tenderCreateRequest struct {
	Title           string `json:"title"`
	ReferenceNumber string `json:"reference_number"`
	TenderType      string `json:"tender_type"`
}

// HandleTenderCreate returns a handler that creates a new tender record.
func HandleTenderCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req tenderCreateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("tender_create: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		title := strings.TrimSpace(req.Title)
		refNumber := strings.TrimSpace(req.ReferenceNumber)
		tenderType := strings.TrimSpace(req.TenderType)
		if tenderType == "" {
			tenderType = "hizmet"
		}

		// Validate required fields
		errors := make(map[string]string)
		if title == "" {
			errors["title"] = "Tender title is required"
		}

		// Check for duplicate reference number
		if refNumber != "" {
			existing, _ := app.FindRecordsByFilter("tenders", "reference_number = {:ref}", "", 1, 0, map[string]any{"ref": refNumber})
			if len(existing) > 0 {
				errors["reference_number"] = "A tender with this reference number already exists"
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errors})
		}

		tendersCol, err := app.FindCollectionByNameOrId("tenders")
		if err != nil {
			log.Printf("tender_create: could not find tenders collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		record := core.NewRecord(tendersCol)
		record.Set("title", title)
		record.Set("reference_number", refNumber)
		record.Set("tender_type", tenderType)

		if err := app.Save(record); err != nil {
			log.Printf("tender_create: could not save tender: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusCreated, tenderListItem{
			ID:              record.Id,
			Title:           record.GetString("title"),
			ReferenceNumber: record.GetString("reference_number"),
			TenderType:      record.GetString("tender_type"),
			Created:         record.GetString("created"),
		})
	}
}
