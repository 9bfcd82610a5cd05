package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleTenderDelete returns a handler that deletes a tender and all its
// child rows (via cascade).
func HandleTenderDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		record, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("tender_delete: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		// Cascade delete handles competing_bids, schedule_lines, detected_values
		if err := app.Delete(record); err != nil {
			log.Printf("tender_delete: failed to delete tender %s: %v", tenderID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
