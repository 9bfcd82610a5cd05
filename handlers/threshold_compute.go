package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// HandleThresholdCompute returns a handler that runs the regulatory threshold
// formula over the stored competitor bids and persists the result as the
// tender's manual threshold, so later reads keep using it even if the bid
// list changes.
func HandleThresholdCompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		record, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("threshold_compute: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		bids, err := loadCompetingBids(app, tenderID)
		if err != nil {
			log.Printf("threshold_compute: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		approxCost := record.GetFloat("approximate_cost")
		tenderType := services.TenderType(record.GetString("tender_type"))

		result := services.ComputeThreshold(bids, approxCost, tenderType, services.DefaultThresholdOptions())
		if result == nil {
			return e.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": "Threshold requires an approximate cost and at least 3 competitor bids with amounts",
			})
		}

		record.Set("manual_threshold", result.Value)
		if err := app.Save(record); err != nil {
			log.Printf("threshold_compute: could not save tender %s: %v", tenderID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, result)
	}
}
