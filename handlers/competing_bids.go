package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

type competingBidsRequest struct {
	Bids []services.CompetingBid `json:"bids"`
}

// HandleCompetingBidsSave returns a handler that replaces the competitor bid
// list for a tender. Rows are rewritten wholesale; ordering follows the
// request order.
func HandleCompetingBidsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		if _, err := app.FindRecordById("tenders", tenderID); err != nil {
			log.Printf("competing_bids: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		var req competingBidsRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("competing_bids: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		bidsCol, err := app.FindCollectionByNameOrId("competing_bids")
		if err != nil {
			log.Printf("competing_bids: could not find competing_bids collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		existing, err := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "", 0, 0,
			map[string]any{"tender": tenderID})
		if err != nil {
			log.Printf("competing_bids: could not query existing bids: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		for _, r := range existing {
			if err := app.Delete(r); err != nil {
				log.Printf("competing_bids: could not delete bid %s: %v", r.Id, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
			}
		}

		for i, b := range req.Bids {
			r := core.NewRecord(bidsCol)
			r.Set("tender", tenderID)
			r.Set("sort_order", i+1)
			r.Set("firm", b.Firm)
			r.Set("amount", b.Amount)
			if err := app.Save(r); err != nil {
				log.Printf("competing_bids: could not save bid %d: %v", i+1, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"bids": req.Bids})
	}
}
