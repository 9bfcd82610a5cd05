package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// tenderListItem is the summary row returned by the tender list endpoint.
type tenderListItem struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	ReferenceNumber string  `json:"reference_number"`
	TenderType      string  `json:"tender_type"`
	ApproximateCost float64 `json:"approximate_cost"`
	OurBid          float64 `json:"our_bid"`
	Created         string  `json:"created"`
}

// HandleTenderList returns a handler that lists all tenders, newest first.
func HandleTenderList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tendersCol, err := app.FindCollectionByNameOrId("tenders")
		if err != nil {
			log.Printf("tender_list: could not find tenders collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		records, err := app.FindRecordsByFilter(tendersCol, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("tender_list: could not query tenders: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		items := make([]tenderListItem, 0, len(records))
		for _, r := range records {
			items = append(items, tenderListItem{
				ID:              r.Id,
				Title:           r.GetString("title"),
				ReferenceNumber: r.GetString("reference_number"),
				TenderType:      r.GetString("tender_type"),
				ApproximateCost: r.GetFloat("approximate_cost"),
				OurBid:          r.GetFloat("our_bid"),
				Created:         r.GetString("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"tenders": items})
	}
}
