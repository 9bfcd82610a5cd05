package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// bidSaveRequest carries the editable bid inputs. All fields are optional;
// only the fields present in the request are written.
type bidSaveRequest struct {
	ApproximateCost     *float64                `json:"approximate_cost"`
	OurBid              *float64                `json:"our_bid"`
	TenderType          *string                 `json:"tender_type"`
	ProfitMarginPercent *float64                `json:"profit_margin_percent"`
	DurationMonths      *float64                `json:"duration_months"`
	TotalMealCount      *float64                `json:"total_meal_count"`
	Breakdown           *services.CostBreakdown `json:"cost_breakdown"`
}

// HandleBidSave returns a handler that saves bid inputs on a tender. The
// response is the recomputed snapshot, so amounts the client sent in the
// breakdown are never echoed back unverified.
func HandleBidSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		record, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("bid_save: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		var req bidSaveRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("bid_save: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if req.TenderType != nil {
			t := services.TenderType(*req.TenderType)
			if _, ok := services.TenderTypeCoefficients[t]; !ok {
				return e.JSON(http.StatusUnprocessableEntity, map[string]any{
					"errors": map[string]string{"tender_type": "Unknown tender type"},
				})
			}
			record.Set("tender_type", *req.TenderType)
		}
		if req.ApproximateCost != nil {
			record.Set("approximate_cost", *req.ApproximateCost)
		}
		if req.OurBid != nil {
			record.Set("our_bid", *req.OurBid)
		}
		if req.ProfitMarginPercent != nil {
			record.Set("profit_margin_percent", *req.ProfitMarginPercent)
		}
		if req.DurationMonths != nil {
			record.Set("duration_months", *req.DurationMonths)
		}
		if req.TotalMealCount != nil {
			record.Set("total_meal_count", *req.TotalMealCount)
		}
		if req.Breakdown != nil {
			recalced := services.RecalcBreakdown(*req.Breakdown)
			breakdownJSON, err := json.Marshal(recalced)
			if err != nil {
				log.Printf("bid_save: could not marshal breakdown: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
			}
			record.Set("cost_breakdown", string(breakdownJSON))
		}

		if err := app.Save(record); err != nil {
			log.Printf("bid_save: could not save tender %s: %v", tenderID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		snapshot, err := buildBidSnapshot(app, record)
		if err != nil {
			log.Printf("bid_save: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, snapshot)
	}
}
