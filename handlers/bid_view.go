package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// bidSnapshot is the full recomputed view of one tender bid. Every derived
// figure in it is calculated fresh from the stored inputs on each request.
type bidSnapshot struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	ReferenceNumber string              `json:"reference_number"`
	TenderType      services.TenderType `json:"tender_type"`

	ApproximateCost     float64 `json:"approximate_cost"`
	OurBid              float64 `json:"our_bid"`
	ManualThreshold     float64 `json:"manual_threshold"`
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
	DurationMonths      float64 `json:"duration_months"`
	TotalMealCount      float64 `json:"total_meal_count"`

	Breakdown services.CostBreakdown `json:"cost_breakdown"`
	Totals    services.CostTotals    `json:"totals"`

	CompetingBids       []services.CompetingBid   `json:"competing_bids"`
	RegulatoryThreshold *services.ThresholdResult `json:"regulatory_threshold"`
	SimpleThreshold     float64                   `json:"simple_threshold"`
	ActiveThreshold     float64                   `json:"active_threshold"`

	Risk       services.RiskAssessment `json:"risk"`
	Guarantees services.Guarantees     `json:"guarantees"`
	Metrics    services.DerivedMetrics `json:"derived_metrics"`

	ScheduleLines []services.ScheduleLine `json:"schedule_lines"`
	ScheduleTotal float64                 `json:"schedule_total"`

	Completion services.CompletionReport `json:"completion"`
}

// loadBreakdown reads the stored cost breakdown JSON off a tender record. An
// empty or missing field yields a zero-value breakdown.
func loadBreakdown(record *core.Record) services.CostBreakdown {
	var b services.CostBreakdown
	raw := record.GetString("cost_breakdown")
	if raw == "" || raw == "null" {
		return b
	}
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		log.Printf("bid_view: unreadable cost breakdown on tender %s: %v", record.Id, err)
		return services.CostBreakdown{}
	}
	return b
}

// loadCompetingBids fetches the competitor bids for a tender, ordered.
func loadCompetingBids(app *pocketbase.PocketBase, tenderID string) ([]services.CompetingBid, error) {
	records, err := app.FindRecordsByFilter("competing_bids", "tender = {:tender}", "sort_order", 0, 0,
		map[string]any{"tender": tenderID})
	if err != nil {
		return nil, fmt.Errorf("could not query competing bids: %w", err)
	}
	bids := make([]services.CompetingBid, 0, len(records))
	for _, r := range records {
		bids = append(bids, services.CompetingBid{
			Firm:   r.GetString("firm"),
			Amount: r.GetFloat("amount"),
		})
	}
	return bids, nil
}

// loadScheduleLines fetches the unit price schedule for a tender, ordered.
func loadScheduleLines(app *pocketbase.PocketBase, tenderID string) ([]services.ScheduleLine, error) {
	records, err := app.FindRecordsByFilter("schedule_lines", "tender = {:tender}", "sort_order", 0, 0,
		map[string]any{"tender": tenderID})
	if err != nil {
		return nil, fmt.Errorf("could not query schedule lines: %w", err)
	}
	lines := make([]services.ScheduleLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, services.ScheduleLine{
			Sequence:  int(r.GetFloat("sort_order")),
			WorkItem:  r.GetString("work_item"),
			Unit:      r.GetString("unit"),
			Qty:       r.GetFloat("qty"),
			UnitPrice: r.GetFloat("unit_price"),
		})
	}
	return lines, nil
}

// buildBidSnapshot assembles the full derived view for a tender record.
func buildBidSnapshot(app *pocketbase.PocketBase, record *core.Record) (bidSnapshot, error) {
	breakdown := services.RecalcBreakdown(loadBreakdown(record))

	approxCost := record.GetFloat("approximate_cost")
	ourBid := record.GetFloat("our_bid")
	manualThreshold := record.GetFloat("manual_threshold")
	profitMargin := record.GetFloat("profit_margin_percent")
	durationMonths := record.GetFloat("duration_months")
	totalMeals := record.GetFloat("total_meal_count")
	tenderType := services.TenderType(record.GetString("tender_type"))

	bids, err := loadCompetingBids(app, record.Id)
	if err != nil {
		return bidSnapshot{}, err
	}
	lines, err := loadScheduleLines(app, record.Id)
	if err != nil {
		return bidSnapshot{}, err
	}

	regulatory := services.ComputeThreshold(bids, approxCost, tenderType, services.DefaultThresholdOptions())
	active := services.ActiveThreshold(manualThreshold, regulatory, approxCost)
	risk := services.AssessRisk(ourBid, active)

	detectedCount, appliedCount, err := countDetectedValues(app, record.Id)
	if err != nil {
		return bidSnapshot{}, err
	}

	completion := services.DeriveCompletion(services.CompletionInput{
		DetectedCount:   detectedCount,
		AppliedCount:    appliedCount,
		Amounts:         services.CategoryAmounts(breakdown),
		Touched:         services.TouchedCategories(breakdown),
		ApproximateCost: approxCost,
		OurBid:          ourBid,
		ActiveThreshold: active,
		AbnormallyLow:   risk.IsAbnormallyLow,
		ScheduleLines:   lines,
	})

	return bidSnapshot{
		ID:              record.Id,
		Title:           record.GetString("title"),
		ReferenceNumber: record.GetString("reference_number"),
		TenderType:      tenderType,

		ApproximateCost:     approxCost,
		OurBid:              ourBid,
		ManualThreshold:     manualThreshold,
		ProfitMarginPercent: profitMargin,
		DurationMonths:      durationMonths,
		TotalMealCount:      totalMeals,

		Breakdown: breakdown,
		Totals:    services.AggregateTotals(breakdown, profitMargin),

		CompetingBids:       bids,
		RegulatoryThreshold: regulatory,
		SimpleThreshold:     services.SimpleThreshold(approxCost),
		ActiveThreshold:     active,

		Risk:       risk,
		Guarantees: services.ComputeGuarantees(ourBid),
		Metrics:    services.ComputeDerivedMetrics(approxCost, ourBid, totalMeals, durationMonths),

		ScheduleLines: lines,
		ScheduleTotal: services.ScheduleTotal(lines),

		Completion: completion,
	}, nil
}

// countDetectedValues counts all detected values and the applied subset.
func countDetectedValues(app *pocketbase.PocketBase, tenderID string) (total, applied int, err error) {
	records, err := app.FindRecordsByFilter("detected_values", "tender = {:tender}", "", 0, 0,
		map[string]any{"tender": tenderID})
	if err != nil {
		return 0, 0, fmt.Errorf("could not query detected values: %w", err)
	}
	for _, r := range records {
		if r.GetBool("applied") {
			applied++
		}
	}
	return len(records), applied, nil
}

// HandleBidView returns a handler that serves the recomputed bid snapshot.
func HandleBidView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		record, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("bid_view: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		snapshot, err := buildBidSnapshot(app, record)
		if err != nil {
			log.Printf("bid_view: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, snapshot)
	}
}
