package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type scheduleLineRequest struct {
	WorkItem  string  `json:"work_item"`
	Unit      string  `json:"unit"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// HandleScheduleCreate returns a handler that appends a line to a tender's
// unit price schedule.
func HandleScheduleCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		if _, err := app.FindRecordById("tenders", tenderID); err != nil {
			log.Printf("schedule_create: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		var req scheduleLineRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("schedule_create: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		workItem := strings.TrimSpace(req.WorkItem)
		if workItem == "" {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string]string{"work_item": "Work item description is required"},
			})
		}
		unit := strings.TrimSpace(req.Unit)
		if unit == "" {
			unit = "Adet"
		}

		scheduleCol, err := app.FindCollectionByNameOrId("schedule_lines")
		if err != nil {
			log.Printf("schedule_create: could not find schedule_lines collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		existing, err := app.FindRecordsByFilter(scheduleCol, "tender = {:tender}", "-sort_order", 1, 0,
			map[string]any{"tender": tenderID})
		if err != nil {
			log.Printf("schedule_create: could not query schedule lines: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		nextOrder := 1
		if len(existing) > 0 {
			nextOrder = int(existing[0].GetFloat("sort_order")) + 1
		}

		record := core.NewRecord(scheduleCol)
		record.Set("tender", tenderID)
		record.Set("sort_order", nextOrder)
		record.Set("work_item", workItem)
		record.Set("unit", unit)
		record.Set("qty", req.Qty)
		record.Set("unit_price", req.UnitPrice)

		if err := app.Save(record); err != nil {
			log.Printf("schedule_create: could not save schedule line: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		lines, err := loadScheduleLines(app, tenderID)
		if err != nil {
			log.Printf("schedule_create: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":    record.Id,
			"lines": lines,
		})
	}
}
