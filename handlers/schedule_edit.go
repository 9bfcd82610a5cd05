package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleScheduleEdit returns a handler that updates one schedule line.
func HandleScheduleEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")
		if tenderID == "" || lineID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender or line ID"})
		}

		record, err := app.FindRecordById("schedule_lines", lineID)
		if err != nil || record.GetString("tender") != tenderID {
			log.Printf("schedule_edit: could not find schedule line %s for tender %s: %v", lineID, tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Schedule line not found"})
		}

		var req scheduleLineRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("schedule_edit: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		workItem := strings.TrimSpace(req.WorkItem)
		if workItem == "" {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string]string{"work_item": "Work item description is required"},
			})
		}

		record.Set("work_item", workItem)
		if unit := strings.TrimSpace(req.Unit); unit != "" {
			record.Set("unit", unit)
		}
		record.Set("qty", req.Qty)
		record.Set("unit_price", req.UnitPrice)

		if err := app.Save(record); err != nil {
			log.Printf("schedule_edit: could not save schedule line %s: %v", lineID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		lines, err := loadScheduleLines(app, tenderID)
		if err != nil {
			log.Printf("schedule_edit: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]any{"lines": lines})
	}
}
