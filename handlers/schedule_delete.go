package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// HandleScheduleDelete returns a handler that deletes a schedule line and
// resequences the remaining lines to a dense 1..N ordering.
func HandleScheduleDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")
		if tenderID == "" || lineID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender or line ID"})
		}

		record, err := app.FindRecordById("schedule_lines", lineID)
		if err != nil || record.GetString("tender") != tenderID {
			log.Printf("schedule_delete: could not find schedule line %s for tender %s: %v", lineID, tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Schedule line not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("schedule_delete: failed to delete schedule line %s: %v", lineID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		remaining, err := app.FindRecordsByFilter("schedule_lines", "tender = {:tender}", "sort_order", 0, 0,
			map[string]any{"tender": tenderID})
		if err != nil {
			log.Printf("schedule_delete: could not query remaining lines: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		lines := make([]services.ScheduleLine, len(remaining))
		for i, r := range remaining {
			lines[i] = services.ScheduleLine{
				Sequence:  int(r.GetFloat("sort_order")),
				WorkItem:  r.GetString("work_item"),
				Unit:      r.GetString("unit"),
				Qty:       r.GetFloat("qty"),
				UnitPrice: r.GetFloat("unit_price"),
			}
		}
		for i, l := range services.Resequence(lines) {
			if int(remaining[i].GetFloat("sort_order")) == l.Sequence {
				continue
			}
			remaining[i].Set("sort_order", l.Sequence)
			if err := app.Save(remaining[i]); err != nil {
				log.Printf("schedule_delete: could not resequence line %s: %v", remaining[i].Id, err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"lines": lines})
	}
}
