package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// suggestionItem is one detected value as exposed over the API.
type suggestionItem struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Label    string `json:"label"`
	Value    any    `json:"value"`
	Type     string `json:"value_type"`
	Source   string `json:"source"`
	Selected bool   `json:"selected"`
	Applied  bool   `json:"applied"`
}

// decodeStoredValue turns the stored JSON value back into its loose form.
func decodeStoredValue(raw string) any {
	if raw == "" || raw == "null" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// HandleSuggestionsList returns a handler that lists the detected values for
// a tender.
func HandleSuggestionsList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		if _, err := app.FindRecordById("tenders", tenderID); err != nil {
			log.Printf("suggestions_list: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		records, err := app.FindRecordsByFilter("detected_values", "tender = {:tender}", "created", 0, 0,
			map[string]any{"tender": tenderID})
		if err != nil {
			log.Printf("suggestions_list: could not query detected values: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		items := make([]suggestionItem, 0, len(records))
		for _, r := range records {
			items = append(items, suggestionItem{
				ID:       r.Id,
				Key:      r.GetString("key"),
				Label:    r.GetString("label"),
				Value:    decodeStoredValue(r.GetString("value")),
				Type:     r.GetString("value_type"),
				Source:   r.GetString("source"),
				Selected: r.GetBool("selected"),
				Applied:  r.GetBool("applied"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"suggestions": items})
	}
}

type suggestionsIngestRequest struct {
	Values []struct {
		Key      string `json:"key"`
		Label    string `json:"label"`
		Value    any    `json:"value"`
		Type     string `json:"value_type"`
		Source   string `json:"source"`
		Selected bool   `json:"selected"`
	} `json:"values"`
}

// HandleSuggestionsIngest returns a handler that stores detected values
// produced by the document-analysis collaborator. A value re-ingested under
// an existing key replaces the earlier row instead of duplicating it.
func HandleSuggestionsIngest(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		if _, err := app.FindRecordById("tenders", tenderID); err != nil {
			log.Printf("suggestions_ingest: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		var req suggestionsIngestRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("suggestions_ingest: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		detectedCol, err := app.FindCollectionByNameOrId("detected_values")
		if err != nil {
			log.Printf("suggestions_ingest: could not find detected_values collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		ingested := 0
		for _, v := range req.Values {
			key := strings.TrimSpace(v.Key)
			if key == "" {
				continue
			}
			valueType := v.Type
			if valueType == "" {
				valueType = services.ValueTypeText
			}
			source := v.Source
			if source == "" {
				source = services.SourceAnalysis
			}

			valueJSON, err := json.Marshal(v.Value)
			if err != nil {
				log.Printf("suggestions_ingest: could not marshal value %q: %v", key, err)
				continue
			}

			record, _ := findDetectedByKey(app, detectedCol, tenderID, key)
			if record == nil {
				record = core.NewRecord(detectedCol)
				record.Set("tender", tenderID)
				record.Set("key", key)
			}
			record.Set("label", v.Label)
			record.Set("value", string(valueJSON))
			record.Set("value_type", valueType)
			record.Set("source", source)
			record.Set("selected", v.Selected)
			record.Set("applied", false)

			if err := app.Save(record); err != nil {
				log.Printf("suggestions_ingest: could not save detected value %q: %v", key, err)
				continue
			}
			ingested++
		}

		return e.JSON(http.StatusOK, map[string]any{"ingested": ingested})
	}
}

func findDetectedByKey(app *pocketbase.PocketBase, col *core.Collection, tenderID, key string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(col, "tender = {:tender} && key = {:key}", "", 1, 0,
		map[string]any{"tender": tenderID, "key": key})
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

type suggestionsApplyRequest struct {
	Keys []string `json:"keys"`
}

// HandleSuggestionsApply returns a handler that merges the selected detected
// values into the tender's bid inputs. When the request names specific keys,
// only those are considered; otherwise every selected value is applied.
func HandleSuggestionsApply(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		tender, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("suggestions_apply: could not find tender %s: %v", tenderID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		var req suggestionsApplyRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("suggestions_apply: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		requested := make(map[string]bool, len(req.Keys))
		for _, k := range req.Keys {
			requested[k] = true
		}

		records, err := app.FindRecordsByFilter("detected_values", "tender = {:tender}", "created", 0, 0,
			map[string]any{"tender": tenderID})
		if err != nil {
			log.Printf("suggestions_apply: could not query detected values: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		var values []services.DetectedValue
		var matched []*core.Record
		for _, r := range records {
			if len(requested) > 0 && !requested[r.GetString("key")] {
				continue
			}
			values = append(values, services.DetectedValue{
				Key:      r.GetString("key"),
				Label:    r.GetString("label"),
				Value:    decodeStoredValue(r.GetString("value")),
				Type:     r.GetString("value_type"),
				Source:   r.GetString("source"),
				Selected: r.GetBool("selected"),
			})
			matched = append(matched, r)
		}

		state := services.BidState{
			ApproximateCost: tender.GetFloat("approximate_cost"),
			OurBid:          tender.GetFloat("our_bid"),
			ManualThreshold: tender.GetFloat("manual_threshold"),
			DurationMonths:  tender.GetFloat("duration_months"),
			TotalMealCount:  tender.GetFloat("total_meal_count"),
		}

		// Apply one value at a time so only the rows that actually merged
		// (selected, mapped key, numeric type) get flagged as applied.
		applied := 0
		for i, v := range values {
			if services.ApplyDetectedValues(&state, []services.DetectedValue{v}) == 0 {
				continue
			}
			applied++
			matched[i].Set("applied", true)
			if err := app.Save(matched[i]); err != nil {
				log.Printf("suggestions_apply: could not flag value %q as applied: %v", v.Key, err)
			}
		}

		tender.Set("approximate_cost", state.ApproximateCost)
		tender.Set("our_bid", state.OurBid)
		tender.Set("manual_threshold", state.ManualThreshold)
		tender.Set("duration_months", state.DurationMonths)
		tender.Set("total_meal_count", state.TotalMealCount)
		if err := app.Save(tender); err != nil {
			log.Printf("suggestions_apply: could not save tender %s: %v", tenderID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		snapshot, err := buildBidSnapshot(app, tender)
		if err != nil {
			log.Printf("suggestions_apply: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"applied":  applied,
			"snapshot": snapshot,
		})
	}
}
