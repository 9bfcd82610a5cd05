// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestTender creates a tender record with the given title and returns it.
func CreateTestTender(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tenders")
	if err != nil {
		t.Fatalf("failed to find tenders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("tender_type", "hizmet")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tender: %v", err)
	}

	return record
}

// CreateTestCompetingBid creates a competing bid row linked to a tender.
func CreateTestCompetingBid(t *testing.T, app *pocketbase.PocketBase, tenderID string, sortOrder int, firm string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("competing_bids")
	if err != nil {
		t.Fatalf("failed to find competing_bids collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("tender", tenderID)
	record.Set("sort_order", sortOrder)
	record.Set("firm", firm)
	record.Set("amount", amount)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test competing bid: %v", err)
	}

	return record
}

// CreateTestScheduleLine creates a unit price schedule line linked to a tender.
func CreateTestScheduleLine(t *testing.T, app *pocketbase.PocketBase, tenderID string, sortOrder int, workItem string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("schedule_lines")
	if err != nil {
		t.Fatalf("failed to find schedule_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("tender", tenderID)
	record.Set("sort_order", sortOrder)
	record.Set("work_item", workItem)
	record.Set("unit", "Öğün")
	record.Set("qty", qty)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test schedule line: %v", err)
	}

	return record
}

// CreateTestDetectedValue creates a detected value row linked to a tender.
// The value is marshalled into the record's JSON field.
func CreateTestDetectedValue(t *testing.T, app *pocketbase.PocketBase, tenderID, key string, value any, valueType string, selected bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("detected_values")
	if err != nil {
		t.Fatalf("failed to find detected_values collection: %v", err)
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("failed to marshal detected value: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("tender", tenderID)
	record.Set("key", key)
	record.Set("label", key)
	record.Set("value", string(valueJSON))
	record.Set("value_type", valueType)
	record.Set("source", "document")
	record.Set("selected", selected)
	record.Set("applied", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test detected value: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
