package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tenderprep/testhelpers"
)

func TestHandleTenderList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTenderList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/tenderprep/tenders", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Tenders []tenderListItem `json:"tenders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(body.Tenders) != 0 {
		t.Errorf("expected 0 tenders, got %d", len(body.Tenders))
	}
}

func TestHandleTenderList_ReturnsTenders(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	first := testhelpers.CreateTestTender(t, app, "Yemek Hizmeti A")
	testhelpers.CreateTestTender(t, app, "Yemek Hizmeti B")

	handler := HandleTenderList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/tenderprep/tenders", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body struct {
		Tenders []tenderListItem `json:"tenders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(body.Tenders) != 2 {
		t.Fatalf("expected 2 tenders, got %d", len(body.Tenders))
	}
	found := false
	for _, item := range body.Tenders {
		if item.ID == first.Id && item.Title == "Yemek Hizmeti A" {
			found = true
		}
	}
	if !found {
		t.Error("expected first tender in the list")
	}
}
