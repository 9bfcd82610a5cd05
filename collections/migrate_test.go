package collections_test

import (
	"testing"

	"tenderprep/collections"
	"tenderprep/testhelpers"
)

func TestMigrateLegacyCompetingBids_NewFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tender := testhelpers.CreateTestTender(t, app, "Legacy Tender")
	tender.Set("legacy_calculation", `{
		"rakipTeklifler": [
			{"firma_adi": "Anadolu Catering", "teklif_tutari": 4100000},
			{"firma_adi": "Marmara Yemek", "teklif_tutari": 4350000}
		]
	}`)
	if err := app.Save(tender); err != nil {
		t.Fatalf("save tender error: %v", err)
	}

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("MigrateLegacyCompetingBids() error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, err := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "sort_order", 0, 0,
		map[string]any{"tender": tender.Id})
	if err != nil {
		t.Fatalf("query bids error: %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("expected 2 migrated bids, got %d", len(bids))
	}
	if bids[0].GetString("firm") != "Anadolu Catering" {
		t.Errorf("first bid firm = %q", bids[0].GetString("firm"))
	}
	if got := bids[0].GetFloat("amount"); got != 4100000 {
		t.Errorf("first bid amount = %v, want 4100000", got)
	}
	if got := bids[1].GetFloat("sort_order"); got != 2 {
		t.Errorf("second bid sort_order = %v, want 2", got)
	}
}

func TestMigrateLegacyCompetingBids_OldFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tender := testhelpers.CreateTestTender(t, app, "Older Legacy Tender")
	tender.Set("legacy_calculation", `{
		"teklifListesi": [
			{"firma": "Ege Gıda", "tutar": 3900000},
			{"firma": "Karadeniz Yemekçilik", "tutar": 4050000},
			{"firma": "İç Anadolu Tabldot", "tutar": 4200000}
		]
	}`)
	if err := app.Save(tender); err != nil {
		t.Fatalf("save tender error: %v", err)
	}

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("MigrateLegacyCompetingBids() error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, err := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "sort_order", 0, 0,
		map[string]any{"tender": tender.Id})
	if err != nil {
		t.Fatalf("query bids error: %v", err)
	}
	if len(bids) != 3 {
		t.Fatalf("expected 3 migrated bids, got %d", len(bids))
	}
	if bids[0].GetString("firm") != "Ege Gıda" {
		t.Errorf("first bid firm = %q", bids[0].GetString("firm"))
	}
	if got := bids[2].GetFloat("amount"); got != 4200000 {
		t.Errorf("third bid amount = %v, want 4200000", got)
	}
}

func TestMigrateLegacyCompetingBids_NewFormatWins(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tender := testhelpers.CreateTestTender(t, app, "Both Formats")
	tender.Set("legacy_calculation", `{
		"rakipTeklifler": [{"firma_adi": "Yeni Firma", "teklif_tutari": 5000000}],
		"teklifListesi": [{"firma": "Eski Firma", "tutar": 1}]
	}`)
	if err := app.Save(tender); err != nil {
		t.Fatalf("save tender error: %v", err)
	}

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("MigrateLegacyCompetingBids() error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, _ := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "", 0, 0,
		map[string]any{"tender": tender.Id})
	if len(bids) != 1 {
		t.Fatalf("expected 1 bid from the newer format, got %d", len(bids))
	}
	if bids[0].GetString("firm") != "Yeni Firma" {
		t.Errorf("bid firm = %q, want %q", bids[0].GetString("firm"), "Yeni Firma")
	}
}

func TestMigrateLegacyCompetingBids_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tender := testhelpers.CreateTestTender(t, app, "Run Twice")
	tender.Set("legacy_calculation", `{"rakipTeklifler": [{"firma_adi": "Firma 1", "teklif_tutari": 100}]}`)
	if err := app.Save(tender); err != nil {
		t.Fatalf("save tender error: %v", err)
	}

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("second run error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, _ := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "", 0, 0,
		map[string]any{"tender": tender.Id})
	if len(bids) != 1 {
		t.Errorf("expected 1 bid after double migration, got %d", len(bids))
	}
}

func TestMigrateLegacyCompetingBids_SkipsTendersWithBids(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tender := testhelpers.CreateTestTender(t, app, "Hand Entered")
	testhelpers.CreateTestCompetingBid(t, app, tender.Id, 1, "Manuel Firma", 999)
	tender.Set("legacy_calculation", `{"rakipTeklifler": [{"firma_adi": "Eski Firma", "teklif_tutari": 100}]}`)
	if err := app.Save(tender); err != nil {
		t.Fatalf("save tender error: %v", err)
	}

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("MigrateLegacyCompetingBids() error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, _ := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "", 0, 0,
		map[string]any{"tender": tender.Id})
	if len(bids) != 1 {
		t.Fatalf("expected the hand-entered bid to be left alone, got %d rows", len(bids))
	}
	if bids[0].GetString("firm") != "Manuel Firma" {
		t.Errorf("bid firm = %q, want %q", bids[0].GetString("firm"), "Manuel Firma")
	}
}

func TestMigrateLegacyCompetingBids_NoLegacyData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestTender(t, app, "Clean Tender")

	if err := collections.MigrateLegacyCompetingBids(app); err != nil {
		t.Fatalf("MigrateLegacyCompetingBids() error: %v", err)
	}

	bidsCol, _ := app.FindCollectionByNameOrId("competing_bids")
	bids, _ := app.FindAllRecords(bidsCol)
	if len(bids) != 0 {
		t.Errorf("expected no bids, got %d", len(bids))
	}
}
