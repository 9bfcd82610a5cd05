package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type competingBidDef struct {
	sortOrder int
	firm      string
	amount    float64
}

type scheduleLineDef struct {
	sortOrder int
	workItem  string
	unit      string
	qty       float64
	unitPrice float64
}

type detectedValueDef struct {
	key       string
	label     string
	value     any
	valueType string
	source    string
	selected  bool
}

// Seed populates the collections with a realistic catering tender so the
// calculation screens have something to show on first run. It is safe to
// call on every startup because it returns early if any tender records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if tenders already exist ───────────────────
	tendersCol, err := app.FindCollectionByNameOrId("tenders")
	if err != nil {
		return fmt.Errorf("seed: could not find tenders collection: %w", err)
	}
	existing, err := app.FindAllRecords(tendersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query tenders: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: tenders collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	bidsCol, err := app.FindCollectionByNameOrId("competing_bids")
	if err != nil {
		return fmt.Errorf("seed: could not find competing_bids collection: %w", err)
	}
	scheduleCol, err := app.FindCollectionByNameOrId("schedule_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find schedule_lines collection: %w", err)
	}
	detectedCol, err := app.FindCollectionByNameOrId("detected_values")
	if err != nil {
		return fmt.Errorf("seed: could not find detected_values collection: %w", err)
	}

	// ── the demo tender ──────────────────────────────────────────────
	breakdown := seedBreakdown()
	breakdown = services.RecalcBreakdown(breakdown)
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("seed: could not marshal cost breakdown: %w", err)
	}

	tender := core.NewRecord(tendersCol)
	tender.Set("title", "Öğrenci Yurdu Yemek Hizmeti Alımı 2026")
	tender.Set("reference_number", "2026/154872")
	tender.Set("tender_type", "hizmet")
	tender.Set("approximate_cost", 4850000.0)
	tender.Set("our_bid", 4320000.0)
	tender.Set("profit_margin_percent", 10.0)
	tender.Set("duration_months", 12.0)
	tender.Set("total_meal_count", 219000.0)
	tender.Set("cost_breakdown", string(breakdownJSON))
	if err := app.Save(tender); err != nil {
		return fmt.Errorf("seed: could not save demo tender: %w", err)
	}

	// ── competing bids (placeholders the user fills in) ──────────────
	bids := []competingBidDef{
		{sortOrder: 1, firm: "Firma 1", amount: 0},
		{sortOrder: 2, firm: "Firma 2", amount: 0},
		{sortOrder: 3, firm: "Firma 3", amount: 0},
	}
	for _, d := range bids {
		r := core.NewRecord(bidsCol)
		r.Set("tender", tender.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("firm", d.firm)
		r.Set("amount", d.amount)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save competing bid %d: %w", d.sortOrder, err)
		}
	}

	// ── unit price schedule ──────────────────────────────────────────
	lines := []scheduleLineDef{
		{sortOrder: 1, workItem: "Sabah kahvaltısı", unit: "Öğün", qty: 73000, unitPrice: 14.50},
		{sortOrder: 2, workItem: "Öğle yemeği (4 çeşit)", unit: "Öğün", qty: 73000, unitPrice: 24.00},
		{sortOrder: 3, workItem: "Akşam yemeği (4 çeşit)", unit: "Öğün", qty: 73000, unitPrice: 24.00},
	}
	for _, d := range lines {
		r := core.NewRecord(scheduleCol)
		r.Set("tender", tender.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("work_item", d.workItem)
		r.Set("unit", d.unit)
		r.Set("qty", d.qty)
		r.Set("unit_price", d.unitPrice)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save schedule line %d: %w", d.sortOrder, err)
		}
	}

	// ── detected values from the announcement document ───────────────
	detected := []detectedValueDef{
		{key: services.KeyApproximateCost, label: "Yaklaşık Maliyet", value: 4850000.0, valueType: "currency", source: "document", selected: true},
		{key: services.KeyDurationMonths, label: "İş Süresi (Ay)", value: 12.0, valueType: "number", source: "document", selected: true},
		{key: services.KeyTotalMealCount, label: "Toplam Öğün Sayısı", value: 219000.0, valueType: "number", source: "analysis", selected: true},
		{key: "idare_adi", label: "İdare Adı", value: "Kredi ve Yurtlar Genel Müdürlüğü", valueType: "text", source: "document", selected: false},
	}
	for _, d := range detected {
		valueJSON, err := json.Marshal(d.value)
		if err != nil {
			return fmt.Errorf("seed: could not marshal detected value %q: %w", d.key, err)
		}
		r := core.NewRecord(detectedCol)
		r.Set("tender", tender.Id)
		r.Set("key", d.key)
		r.Set("label", d.label)
		r.Set("value", string(valueJSON))
		r.Set("value_type", d.valueType)
		r.Set("source", d.source)
		r.Set("selected", d.selected)
		r.Set("applied", false)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save detected value %q: %w", d.key, err)
		}
	}

	log.Printf("seed: created demo tender %q (%s)\n", tender.GetString("title"), tender.Id)
	return nil
}

// seedBreakdown builds a representative yearly catering cost breakdown.
// Amounts are left zero; the caller recalculates them from the details.
func seedBreakdown() services.CostBreakdown {
	var b services.CostBreakdown

	b.Meal.Detail = services.MealDetail{
		Method: services.MealMethodPerMeal,
		Meals: []services.MealLine{
			{Name: "Kahvaltı", Active: true, Headcount: 200, Days: 365, PerHeadCost: 11.20},
			{Name: "Öğle Yemeği", Active: true, Headcount: 200, Days: 365, PerHeadCost: 18.40},
			{Name: "Akşam Yemeği", Active: true, Headcount: 200, Days: 365, PerHeadCost: 18.40},
		},
	}

	b.Personnel.Detail = services.PersonnelDetail{
		Positions: []services.Position{
			{Name: "Aşçıbaşı", Headcount: 1, GrossSalary: 45000},
			{Name: "Aşçı", Headcount: 3, GrossSalary: 32000},
			{Name: "Garson", Headcount: 4, GrossSalary: 26000},
			{Name: "Bulaşıkçı", Headcount: 2, GrossSalary: 24000},
		},
		StatutoryRate:  22.5,
		DurationMonths: 12,
	}

	b.Transport.Detail = services.TransportDetail{
		Vehicles: []services.Vehicle{
			{Type: "Panelvan (soğutuculu)", Count: 1, MonthlyLease: 28000, MonthlyKm: 2200, FuelPer100Km: 9},
		},
		FuelPrice:      44.0,
		DurationMonths: 12,
	}

	b.Consumables.Detail = services.ConsumablesDetail{
		Method: services.ConsumablesMethodPerHead,
		Items: []services.ConsumableItem{
			{Name: "Temizlik malzemesi", PerHeadPerDay: 0.80},
			{Name: "Ambalaj ve servis malzemesi", PerHeadPerDay: 1.10},
		},
		DailyHeadcount: 200,
		Days:           365,
	}

	b.Equipment.Detail = services.EquipmentDetail{
		Items: []services.EquipmentItem{
			{Name: "Sanayi tipi bulaşık makinesi", Kind: "lease", Count: 1, UnitPrice: 6500},
			{Name: "Benmari", Kind: "purchase", Count: 2, UnitPrice: 18000},
		},
		MonthlyMaintenance: 3500,
		DurationMonths:     12,
	}

	b.Overhead.Detail = services.OverheadDetail{
		Items: []services.OverheadItem{
			{Name: "Elektrik ve doğalgaz", MonthlyAmount: 22000},
			{Name: "Su", MonthlyAmount: 4500},
			{Name: "İletişim ve ofis", MonthlyAmount: 1800},
		},
		DurationMonths: 12,
	}

	b.Statutory.Detail = services.StatutoryDetail{
		Insurance: []services.NamedAmount{
			{Name: "Mali sorumluluk sigortası", Amount: 24000},
		},
		Certificates: []services.NamedAmount{
			{Name: "ISO 22000 belgesi", Amount: 15000},
		},
		Safety: []services.NamedAmount{
			{Name: "İSG hizmeti", Amount: 18000},
		},
		TenderFees: []services.NamedAmount{
			{Name: "İhale doküman bedeli", Amount: 2500},
		},
	}

	b.RiskMargin.Detail = services.RiskMarginDetail{
		Categories: services.DefaultRiskCategories(),
	}

	return b
}
