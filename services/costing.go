// Package services provides the financial calculation core for tender bid
// preparation: cost-category calculators, bid aggregation, the regulatory
// threshold-value formula, risk/guarantee amounts and completion-state
// derivation. Every function here is pure; callers recompute on each edit.
package services

// CategoryKey identifies one of the eight fixed cost categories of a bid.
type CategoryKey string

const (
	CategoryMeal        CategoryKey = "malzeme"
	CategoryPersonnel   CategoryKey = "personel"
	CategoryTransport   CategoryKey = "nakliye"
	CategoryConsumables CategoryKey = "sarf_malzeme"
	CategoryEquipment   CategoryKey = "ekipman_bakim"
	CategoryOverhead    CategoryKey = "genel_gider"
	CategoryStatutory   CategoryKey = "yasal_giderler"
	CategoryRiskMargin  CategoryKey = "risk_payi"
)

// CategoryKeys lists all categories in display order. Every breakdown carries
// all eight, even when a category resolves to zero.
var CategoryKeys = []CategoryKey{
	CategoryMeal,
	CategoryPersonnel,
	CategoryTransport,
	CategoryConsumables,
	CategoryEquipment,
	CategoryOverhead,
	CategoryStatutory,
	CategoryRiskMargin,
}

// CategoryLabels maps category keys to their display names.
var CategoryLabels = map[CategoryKey]string{
	CategoryMeal:        "Malzeme (Yemek)",
	CategoryPersonnel:   "Personel",
	CategoryTransport:   "Nakliye",
	CategoryConsumables: "Sarf Malzeme",
	CategoryEquipment:   "Ekipman & Bakım",
	CategoryOverhead:    "Genel Gider",
	CategoryStatutory:   "Yasal Giderler",
	CategoryRiskMargin:  "Risk Payı",
}

// ── Meal / material ──────────────────────────────────────────────────────

// MealLine is one meal type (breakfast, lunch, ...) costed per head per day.
type MealLine struct {
	Name        string  `json:"name"`
	Active      bool    `json:"active"`
	Headcount   float64 `json:"headcount"`
	Days        float64 `json:"days"`
	PerHeadCost float64 `json:"per_head_cost"`
}

// MealDetail supports two methods: per-meal lines ("per_meal") or a flat
// daily total ("flat"). An empty method falls back to the per-meal lines.
type MealDetail struct {
	Method         string     `json:"method"`
	Meals          []MealLine `json:"meals"`
	DailyHeadcount float64    `json:"daily_headcount"`
	Days           float64    `json:"days"`
	MealsPerDay    float64    `json:"meals_per_day"`
	PerHeadCost    float64    `json:"per_head_cost"`
}

const (
	MealMethodPerMeal = "per_meal"
	MealMethodFlat    = "flat"
)

// CalcMealCost reduces the meal/material detail to a single amount.
func CalcMealCost(d MealDetail) float64 {
	if d.Method == MealMethodFlat {
		return d.DailyHeadcount * d.Days * d.MealsPerDay * d.PerHeadCost
	}
	var total float64
	for _, m := range d.Meals {
		if m.Active {
			total += m.Headcount * m.Days * m.PerHeadCost
		}
	}
	return total
}

// MealSummary breaks the meal amount into its display components.
type MealSummary struct {
	ActiveMeals   float64 `json:"active_meals"`
	TotalServings float64 `json:"total_servings"`
	ContractTotal float64 `json:"contract_total"`
}

func CalcMealSummary(d MealDetail) MealSummary {
	var s MealSummary
	if d.Method == MealMethodFlat {
		s.ActiveMeals = d.MealsPerDay
		s.TotalServings = d.DailyHeadcount * d.Days * d.MealsPerDay
	} else {
		for _, m := range d.Meals {
			if m.Active {
				s.ActiveMeals++
				s.TotalServings += m.Headcount * m.Days
			}
		}
	}
	s.ContractTotal = CalcMealCost(d)
	return s
}

// ── Personnel ────────────────────────────────────────────────────────────

// Position is one staffed role with a headcount and monthly gross salary.
type Position struct {
	Name        string  `json:"name"`
	Headcount   float64 `json:"headcount"`
	GrossSalary float64 `json:"gross_salary"`
}

type PersonnelDetail struct {
	Positions      []Position `json:"positions"`
	StatutoryRate  float64    `json:"statutory_rate"` // employer contribution, percent of gross
	DurationMonths float64    `json:"duration_months"`
}

// PersonnelSummary breaks the personnel amount into its display components.
type PersonnelSummary struct {
	TotalHeadcount   float64 `json:"total_headcount"`
	MonthlyGross     float64 `json:"monthly_gross"`
	MonthlyStatutory float64 `json:"monthly_statutory"`
	MonthlyTotal     float64 `json:"monthly_total"`
	ContractTotal    float64 `json:"contract_total"`
}

// CalcPersonnelCost returns headcount x gross x (1 + rate/100), summed over
// positions and multiplied by the contract duration in months.
func CalcPersonnelCost(d PersonnelDetail) float64 {
	factor := 1 + d.StatutoryRate/100
	var monthly float64
	for _, p := range d.Positions {
		monthly += p.Headcount * p.GrossSalary * factor
	}
	return monthly * d.DurationMonths
}

func CalcPersonnelSummary(d PersonnelDetail) PersonnelSummary {
	var s PersonnelSummary
	for _, p := range d.Positions {
		s.TotalHeadcount += p.Headcount
		s.MonthlyGross += p.Headcount * p.GrossSalary
	}
	s.MonthlyStatutory = s.MonthlyGross * d.StatutoryRate / 100
	s.MonthlyTotal = s.MonthlyGross + s.MonthlyStatutory
	s.ContractTotal = s.MonthlyTotal * d.DurationMonths
	return s
}

// ── Transport ────────────────────────────────────────────────────────────

// Vehicle is one vehicle type with lease and fuel parameters.
type Vehicle struct {
	Type         string  `json:"type"`
	Count        float64 `json:"count"`
	MonthlyLease float64 `json:"monthly_lease"`
	MonthlyKm    float64 `json:"monthly_km"`
	FuelPer100Km float64 `json:"fuel_per_100km"` // litres
}

type TransportDetail struct {
	Vehicles       []Vehicle `json:"vehicles"`
	FuelPrice      float64   `json:"fuel_price"` // per litre
	DurationMonths float64   `json:"duration_months"`
}

type TransportSummary struct {
	TotalVehicles float64 `json:"total_vehicles"`
	MonthlyLease  float64 `json:"monthly_lease"`
	MonthlyFuel   float64 `json:"monthly_fuel"`
	MonthlyTotal  float64 `json:"monthly_total"`
	ContractTotal float64 `json:"contract_total"`
}

// CalcTransportCost sums lease plus fuel per vehicle type, monthly, times the
// contract duration. Fuel = count x (km/100) x consumption x price.
func CalcTransportCost(d TransportDetail) float64 {
	var monthly float64
	for _, v := range d.Vehicles {
		lease := v.Count * v.MonthlyLease
		fuel := v.Count * (v.MonthlyKm / 100) * v.FuelPer100Km * d.FuelPrice
		monthly += lease + fuel
	}
	return monthly * d.DurationMonths
}

func CalcTransportSummary(d TransportDetail) TransportSummary {
	var s TransportSummary
	for _, v := range d.Vehicles {
		s.TotalVehicles += v.Count
		s.MonthlyLease += v.Count * v.MonthlyLease
		s.MonthlyFuel += v.Count * (v.MonthlyKm / 100) * v.FuelPer100Km * d.FuelPrice
	}
	s.MonthlyTotal = s.MonthlyLease + s.MonthlyFuel
	s.ContractTotal = s.MonthlyTotal * d.DurationMonths
	return s
}

// ── Consumables ──────────────────────────────────────────────────────────

// ConsumableItem is a per-head-per-day cost line (napkins, cleaning, ...).
type ConsumableItem struct {
	Name          string  `json:"name"`
	PerHeadPerDay float64 `json:"per_head_per_day"`
}

// ConsumablesDetail supports per-head ("per_head") and flat monthly ("flat")
// methods, mirroring the meal category.
type ConsumablesDetail struct {
	Method         string           `json:"method"`
	Items          []ConsumableItem `json:"items"`
	DailyHeadcount float64          `json:"daily_headcount"`
	Days           float64          `json:"days"`
	MonthlyAmount  float64          `json:"monthly_amount"`
	DurationMonths float64          `json:"duration_months"`
}

const (
	ConsumablesMethodPerHead = "per_head"
	ConsumablesMethodFlat    = "flat"
)

type ConsumablesSummary struct {
	PerHeadDaily  float64 `json:"per_head_daily"`
	DailyTotal    float64 `json:"daily_total"`
	ContractTotal float64 `json:"contract_total"`
}

func CalcConsumablesCost(d ConsumablesDetail) float64 {
	if d.Method == ConsumablesMethodFlat {
		return d.MonthlyAmount * d.DurationMonths
	}
	var perHead float64
	for _, item := range d.Items {
		perHead += item.PerHeadPerDay
	}
	return d.DailyHeadcount * d.Days * perHead
}

func CalcConsumablesSummary(d ConsumablesDetail) ConsumablesSummary {
	var s ConsumablesSummary
	for _, item := range d.Items {
		s.PerHeadDaily += item.PerHeadPerDay
	}
	s.DailyTotal = d.DailyHeadcount * s.PerHeadDaily
	s.ContractTotal = s.DailyTotal * d.Days
	return s
}

// ── Equipment & maintenance ──────────────────────────────────────────────

// EquipmentItem is leased or purchased, never both; Kind selects the rule.
type EquipmentItem struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"` // "lease" or "purchase"
	Count     float64 `json:"count"`
	UnitPrice float64 `json:"unit_price"`
}

const (
	EquipmentKindLease    = "lease"
	EquipmentKindPurchase = "purchase"
)

type EquipmentDetail struct {
	Items              []EquipmentItem `json:"items"`
	MonthlyMaintenance float64         `json:"monthly_maintenance"`
	DurationMonths     float64         `json:"duration_months"`
}

type EquipmentSummary struct {
	MonthlyLease       float64 `json:"monthly_lease"`
	LeaseTotal         float64 `json:"lease_total"`
	PurchaseTotal      float64 `json:"purchase_total"`
	MonthlyMaintenance float64 `json:"monthly_maintenance"`
	MaintenanceTotal   float64 `json:"maintenance_total"`
	ContractTotal      float64 `json:"contract_total"`
}

// CalcEquipmentCost charges leased items monthly over the duration and
// purchased items once, plus the monthly maintenance fee over the duration.
func CalcEquipmentCost(d EquipmentDetail) float64 {
	var leaseTotal, purchaseTotal float64
	for _, item := range d.Items {
		if item.Kind == EquipmentKindLease {
			leaseTotal += item.Count * item.UnitPrice * d.DurationMonths
		} else {
			purchaseTotal += item.Count * item.UnitPrice
		}
	}
	return leaseTotal + purchaseTotal + d.MonthlyMaintenance*d.DurationMonths
}

func CalcEquipmentSummary(d EquipmentDetail) EquipmentSummary {
	var s EquipmentSummary
	for _, item := range d.Items {
		if item.Kind == EquipmentKindLease {
			s.MonthlyLease += item.Count * item.UnitPrice
		} else {
			s.PurchaseTotal += item.Count * item.UnitPrice
		}
	}
	s.LeaseTotal = s.MonthlyLease * d.DurationMonths
	s.MonthlyMaintenance = d.MonthlyMaintenance
	s.MaintenanceTotal = d.MonthlyMaintenance * d.DurationMonths
	s.ContractTotal = s.LeaseTotal + s.PurchaseTotal + s.MaintenanceTotal
	return s
}

// ── Overhead ─────────────────────────────────────────────────────────────

type OverheadItem struct {
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthly_amount"`
}

type OverheadDetail struct {
	Items          []OverheadItem `json:"items"`
	DurationMonths float64        `json:"duration_months"`
}

type OverheadSummary struct {
	MonthlyTotal  float64 `json:"monthly_total"`
	ContractTotal float64 `json:"contract_total"`
}

func CalcOverheadCost(d OverheadDetail) float64 {
	var monthly float64
	for _, item := range d.Items {
		monthly += item.MonthlyAmount
	}
	return monthly * d.DurationMonths
}

func CalcOverheadSummary(d OverheadDetail) OverheadSummary {
	var s OverheadSummary
	for _, item := range d.Items {
		s.MonthlyTotal += item.MonthlyAmount
	}
	s.ContractTotal = s.MonthlyTotal * d.DurationMonths
	return s
}

// ── Statutory / legal charges ────────────────────────────────────────────

// NamedAmount is a flat one-off charge.
type NamedAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type StatutoryDetail struct {
	Insurance    []NamedAmount `json:"insurance"`
	Certificates []NamedAmount `json:"certificates"`
	Safety       []NamedAmount `json:"safety"` // occupational safety
	TenderFees   []NamedAmount `json:"tender_fees"`
}

type StatutorySummary struct {
	InsuranceTotal   float64 `json:"insurance_total"`
	CertificateTotal float64 `json:"certificate_total"`
	SafetyTotal      float64 `json:"safety_total"`
	TenderFeeTotal   float64 `json:"tender_fee_total"`
	Total            float64 `json:"total"`
}

func CalcStatutoryCost(d StatutoryDetail) float64 {
	s := CalcStatutorySummary(d)
	return s.Total
}

func CalcStatutorySummary(d StatutoryDetail) StatutorySummary {
	var s StatutorySummary
	for _, item := range d.Insurance {
		s.InsuranceTotal += item.Amount
	}
	for _, item := range d.Certificates {
		s.CertificateTotal += item.Amount
	}
	for _, item := range d.Safety {
		s.SafetyTotal += item.Amount
	}
	for _, item := range d.TenderFees {
		s.TenderFeeTotal += item.Amount
	}
	s.Total = s.InsuranceTotal + s.CertificateTotal + s.SafetyTotal + s.TenderFeeTotal
	return s
}

// ── Risk margin ──────────────────────────────────────────────────────────

// RiskCategory is one risk component with an activation flag and a percent.
type RiskCategory struct {
	Name    string  `json:"name"`
	Active  bool    `json:"active"`
	Percent float64 `json:"percent"`
}

// RiskMarginDetail applies either a single manual percent or the sum of the
// active category percents to the risk-excluded cost base.
type RiskMarginDetail struct {
	UseManual     bool           `json:"use_manual"`
	ManualPercent float64        `json:"manual_percent"`
	Categories    []RiskCategory `json:"categories"`
}

type RiskMarginSummary struct {
	TotalPercent float64 `json:"total_percent"`
	Amount       float64 `json:"amount"`
}

// RiskPercent returns the effective percentage regardless of mode.
func RiskPercent(d RiskMarginDetail) float64 {
	if d.UseManual {
		return d.ManualPercent
	}
	var total float64
	for _, c := range d.Categories {
		if c.Active {
			total += c.Percent
		}
	}
	return total
}

// CalcRiskMargin applies the risk percentage to the sum of the other seven
// category amounts. The base is passed in explicitly so the risk category can
// never include itself; see RiskExcludedTotal.
func CalcRiskMargin(riskExcludedTotal float64, d RiskMarginDetail) float64 {
	return riskExcludedTotal * RiskPercent(d) / 100
}

func CalcRiskMarginSummary(riskExcludedTotal float64, d RiskMarginDetail) RiskMarginSummary {
	pct := RiskPercent(d)
	return RiskMarginSummary{
		TotalPercent: pct,
		Amount:       riskExcludedTotal * pct / 100,
	}
}

// DefaultRiskCategories returns the standard risk components offered when a
// bid is first opened.
func DefaultRiskCategories() []RiskCategory {
	return []RiskCategory{
		{Name: "Fiyat artışı", Active: true, Percent: 2},
		{Name: "Fire ve zayiat", Active: true, Percent: 1},
		{Name: "Personel devir hızı", Active: false, Percent: 1},
		{Name: "Cezai şart riski", Active: false, Percent: 0.5},
	}
}
