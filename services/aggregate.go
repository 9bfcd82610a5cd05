package services

// MealCost and friends pair a category's editable detail with its computed
// amount and sub-total summary. Amounts and summaries are derived;
// RecalcBreakdown overwrites them on every read.
type MealCost struct {
	Amount  float64     `json:"amount"`
	Summary MealSummary `json:"summary"`
	Detail  MealDetail  `json:"detail"`
}

type PersonnelCost struct {
	Amount  float64          `json:"amount"`
	Summary PersonnelSummary `json:"summary"`
	Detail  PersonnelDetail  `json:"detail"`
}

type TransportCost struct {
	Amount  float64          `json:"amount"`
	Summary TransportSummary `json:"summary"`
	Detail  TransportDetail  `json:"detail"`
}

type ConsumablesCost struct {
	Amount  float64            `json:"amount"`
	Summary ConsumablesSummary `json:"summary"`
	Detail  ConsumablesDetail  `json:"detail"`
}

type EquipmentCost struct {
	Amount  float64          `json:"amount"`
	Summary EquipmentSummary `json:"summary"`
	Detail  EquipmentDetail  `json:"detail"`
}

type OverheadCost struct {
	Amount  float64         `json:"amount"`
	Summary OverheadSummary `json:"summary"`
	Detail  OverheadDetail  `json:"detail"`
}

type StatutoryCost struct {
	Amount  float64          `json:"amount"`
	Summary StatutorySummary `json:"summary"`
	Detail  StatutoryDetail  `json:"detail"`
}

type RiskMarginCost struct {
	Amount  float64           `json:"amount"`
	Summary RiskMarginSummary `json:"summary"`
	Detail  RiskMarginDetail  `json:"detail"`
}

// CostBreakdown holds all eight cost categories. The JSON keys are the fixed
// category identifiers; a zero-value breakdown is valid and resolves to zero
// everywhere.
type CostBreakdown struct {
	Meal        MealCost        `json:"malzeme"`
	Personnel   PersonnelCost   `json:"personel"`
	Transport   TransportCost   `json:"nakliye"`
	Consumables ConsumablesCost `json:"sarf_malzeme"`
	Equipment   EquipmentCost   `json:"ekipman_bakim"`
	Overhead    OverheadCost    `json:"genel_gider"`
	Statutory   StatutoryCost   `json:"yasal_giderler"`
	RiskMargin  RiskMarginCost  `json:"risk_payi"`
}

// RecalcBreakdown recomputes every category amount and summary from its
// detail. The risk margin is computed last, over the sum of the other seven
// amounts, so it can never feed itself.
func RecalcBreakdown(b CostBreakdown) CostBreakdown {
	b.Meal.Amount = CalcMealCost(b.Meal.Detail)
	b.Meal.Summary = CalcMealSummary(b.Meal.Detail)
	b.Personnel.Amount = CalcPersonnelCost(b.Personnel.Detail)
	b.Personnel.Summary = CalcPersonnelSummary(b.Personnel.Detail)
	b.Transport.Amount = CalcTransportCost(b.Transport.Detail)
	b.Transport.Summary = CalcTransportSummary(b.Transport.Detail)
	b.Consumables.Amount = CalcConsumablesCost(b.Consumables.Detail)
	b.Consumables.Summary = CalcConsumablesSummary(b.Consumables.Detail)
	b.Equipment.Amount = CalcEquipmentCost(b.Equipment.Detail)
	b.Equipment.Summary = CalcEquipmentSummary(b.Equipment.Detail)
	b.Overhead.Amount = CalcOverheadCost(b.Overhead.Detail)
	b.Overhead.Summary = CalcOverheadSummary(b.Overhead.Detail)
	b.Statutory.Summary = CalcStatutorySummary(b.Statutory.Detail)
	b.Statutory.Amount = b.Statutory.Summary.Total
	base := RiskExcludedTotal(b)
	b.RiskMargin.Summary = CalcRiskMarginSummary(base, b.RiskMargin.Detail)
	b.RiskMargin.Amount = b.RiskMargin.Summary.Amount
	return b
}

// RiskExcludedTotal sums the seven non-risk category amounts.
func RiskExcludedTotal(b CostBreakdown) float64 {
	return b.Meal.Amount +
		b.Personnel.Amount +
		b.Transport.Amount +
		b.Consumables.Amount +
		b.Equipment.Amount +
		b.Overhead.Amount +
		b.Statutory.Amount
}

// CategoryAmounts returns the amount per category key.
func CategoryAmounts(b CostBreakdown) map[CategoryKey]float64 {
	return map[CategoryKey]float64{
		CategoryMeal:        b.Meal.Amount,
		CategoryPersonnel:   b.Personnel.Amount,
		CategoryTransport:   b.Transport.Amount,
		CategoryConsumables: b.Consumables.Amount,
		CategoryEquipment:   b.Equipment.Amount,
		CategoryOverhead:    b.Overhead.Amount,
		CategoryStatutory:   b.Statutory.Amount,
		CategoryRiskMargin:  b.RiskMargin.Amount,
	}
}

// TouchedCategories reports which categories carry any user input: a non-zero
// amount, or at least one filled line (a line explicitly zeroed still counts
// as touched, an empty category does not).
func TouchedCategories(b CostBreakdown) map[CategoryKey]bool {
	amounts := CategoryAmounts(b)
	touched := make(map[CategoryKey]bool, len(CategoryKeys))
	for key, amount := range amounts {
		touched[key] = amount != 0
	}
	if len(b.Meal.Detail.Meals) > 0 || b.Meal.Detail.DailyHeadcount > 0 {
		touched[CategoryMeal] = true
	}
	if len(b.Personnel.Detail.Positions) > 0 {
		touched[CategoryPersonnel] = true
	}
	if len(b.Transport.Detail.Vehicles) > 0 {
		touched[CategoryTransport] = true
	}
	if len(b.Consumables.Detail.Items) > 0 || b.Consumables.Detail.MonthlyAmount > 0 {
		touched[CategoryConsumables] = true
	}
	if len(b.Equipment.Detail.Items) > 0 || b.Equipment.Detail.MonthlyMaintenance > 0 {
		touched[CategoryEquipment] = true
	}
	if len(b.Overhead.Detail.Items) > 0 {
		touched[CategoryOverhead] = true
	}
	d := b.Statutory.Detail
	if len(d.Insurance)+len(d.Certificates)+len(d.Safety)+len(d.TenderFees) > 0 {
		touched[CategoryStatutory] = true
	}
	r := b.RiskMargin.Detail
	if r.UseManual && r.ManualPercent > 0 {
		touched[CategoryRiskMargin] = true
	}
	for _, c := range r.Categories {
		if c.Active {
			touched[CategoryRiskMargin] = true
		}
	}
	return touched
}

// CostTotals carries the aggregate figures derived from a breakdown.
type CostTotals struct {
	TotalCost    float64 `json:"total_cost"`
	ProfitAmount float64 `json:"profit_amount"`
	BidPrice     float64 `json:"bid_price"`
}

// AggregateTotals sums all eight category amounts and applies the profit
// margin to produce the bid price.
func AggregateTotals(b CostBreakdown, profitMarginPercent float64) CostTotals {
	var total float64
	for _, amount := range CategoryAmounts(b) {
		total += amount
	}
	profit := total * profitMarginPercent / 100
	return CostTotals{
		TotalCost:    total,
		ProfitAmount: profit,
		BidPrice:     total + profit,
	}
}
