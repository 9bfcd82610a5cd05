package services

import (
	"math"
	"testing"
)

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestCalcMealCost(t *testing.T) {
	tests := []struct {
		name   string
		detail MealDetail
		want   float64
	}{
		{"empty", MealDetail{}, 0},
		{
			"per_meal lines",
			MealDetail{
				Method: MealMethodPerMeal,
				Meals: []MealLine{
					{Name: "Kahvaltı", Active: true, Headcount: 100, Days: 30, PerHeadCost: 25},
					{Name: "Öğle", Active: true, Headcount: 200, Days: 30, PerHeadCost: 45},
					{Name: "Akşam", Active: false, Headcount: 150, Days: 30, PerHeadCost: 40},
				},
			},
			100*30*25 + 200*30*45,
		},
		{
			"inactive lines only",
			MealDetail{
				Meals: []MealLine{{Active: false, Headcount: 50, Days: 10, PerHeadCost: 30}},
			},
			0,
		},
		{
			"flat mode",
			MealDetail{
				Method:         MealMethodFlat,
				DailyHeadcount: 250,
				Days:           365,
				MealsPerDay:    3,
				PerHeadCost:    35,
			},
			250 * 365 * 3 * 35,
		},
		{
			"flat mode ignores lines",
			MealDetail{
				Method:         MealMethodFlat,
				Meals:          []MealLine{{Active: true, Headcount: 10, Days: 10, PerHeadCost: 10}},
				DailyHeadcount: 0,
			},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcMealCost(tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcMealCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcMealSummary(t *testing.T) {
	perMeal := MealDetail{
		Method: MealMethodPerMeal,
		Meals: []MealLine{
			{Name: "Kahvaltı", Active: true, Headcount: 100, Days: 30, PerHeadCost: 25},
			{Name: "Öğle", Active: true, Headcount: 200, Days: 30, PerHeadCost: 45},
			{Name: "Akşam", Active: false, Headcount: 150, Days: 30, PerHeadCost: 40},
		},
	}
	s := CalcMealSummary(perMeal)
	if s.ActiveMeals != 2 {
		t.Errorf("active meals = %v, want 2", s.ActiveMeals)
	}
	if !floatClose(s.TotalServings, 100*30+200*30) {
		t.Errorf("servings = %v, want %v", s.TotalServings, 100*30+200*30)
	}
	if !floatClose(s.ContractTotal, CalcMealCost(perMeal)) {
		t.Errorf("summary total %v != cost %v", s.ContractTotal, CalcMealCost(perMeal))
	}

	flat := MealDetail{
		Method:         MealMethodFlat,
		DailyHeadcount: 250,
		Days:           365,
		MealsPerDay:    3,
		PerHeadCost:    35,
	}
	s = CalcMealSummary(flat)
	if s.ActiveMeals != 3 {
		t.Errorf("flat active meals = %v, want meals per day", s.ActiveMeals)
	}
	if !floatClose(s.TotalServings, 250*365*3) {
		t.Errorf("flat servings = %v", s.TotalServings)
	}
	if !floatClose(s.ContractTotal, 250*365*3*35) {
		t.Errorf("flat summary total = %v", s.ContractTotal)
	}
}

func TestCalcPersonnelCost(t *testing.T) {
	tests := []struct {
		name   string
		detail PersonnelDetail
		want   float64
	}{
		{"empty", PersonnelDetail{}, 0},
		{
			"single position",
			PersonnelDetail{
				Positions:      []Position{{Name: "Aşçı", Headcount: 2, GrossSalary: 30000}},
				StatutoryRate:  22.5,
				DurationMonths: 12,
			},
			2 * 30000 * 1.225 * 12,
		},
		{
			"multiple positions",
			PersonnelDetail{
				Positions: []Position{
					{Headcount: 1, GrossSalary: 50000},
					{Headcount: 4, GrossSalary: 25000},
				},
				StatutoryRate:  20,
				DurationMonths: 6,
			},
			(1*50000 + 4*25000) * 1.2 * 6,
		},
		{
			"zero duration",
			PersonnelDetail{
				Positions:     []Position{{Headcount: 3, GrossSalary: 20000}},
				StatutoryRate: 22.5,
			},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcPersonnelCost(tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcPersonnelCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcPersonnelSummary(t *testing.T) {
	d := PersonnelDetail{
		Positions: []Position{
			{Name: "Aşçı", Headcount: 2, GrossSalary: 30000},
			{Name: "Garson", Headcount: 5, GrossSalary: 20000},
		},
		StatutoryRate:  20,
		DurationMonths: 12,
	}
	s := CalcPersonnelSummary(d)
	if s.TotalHeadcount != 7 {
		t.Errorf("TotalHeadcount = %v, want 7", s.TotalHeadcount)
	}
	if !floatClose(s.MonthlyGross, 160000) {
		t.Errorf("MonthlyGross = %v, want 160000", s.MonthlyGross)
	}
	if !floatClose(s.MonthlyStatutory, 32000) {
		t.Errorf("MonthlyStatutory = %v, want 32000", s.MonthlyStatutory)
	}
	if !floatClose(s.ContractTotal, 192000*12) {
		t.Errorf("ContractTotal = %v, want %v", s.ContractTotal, 192000*12)
	}
	if !floatClose(s.ContractTotal, CalcPersonnelCost(d)) {
		t.Errorf("summary total %v disagrees with calculator %v", s.ContractTotal, CalcPersonnelCost(d))
	}
}

func TestCalcTransportCost(t *testing.T) {
	tests := []struct {
		name   string
		detail TransportDetail
		want   float64
	}{
		{"empty", TransportDetail{}, 0},
		{
			"lease plus fuel",
			TransportDetail{
				Vehicles: []Vehicle{
					{Type: "Kamyonet", Count: 2, MonthlyLease: 15000, MonthlyKm: 3000, FuelPer100Km: 10},
				},
				FuelPrice:      40,
				DurationMonths: 12,
			},
			// lease: 2*15000 = 30000; fuel: 2*(3000/100)*10*40 = 24000
			(30000 + 24000) * 12,
		},
		{
			"no fuel price",
			TransportDetail{
				Vehicles:       []Vehicle{{Count: 1, MonthlyLease: 10000, MonthlyKm: 2000, FuelPer100Km: 8}},
				DurationMonths: 6,
			},
			10000 * 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcTransportCost(tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcTransportCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcConsumablesCost(t *testing.T) {
	tests := []struct {
		name   string
		detail ConsumablesDetail
		want   float64
	}{
		{"empty", ConsumablesDetail{}, 0},
		{
			"per head",
			ConsumablesDetail{
				Method: ConsumablesMethodPerHead,
				Items: []ConsumableItem{
					{Name: "Peçete", PerHeadPerDay: 0.5},
					{Name: "Temizlik", PerHeadPerDay: 1.25},
				},
				DailyHeadcount: 200,
				Days:           365,
			},
			200 * 365 * 1.75,
		},
		{
			"flat monthly",
			ConsumablesDetail{
				Method:         ConsumablesMethodFlat,
				MonthlyAmount:  12000,
				DurationMonths: 12,
			},
			144000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcConsumablesCost(tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcConsumablesCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcEquipmentCost(t *testing.T) {
	tests := []struct {
		name   string
		detail EquipmentDetail
		want   float64
	}{
		{"empty", EquipmentDetail{}, 0},
		{
			"lease and purchase are exclusive per line",
			EquipmentDetail{
				Items: []EquipmentItem{
					{Name: "Fırın", Kind: EquipmentKindLease, Count: 2, UnitPrice: 5000},
					{Name: "Kazan", Kind: EquipmentKindPurchase, Count: 3, UnitPrice: 20000},
				},
				MonthlyMaintenance: 2500,
				DurationMonths:     12,
			},
			// lease: 2*5000*12 = 120000; purchase: 3*20000 = 60000; maintenance: 2500*12
			120000 + 60000 + 30000,
		},
		{
			"maintenance only",
			EquipmentDetail{MonthlyMaintenance: 1000, DurationMonths: 6},
			6000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcEquipmentCost(tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcEquipmentCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcOverheadCost(t *testing.T) {
	d := OverheadDetail{
		Items: []OverheadItem{
			{Name: "Kira", MonthlyAmount: 20000},
			{Name: "Elektrik", MonthlyAmount: 8000},
		},
		DurationMonths: 12,
	}
	if got := CalcOverheadCost(d); !floatClose(got, 336000) {
		t.Errorf("CalcOverheadCost() = %v, want 336000", got)
	}
	if got := CalcOverheadCost(OverheadDetail{}); got != 0 {
		t.Errorf("CalcOverheadCost(empty) = %v, want 0", got)
	}
}

func TestCalcStatutorySummary(t *testing.T) {
	d := StatutoryDetail{
		Insurance:    []NamedAmount{{Name: "Mali mesuliyet", Amount: 15000}},
		Certificates: []NamedAmount{{Name: "ISO 22000", Amount: 8000}, {Name: "TSE", Amount: 5000}},
		Safety:       []NamedAmount{{Name: "İSG uzmanı", Amount: 24000}},
		TenderFees:   []NamedAmount{{Name: "Doküman bedeli", Amount: 500}},
	}
	s := CalcStatutorySummary(d)
	if !floatClose(s.InsuranceTotal, 15000) || !floatClose(s.CertificateTotal, 13000) ||
		!floatClose(s.SafetyTotal, 24000) || !floatClose(s.TenderFeeTotal, 500) {
		t.Errorf("unexpected sub-totals: %+v", s)
	}
	if !floatClose(s.Total, 52500) {
		t.Errorf("Total = %v, want 52500", s.Total)
	}
	if !floatClose(CalcStatutoryCost(d), s.Total) {
		t.Errorf("CalcStatutoryCost disagrees with summary total")
	}
}

func TestCalcRiskMargin(t *testing.T) {
	tests := []struct {
		name   string
		base   float64
		detail RiskMarginDetail
		want   float64
	}{
		{"empty", 100000, RiskMarginDetail{}, 0},
		{
			"manual",
			200000,
			RiskMarginDetail{UseManual: true, ManualPercent: 5},
			10000,
		},
		{
			"manual wins over categories",
			100000,
			RiskMarginDetail{
				UseManual:     true,
				ManualPercent: 2,
				Categories:    []RiskCategory{{Active: true, Percent: 10}},
			},
			2000,
		},
		{
			"active categories only",
			100000,
			RiskMarginDetail{
				Categories: []RiskCategory{
					{Name: "Fiyat artışı", Active: true, Percent: 2},
					{Name: "Fire", Active: true, Percent: 1.5},
					{Name: "Pasif", Active: false, Percent: 10},
				},
			},
			3500,
		},
		{"zero base", 0, RiskMarginDetail{UseManual: true, ManualPercent: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcRiskMargin(tt.base, tt.detail); !floatClose(got, tt.want) {
				t.Errorf("CalcRiskMargin(%v) = %v, want %v", tt.base, got, tt.want)
			}
		})
	}
}

// Every calculator must return zero on an empty detail, with zero summaries
// and no panics.
func TestEmptyDetailsResolveToZero(t *testing.T) {
	if got := CalcMealCost(MealDetail{}); got != 0 {
		t.Errorf("meal = %v", got)
	}
	if got := CalcPersonnelCost(PersonnelDetail{}); got != 0 {
		t.Errorf("personnel = %v", got)
	}
	if got := CalcTransportCost(TransportDetail{}); got != 0 {
		t.Errorf("transport = %v", got)
	}
	if got := CalcConsumablesCost(ConsumablesDetail{}); got != 0 {
		t.Errorf("consumables = %v", got)
	}
	if got := CalcEquipmentCost(EquipmentDetail{}); got != 0 {
		t.Errorf("equipment = %v", got)
	}
	if got := CalcOverheadCost(OverheadDetail{}); got != 0 {
		t.Errorf("overhead = %v", got)
	}
	if got := CalcStatutoryCost(StatutoryDetail{}); got != 0 {
		t.Errorf("statutory = %v", got)
	}
	if got := CalcRiskMargin(0, RiskMarginDetail{}); got != 0 {
		t.Errorf("risk = %v", got)
	}

	if s := CalcPersonnelSummary(PersonnelDetail{}); s != (PersonnelSummary{}) {
		t.Errorf("personnel summary = %+v", s)
	}
	if s := CalcTransportSummary(TransportDetail{}); s != (TransportSummary{}) {
		t.Errorf("transport summary = %+v", s)
	}
	if s := CalcStatutorySummary(StatutoryDetail{}); s != (StatutorySummary{}) {
		t.Errorf("statutory summary = %+v", s)
	}
}
