package services

import "math"

// Statutory rates applied to the bid price (4734 public procurement law:
// provisional guarantee 3%, final guarantee 6%; stamp duty and authority
// share per the current fee schedule).
const (
	ProvisionalGuaranteeRate = 0.03
	FinalGuaranteeRate       = 0.06
	StampDutyRate            = 0.00948
	AuthorityShareRate       = 0.0005
)

// RiskAssessment classifies the prepared bid against the active threshold.
type RiskAssessment struct {
	IsAbnormallyLow   bool    `json:"is_abnormally_low"`
	Difference        float64 `json:"difference"`
	DifferencePercent float64 `json:"difference_percent"`
}

// AssessRisk compares the bid price with the active threshold value. Both
// must be positive for a meaningful comparison; otherwise everything is zero.
func AssessRisk(bidPrice, activeThreshold float64) RiskAssessment {
	if bidPrice <= 0 || activeThreshold <= 0 {
		return RiskAssessment{}
	}
	diff := bidPrice - activeThreshold
	return RiskAssessment{
		IsAbnormallyLow:   bidPrice < activeThreshold,
		Difference:        diff,
		DifferencePercent: diff / activeThreshold * 100,
	}
}

// Guarantees holds the guarantee and statutory amounts derived from the bid
// price.
type Guarantees struct {
	ProvisionalGuarantee float64 `json:"provisional_guarantee"`
	FinalGuarantee       float64 `json:"final_guarantee"`
	StampDuty            float64 `json:"stamp_duty"`
	AuthorityShare       float64 `json:"authority_share"`
}

// ComputeGuarantees applies the statutory rates to the bid price. A zero or
// negative bid price yields all zeros rather than negative guarantees.
func ComputeGuarantees(bidPrice float64) Guarantees {
	if bidPrice <= 0 {
		return Guarantees{}
	}
	return Guarantees{
		ProvisionalGuarantee: bidPrice * ProvisionalGuaranteeRate,
		FinalGuarantee:       bidPrice * FinalGuaranteeRate,
		StampDuty:            bidPrice * StampDutyRate,
		AuthorityShare:       bidPrice * AuthorityShareRate,
	}
}

// DerivedMetrics are the per-meal and per-month figures shown on the bid
// summary. All divisions are zero-guarded.
type DerivedMetrics struct {
	PerMealCost    float64 `json:"per_meal_cost"`
	PerMealBid     float64 `json:"per_meal_bid"`
	MonthlyCost    float64 `json:"monthly_cost"`
	DailyMealCount float64 `json:"daily_meal_count"`
}

// ComputeDerivedMetrics derives summary metrics from the approximate cost,
// our bid, the total meal count and the contract duration in months.
func ComputeDerivedMetrics(approxCost, ourBid, totalMeals, durationMonths float64) DerivedMetrics {
	var m DerivedMetrics
	if totalMeals > 0 {
		if approxCost > 0 {
			m.PerMealCost = approxCost / totalMeals
		}
		if ourBid > 0 {
			m.PerMealBid = ourBid / totalMeals
		}
	}
	if durationMonths > 0 {
		if approxCost > 0 {
			m.MonthlyCost = approxCost / durationMonths
		}
		m.DailyMealCount = math.Round(totalMeals / (durationMonths * 30))
	}
	return m
}
