package services

import "strconv"

// Detected-value types and sources, as produced by the document-analysis
// collaborator.
const (
	ValueTypeCurrency = "currency"
	ValueTypeText     = "text"
	ValueTypeNumber   = "number"

	SourceDocument = "document"
	SourceAnalysis = "analysis"
	SourceCalc     = "calculation"
	SourceLookup   = "external-lookup"
)

// DetectedValue is a candidate value extracted from tender documents. The
// user selects a subset and applies it; only the apply step ever writes into
// the bid state.
type DetectedValue struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Value    any    `json:"value"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Selected bool   `json:"selected"`
}

// BidState is the calculation input snapshot for one tender bid. Everything
// derived from it (totals, thresholds, risk, completion) is recomputed on
// every read and never stored back.
type BidState struct {
	ApproximateCost     float64        `json:"approximate_cost"`
	OurBid              float64        `json:"our_bid"`
	TenderType          TenderType     `json:"tender_type"`
	CompetingBids       []CompetingBid `json:"competing_bids"`
	ManualThreshold     float64        `json:"manual_threshold"`
	Breakdown           CostBreakdown  `json:"cost_breakdown"`
	ProfitMarginPercent float64        `json:"profit_margin_percent"`
	DurationMonths      float64        `json:"duration_months"`
	TotalMealCount      float64        `json:"total_meal_count"`
}

// Detected-value keys that map onto BidState fields when applied.
const (
	KeyApproximateCost = "yaklasik_maliyet"
	KeyOurBid          = "bizim_teklif"
	KeyThreshold       = "sinir_deger"
	KeyDurationMonths  = "is_suresi_ay"
	KeyTotalMealCount  = "toplam_ogun_sayisi"
)

// ApplyDetectedValues merges the selected detected values into the bid state
// by key. Currency keys overwrite the corresponding monetary field and
// number keys the corresponding count; text values are informational and
// never merged. It returns the number of values actually applied.
func ApplyDetectedValues(state *BidState, values []DetectedValue) int {
	applied := 0
	for _, v := range values {
		if !v.Selected {
			continue
		}
		switch v.Type {
		case ValueTypeCurrency:
			amount := toFloat(v.Value)
			switch v.Key {
			case KeyApproximateCost:
				state.ApproximateCost = amount
			case KeyOurBid:
				state.OurBid = amount
			case KeyThreshold:
				state.ManualThreshold = amount
			default:
				continue
			}
			applied++
		case ValueTypeNumber:
			n := toFloat(v.Value)
			switch v.Key {
			case KeyDurationMonths:
				state.DurationMonths = n
			case KeyTotalMealCount:
				state.TotalMealCount = n
			default:
				continue
			}
			applied++
		}
	}
	return applied
}

// toFloat coerces the loosely-typed detected value into a float64; anything
// non-numeric becomes 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
