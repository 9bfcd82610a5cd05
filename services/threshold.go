package services

import "math"

// TenderType selects the regulatory coefficient applied to the averaged bid
// values when computing the threshold.
type TenderType string

const (
	TenderService        TenderType = "hizmet"
	TenderSuperstructure TenderType = "yapim_ustyapi"
	TenderInfrastructure TenderType = "yapim_altyapi"
)

// TenderTypeCoefficients holds the R/N coefficients published by the
// procurement authority (updated yearly, effective each 1 February).
var TenderTypeCoefficients = map[TenderType]float64{
	TenderService:        0.90,
	TenderSuperstructure: 1.00,
	TenderInfrastructure: 1.20,
}

// Coefficient returns the regulatory coefficient for the tender type, falling
// back to the service coefficient for unknown values.
func (t TenderType) Coefficient() float64 {
	if c, ok := TenderTypeCoefficients[t]; ok {
		return c
	}
	return TenderTypeCoefficients[TenderService]
}

// CompetingBid is one competitor's bid. Zero-amount rows are placeholders
// that have not been filled yet and never enter the threshold math.
type CompetingBid struct {
	Firm   string  `json:"firm"`
	Amount float64 `json:"amount"`
}

// ThresholdOptions carries the elimination and floor coefficients of the
// official formula. Both are republished by the authority; keep them in sync
// with the current regulation.
type ThresholdOptions struct {
	// EliminationCoefficient: a bid strictly below this fraction of the
	// first-pass mean is dropped before the second averaging pass. Bids
	// exactly at the boundary are retained.
	EliminationCoefficient float64
	// FloorCoefficient: the result never falls below this fraction of the
	// approximate cost.
	FloorCoefficient float64
}

// DefaultThresholdOptions returns the coefficients currently in force.
func DefaultThresholdOptions() ThresholdOptions {
	return ThresholdOptions{
		EliminationCoefficient: 0.60,
		FloorCoefficient:       0.40,
	}
}

// ThresholdResult is the outcome of the regulatory formula.
type ThresholdResult struct {
	Value         float64 `json:"value"`
	ValidCount    int     `json:"valid_count"`
	ExcludedCount int     `json:"excluded_count"`
}

// ComputeThreshold implements the official threshold-value formula:
//
//	SD = ((YM + sum of valid bids) / (n + 1)) x R
//
// where YM is the approximate cost and R the tender-type coefficient. Bids
// far below the first-pass mean are eliminated and the mean recomputed over
// the survivors; if elimination empties the set, the pre-elimination mean is
// used. It returns nil when fewer than 3 positive bids exist or the
// approximate cost is zero; callers fall back to SimpleThreshold.
func ComputeThreshold(bids []CompetingBid, approxCost float64, tenderType TenderType, opts ThresholdOptions) *ThresholdResult {
	var valid []float64
	for _, b := range bids {
		if b.Amount > 0 {
			valid = append(valid, b.Amount)
		}
	}
	if len(valid) < 3 || approxCost <= 0 {
		return nil
	}

	mean := meanWithApprox(valid, approxCost)

	boundary := opts.EliminationCoefficient * mean
	var kept []float64
	for _, v := range valid {
		if v >= boundary {
			kept = append(kept, v)
		}
	}
	excluded := len(valid) - len(kept)
	if excluded > 0 && len(kept) > 0 {
		mean = meanWithApprox(kept, approxCost)
	}

	value := mean * tenderType.Coefficient()
	if floor := approxCost * opts.FloorCoefficient; value < floor {
		value = floor
	}

	return &ThresholdResult{
		Value:         round2(value),
		ValidCount:    len(valid),
		ExcludedCount: excluded,
	}
}

// meanWithApprox averages the bid amounts together with the approximate cost
// as one extra term.
func meanWithApprox(amounts []float64, approxCost float64) float64 {
	sum := approxCost
	for _, v := range amounts {
		sum += v
	}
	return sum / float64(len(amounts)+1)
}

// SimpleThreshold is the simplified fallback used when the regulatory formula
// has insufficient data: 85% of the approximate cost.
func SimpleThreshold(approxCost float64) float64 {
	if approxCost <= 0 {
		return 0
	}
	return approxCost * 0.85
}

// ActiveThreshold resolves the threshold the UI works against: a stored
// manual/computed override wins, then a live regulatory result, then the
// simplified fallback, then zero.
func ActiveThreshold(manualOverride float64, regulatory *ThresholdResult, approxCost float64) float64 {
	if manualOverride > 0 {
		return manualOverride
	}
	if regulatory != nil {
		return regulatory.Value
	}
	return SimpleThreshold(approxCost)
}

// round2 rounds to the currency's minor unit (2 decimals).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
