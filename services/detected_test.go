package services

import "testing"

func TestApplyDetectedValues(t *testing.T) {
	state := BidState{}
	values := []DetectedValue{
		{Key: KeyApproximateCost, Value: 3600000.0, Type: ValueTypeCurrency, Source: SourceDocument, Selected: true},
		{Key: KeyOurBid, Value: "3300000", Type: ValueTypeCurrency, Source: SourceCalc, Selected: true},
		{Key: KeyThreshold, Value: 3060000.0, Type: ValueTypeCurrency, Source: SourceCalc, Selected: false},
		{Key: KeyDurationMonths, Value: 12, Type: ValueTypeNumber, Source: SourceAnalysis, Selected: true},
		{Key: "kurum_adi", Value: "İl Sağlık Müdürlüğü", Type: ValueTypeText, Source: SourceDocument, Selected: true},
	}

	applied := ApplyDetectedValues(&state, values)

	if applied != 3 {
		t.Errorf("applied = %d, want 3", applied)
	}
	if state.ApproximateCost != 3600000 {
		t.Errorf("ApproximateCost = %v, want 3600000", state.ApproximateCost)
	}
	if state.OurBid != 3300000 {
		t.Errorf("OurBid = %v (string coercion), want 3300000", state.OurBid)
	}
	if state.ManualThreshold != 0 {
		t.Errorf("ManualThreshold = %v, unselected value must not apply", state.ManualThreshold)
	}
	if state.DurationMonths != 12 {
		t.Errorf("DurationMonths = %v, want 12", state.DurationMonths)
	}
}

func TestApplyDetectedValuesUnknownAndText(t *testing.T) {
	state := BidState{ApproximateCost: 100}
	values := []DetectedValue{
		{Key: "bilinmeyen_alan", Value: 500.0, Type: ValueTypeCurrency, Selected: true},
		{Key: KeyApproximateCost, Value: "not-a-number", Type: ValueTypeText, Selected: true},
	}
	if applied := ApplyDetectedValues(&state, values); applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if state.ApproximateCost != 100 {
		t.Errorf("text values must never merge; ApproximateCost = %v", state.ApproximateCost)
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 12.5, 12.5},
		{"int", 42, 42},
		{"numeric string", "3600000.50", 3600000.5},
		{"garbage string", "abc", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toFloat(tt.in); got != tt.want {
				t.Errorf("toFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
