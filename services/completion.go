package services

// Stage identifies one bid-preparation stage.
type Stage string

const (
	StageDetection     Stage = "detection"
	StageCost          Stage = "cost"
	StageCalculations  Stage = "calculations"
	StagePriceSchedule Stage = "price-schedule"
)

// Stages lists the preparation stages in display order.
var Stages = []Stage{StageDetection, StageCost, StageCalculations, StagePriceSchedule}

// StageStatus is the derived status of one preparation stage.
type StageStatus string

const (
	StatusNotStarted StageStatus = "not_started"
	StatusPartial    StageStatus = "partial"
	StatusComplete   StageStatus = "complete"
	StatusWarning    StageStatus = "warning"
)

// CompletionInput is the snapshot the deriver inspects. It carries the shape
// of the underlying data, not any stored status.
type CompletionInput struct {
	DetectedCount   int
	AppliedCount    int
	Amounts         map[CategoryKey]float64
	Touched         map[CategoryKey]bool
	ApproximateCost float64
	OurBid          float64
	ActiveThreshold float64
	AbnormallyLow   bool
	ScheduleLines   []ScheduleLine
}

// CompletionReport is the derived view over all stages.
type CompletionReport struct {
	Stages           map[Stage]StageStatus `json:"stages"`
	ReadinessPercent int                   `json:"readiness_percent"`
	Warnings         []string              `json:"warnings"`
}

// DeriveCompletion recomputes every stage status from the current data. The
// result is a pure function of the input; nothing here is ever persisted.
func DeriveCompletion(in CompletionInput) CompletionReport {
	stages := map[Stage]StageStatus{
		StageDetection:     deriveDetection(in),
		StageCost:          deriveCost(in),
		StageCalculations:  deriveCalculations(in),
		StagePriceSchedule: deriveSchedule(in),
	}

	complete := 0
	for _, status := range stages {
		if status == StatusComplete {
			complete++
		}
	}
	readiness := complete * 100 / len(Stages)

	var warnings []string
	if in.AbnormallyLow {
		warnings = append(warnings, "Bid price is below the threshold value (abnormally low)")
	}
	for _, stage := range Stages {
		if msg := stageWarning(stage, stages[stage]); msg != "" {
			warnings = append(warnings, msg)
		}
	}

	return CompletionReport{
		Stages:           stages,
		ReadinessPercent: readiness,
		Warnings:         warnings,
	}
}

func deriveDetection(in CompletionInput) StageStatus {
	switch {
	case in.DetectedCount == 0:
		return StatusNotStarted
	case in.AppliedCount > 0:
		return StatusComplete
	default:
		return StatusPartial
	}
}

// deriveCost: every category must be touched for the stage to be complete.
// A category with zero lines and a zero amount is untouched, not complete.
func deriveCost(in CompletionInput) StageStatus {
	touched := 0
	nonZero := 0
	for _, key := range CategoryKeys {
		if in.Touched[key] {
			touched++
		}
		if in.Amounts[key] != 0 {
			nonZero++
		}
	}
	switch {
	case touched == 0 && nonZero == 0:
		return StatusNotStarted
	case touched == len(CategoryKeys):
		return StatusComplete
	default:
		return StatusPartial
	}
}

func deriveCalculations(in CompletionInput) StageStatus {
	hasApprox := in.ApproximateCost > 0
	hasBid := in.OurBid > 0
	switch {
	case !hasApprox && !hasBid:
		return StatusNotStarted
	case hasApprox != hasBid:
		return StatusPartial
	case in.ActiveThreshold <= 0:
		return StatusPartial
	case in.AbnormallyLow:
		return StatusWarning
	default:
		return StatusComplete
	}
}

func deriveSchedule(in CompletionInput) StageStatus {
	if len(in.ScheduleLines) == 0 {
		return StatusNotStarted
	}
	for _, line := range in.ScheduleLines {
		if !line.FullySpecified() {
			return StatusPartial
		}
	}
	return StatusComplete
}

func stageWarning(stage Stage, status StageStatus) string {
	if status == StatusComplete {
		return ""
	}
	// The warning status only arises from the abnormally-low flag, which
	// already has its own message.
	if status == StatusWarning {
		return ""
	}
	switch stage {
	case StageDetection:
		return "Detected values have not been applied to the bid"
	case StageCost:
		return "Cost detail is incomplete"
	case StageCalculations:
		return "Approximate cost, bid price or threshold value is missing"
	case StagePriceSchedule:
		return "Unit-price schedule has missing quantities or prices"
	default:
		return ""
	}
}
