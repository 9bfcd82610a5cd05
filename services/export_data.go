package services

// CategoryRow is one cost-category line of an exported bid summary.
type CategoryRow struct {
	Key    CategoryKey
	Label  string
	Amount float64
}

// BidExportData is everything the Excel and PDF exporters need, pre-computed
// by the caller from the stored bid.
type BidExportData struct {
	Title           string
	ReferenceNumber string
	TenderType      TenderType
	CreatedDate     string

	Categories []CategoryRow
	Totals     CostTotals
	ProfitRate float64

	ActiveThreshold float64
	Risk            RiskAssessment
	Guarantees      Guarantees

	ScheduleLines []ScheduleLine
	ScheduleTotal float64
}

// BuildCategoryRows flattens a recalculated breakdown into display rows in
// the fixed category order.
func BuildCategoryRows(b CostBreakdown) []CategoryRow {
	amounts := CategoryAmounts(b)
	rows := make([]CategoryRow, 0, len(CategoryKeys))
	for _, key := range CategoryKeys {
		rows = append(rows, CategoryRow{
			Key:    key,
			Label:  CategoryLabels[key],
			Amount: amounts[key],
		})
	}
	return rows
}
