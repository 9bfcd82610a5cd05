package services

// ScheduleLine is one row of the unit-price schedule submitted with a bid.
// Sequence is a dense 1..N ordering matching display order.
type ScheduleLine struct {
	Sequence  int     `json:"sequence"`
	WorkItem  string  `json:"work_item"`
	Unit      string  `json:"unit"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// Total returns the line amount: quantity times unit price.
func (l ScheduleLine) Total() float64 {
	return l.Qty * l.UnitPrice
}

// FullySpecified reports whether the line has both a quantity and a unit
// price, the condition for the price-schedule stage to be complete.
func (l ScheduleLine) FullySpecified() bool {
	return l.Qty > 0 && l.UnitPrice > 0
}

// ScheduleTotal sums the line totals.
func ScheduleTotal(lines []ScheduleLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Total()
	}
	return total
}

// Resequence rewrites the sequence numbers to a dense 1..N ordering, used
// after a line is deleted from the middle of the schedule.
func Resequence(lines []ScheduleLine) []ScheduleLine {
	for i := range lines {
		lines[i].Sequence = i + 1
	}
	return lines
}

// ScheduleUnitOptions lists the unit-of-measure choices for schedule lines.
var ScheduleUnitOptions = []string{
	"Öğün",
	"Adet",
	"Kg",
	"Litre",
	"Gün",
	"Ay",
	"Kişi",
	"Porsiyon",
	"Paket",
	"Sefer",
}
