package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a bid summary PDF from the export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data BidExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Sayfa {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBidHeader(m, data)
	addCostTable(m, data)
	addThresholdSummary(m, data)
	if len(data.ScheduleLines) > 0 {
		addScheduleTable(m, data)
	}
	addBidFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addBidHeader adds the tender title, registration number and date.
func addBidHeader(m core.Maroto, data BidExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(
				text.New(fmt.Sprintf("İKN: %s", data.ReferenceNumber), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Teklif: %s", FormatTRYShort(data.Totals.BidPrice)), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Tarih: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addCostTable renders the eight cost categories with the aggregate block.
func addCostTable(m core.Maroto, data BidExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerRight := headerText
	headerRight.Align = align.Right
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Maliyet Kalemi", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Tutar", headerRight)).WithStyle(&headerCell),
		),
	)

	rowText := props.Text{Size: 8, Align: align.Left}
	rowRight := props.Text{Size: 8, Align: align.Right}
	zebra := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, cat := range data.Categories {
		labelCol := col.New(8).Add(text.New(cat.Label, rowText))
		amountCol := col.New(4).Add(text.New(FormatTRY(cat.Amount), rowRight))
		if i%2 == 1 {
			labelCol = labelCol.WithStyle(zebra)
			amountCol = amountCol.WithStyle(zebra)
		}
		m.AddRows(row.New(7).Add(labelCol, amountCol))
	}

	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	boldLeft := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	totalCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Toplam Maliyet", boldLeft)).WithStyle(totalCell),
			col.New(4).Add(text.New(FormatTRY(data.Totals.TotalCost), boldRight)).WithStyle(totalCell),
		),
		row.New(8).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Kâr (%%%.1f)", data.ProfitRate), boldLeft)),
			col.New(4).Add(text.New(FormatTRY(data.Totals.ProfitAmount), boldRight)),
		),
		row.New(8).Add(
			col.New(8).Add(text.New("Teklif Fiyatı", boldLeft)).WithStyle(totalCell),
			col.New(4).Add(text.New(FormatTRY(data.Totals.BidPrice), boldRight)).WithStyle(totalCell),
		),
	)
}

// addThresholdSummary renders the threshold, risk and guarantee block.
func addThresholdSummary(m core.Maroto, data BidExportData) {
	m.AddRows(row.New(6))

	labelText := props.Text{Size: 8, Align: align.Left}
	valueText := props.Text{Size: 8, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Sınır Değer", FormatTRY(data.ActiveThreshold)},
		{"Fark", fmt.Sprintf("%s (%s)", FormatTRY(data.Risk.Difference), FormatPercent(data.Risk.DifferencePercent))},
		{"Geçici Teminat (%3)", FormatTRY(data.Guarantees.ProvisionalGuarantee)},
		{"Kesin Teminat (%6)", FormatTRY(data.Guarantees.FinalGuarantee)},
		{"Damga Vergisi", FormatTRY(data.Guarantees.StampDuty)},
		{"KİK Payı", FormatTRY(data.Guarantees.AuthorityShare)},
	}

	for _, l := range lines {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(l.label, labelText)),
				col.New(4).Add(text.New(l.value, valueText)),
			),
		)
	}

	if data.Risk.IsAbnormallyLow {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(
					text.New("UYARI: Teklif sınır değerin altında (aşırı düşük)", props.Text{
						Size:  9,
						Style: fontstyle.Bold,
						Align: align.Left,
						Color: &props.Color{Red: 200, Green: 30, Blue: 30},
					}),
				),
			),
		)
	}
}

// addScheduleTable renders the unit-price schedule.
func addScheduleTable(m core.Maroto, data BidExportData) {
	m.AddRows(row.New(6))

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Sıra", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("İş Kalemi", headerLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Birim", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Miktar", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Tutar", headerText)).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for _, line := range data.ScheduleLines {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", line.Sequence), baseText)),
				col.New(5).Add(text.New(line.WorkItem, leftText)),
				col.New(2).Add(text.New(line.Unit, baseText)),
				col.New(1).Add(text.New(formatQty(line.Qty), rightText)),
				col.New(3).Add(text.New(FormatTRY(line.Total()), rightText)),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Cetvel Toplamı", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
			col.New(3).Add(text.New(FormatTRY(data.ScheduleTotal), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
}

// addBidFooter adds the generated-date line at the bottom.
func addBidFooter(m core.Maroto, data BidExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Oluşturulma: %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
