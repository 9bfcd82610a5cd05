package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the given bid summary and
// returns the file contents as a byte slice.
func GenerateExcel(data BidExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars). Truncate on runes so Turkish
	// titles never end in a half-cut character.
	sheetName := data.Title
	if runes := []rune(sheetName); len(runes) > 31 {
		sheetName = string(runes[:31])
	}
	if sheetName == "" {
		sheetName = "Teklif"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column widths (A through E).
	widths := []float64{6, 42, 14, 14, 20}
	for i, col := range []string{"A", "B", "C", "D", "E"} {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header block ────────────────────────────────────────────────────

	row := 1
	setCell(f, sheetName, "A", row, data.Title)
	f.SetCellStyle(sheetName, cell("A", row), cell("E", row), titleStyle)
	row++
	setCell(f, sheetName, "A", row, fmt.Sprintf("İKN: %s    Tarih: %s    Teklif: %s",
		data.ReferenceNumber, data.CreatedDate, FormatTRYShort(data.Totals.BidPrice)))
	row += 2

	// ── Cost breakdown table ────────────────────────────────────────────

	setCell(f, sheetName, "A", row, "Maliyet Kalemi")
	setCell(f, sheetName, "B", row, "")
	setCell(f, sheetName, "C", row, "Tutar")
	f.SetCellStyle(sheetName, cell("A", row), cell("C", row), headerStyle)
	row++

	for _, cat := range data.Categories {
		setCell(f, sheetName, "A", row, string(cat.Key))
		setCell(f, sheetName, "B", row, cat.Label)
		setCell(f, sheetName, "C", row, FormatTRY(cat.Amount))
		f.SetCellStyle(sheetName, cell("A", row), cell("B", row), cellStyle)
		f.SetCellStyle(sheetName, cell("C", row), cell("C", row), amountStyle)
		row++
	}

	setCell(f, sheetName, "B", row, "Toplam Maliyet")
	setCell(f, sheetName, "C", row, FormatTRY(data.Totals.TotalCost))
	f.SetCellStyle(sheetName, cell("B", row), cell("C", row), totalStyle)
	row++
	setCell(f, sheetName, "B", row, fmt.Sprintf("Kâr (%%%.1f)", data.ProfitRate))
	setCell(f, sheetName, "C", row, FormatTRY(data.Totals.ProfitAmount))
	f.SetCellStyle(sheetName, cell("B", row), cell("C", row), cellStyle)
	row++
	setCell(f, sheetName, "B", row, "Teklif Fiyatı")
	setCell(f, sheetName, "C", row, FormatTRY(data.Totals.BidPrice))
	f.SetCellStyle(sheetName, cell("B", row), cell("C", row), totalStyle)
	row += 2

	// ── Threshold & guarantees block ────────────────────────────────────

	summary := []struct {
		label string
		value string
	}{
		{"Sınır Değer", FormatTRY(data.ActiveThreshold)},
		{"Fark", FormatTRY(data.Risk.Difference) + " (" + FormatPercent(data.Risk.DifferencePercent) + ")"},
		{"Geçici Teminat (%3)", FormatTRY(data.Guarantees.ProvisionalGuarantee)},
		{"Kesin Teminat (%6)", FormatTRY(data.Guarantees.FinalGuarantee)},
		{"Damga Vergisi", FormatTRY(data.Guarantees.StampDuty)},
		{"KİK Payı", FormatTRY(data.Guarantees.AuthorityShare)},
	}
	if data.Risk.IsAbnormallyLow {
		summary = append(summary, struct {
			label string
			value string
		}{"Uyarı", "Teklif sınır değerin altında (aşırı düşük)"})
	}
	for _, s := range summary {
		setCell(f, sheetName, "B", row, s.label)
		setCell(f, sheetName, "C", row, s.value)
		f.SetCellStyle(sheetName, cell("B", row), cell("C", row), cellStyle)
		row++
	}
	row++

	// ── Unit-price schedule ─────────────────────────────────────────────

	if len(data.ScheduleLines) > 0 {
		headers := []string{"Sıra", "İş Kalemi", "Birim", "Miktar", "Tutar"}
		for i, h := range headers {
			col := string(rune('A' + i))
			setCell(f, sheetName, col, row, h)
		}
		f.SetCellStyle(sheetName, cell("A", row), cell("E", row), headerStyle)
		row++

		for _, line := range data.ScheduleLines {
			setCell(f, sheetName, "A", row, line.Sequence)
			setCell(f, sheetName, "B", row, line.WorkItem)
			setCell(f, sheetName, "C", row, line.Unit)
			setCell(f, sheetName, "D", row, line.Qty)
			setCell(f, sheetName, "E", row, FormatTRY(line.Total()))
			f.SetCellStyle(sheetName, cell("A", row), cell("D", row), cellStyle)
			f.SetCellStyle(sheetName, cell("E", row), cell("E", row), amountStyle)
			row++
		}

		setCell(f, sheetName, "D", row, "Cetvel Toplamı")
		setCell(f, sheetName, "E", row, FormatTRY(data.ScheduleTotal))
		f.SetCellStyle(sheetName, cell("D", row), cell("E", row), totalStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func setCell(f *excelize.File, sheet, col string, row int, value any) {
	_ = f.SetCellValue(sheet, cell(col, row), value)
}

// thinBorders returns a uniform thin border set for table cells.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
	}
}
