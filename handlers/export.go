package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderprep/services"
)

// buildBidExportData assembles the export payload from a recomputed snapshot.
func buildBidExportData(app *pocketbase.PocketBase, tenderID string) (services.BidExportData, error) {
	record, err := app.FindRecordById("tenders", tenderID)
	if err != nil {
		return services.BidExportData{}, fmt.Errorf("tender not found: %w", err)
	}

	snapshot, err := buildBidSnapshot(app, record)
	if err != nil {
		return services.BidExportData{}, err
	}

	createdDate := ""
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02.01.2006")
	}

	return services.BidExportData{
		Title:           snapshot.Title,
		ReferenceNumber: snapshot.ReferenceNumber,
		TenderType:      snapshot.TenderType,
		CreatedDate:     createdDate,

		Categories: services.BuildCategoryRows(snapshot.Breakdown),
		Totals:     snapshot.Totals,
		ProfitRate: snapshot.ProfitMarginPercent,

		ActiveThreshold: snapshot.ActiveThreshold,
		Risk:            snapshot.Risk,
		Guarantees:      snapshot.Guarantees,

		ScheduleLines: snapshot.ScheduleLines,
		ScheduleTotal: snapshot.ScheduleTotal,
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleBidExportExcel returns a handler that generates and downloads an
// Excel workbook for a tender bid.
func HandleBidExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		data, err := buildBidExportData(app, tenderID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate Excel file"})
		}

		filename := fmt.Sprintf("Teklif_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBidExportPDF returns a handler that generates and downloads a PDF
// summary for a tender bid.
func HandleBidExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if tenderID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing tender ID"})
		}

		data, err := buildBidExportData(app, tenderID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Tender not found"})
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate PDF file"})
		}

		filename := fmt.Sprintf("Teklif_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
