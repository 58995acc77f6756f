package services

import (
	"bytes"
	"fmt"
	"notary_admin_go/models"
	"time"

	"github.com/xuri/excelize/v2"
)

const notarySheet = "Notaries"

var notaryExportHeaders = []string{
	"Name", "Email", "City", "Status", "License Start", "License Expiry",
	"Days Left", "Payment", "Frequency", "Notes",
}

// ExportNotariesExcel writes the notary list with derived statuses to an xlsx workbook,
// followed by a summary sheet built from the same rows
func ExportNotariesExcel(views []NotaryView, counts LicenseCounts, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", notarySheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range notaryExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(notarySheet, cell, header)
	}
	f.SetCellStyle(notarySheet, "A1", "J1", headerStyle)

	for i, v := range views {
		row := i + 2
		values := []interface{}{
			v.Name,
			v.Email,
			v.City,
			v.Status.GetStatusDisplay(),
			formatOptionalDate(v.LicenseStartDate),
			formatOptionalDate(v.LicenseExpiryDate),
			v.DaysUntilExpiry,
			v.PaymentAmount,
			v.PaymentFrequency,
			v.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(notarySheet, cell, value)
		}
	}
	f.SetColWidth(notarySheet, "A", "C", 24)
	f.SetColWidth(notarySheet, "D", "I", 16)
	f.SetColWidth(notarySheet, "J", "J", 40)

	// --- Summary Sheet ---
	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
		{"Total", counts.Total},
		{models.LicenseStatusActive.GetStatusDisplay(), counts.Active},
		{models.LicenseStatusExpiringSoon.GetStatusDisplay(), counts.ExpiringSoon},
		{models.LicenseStatusExpired.GetStatusDisplay(), counts.Expired},
		{models.LicenseStatusDisabled.GetStatusDisplay(), counts.Disabled},
	}
	for i, values := range summaryRows {
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			f.SetCellValue(summarySheet, cell, value)
		}
	}
	f.SetCellStyle(summarySheet, "A1", "A6", headerStyle)
	f.SetColWidth(summarySheet, "A", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
