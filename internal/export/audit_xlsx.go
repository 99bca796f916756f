// Package export renders reports as spreadsheet files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOpen     = "Offen"
	SheetVerified = "Geprüft"
	SheetMissing  = "Vermisst"

	// ContentTypeXLSX is the media type of the written workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var auditHeadings = []interface{}{"Kommission", "Auftragsnummer", "Status", "Zuletzt gescannt", "Aktualisiert"}

// WriteAuditReport writes the three audit buckets as sheets of one workbook.
func WriteAuditReport(w io.Writer, report domain.AuditReport) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the first bucket.
	if err := f.SetSheetName("Sheet1", SheetOpen); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if _, err := f.NewSheet(SheetVerified); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetVerified, err)
	}
	if _, err := f.NewSheet(SheetMissing); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetMissing, err)
	}

	buckets := []struct {
		sheet       string
		commissions []domain.Commission
	}{
		{SheetOpen, report.Open},
		{SheetVerified, report.Verified},
		{SheetMissing, report.Missing},
	}
	for _, b := range buckets {
		if err := writeSheet(f, b.sheet, b.commissions); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, commissions []domain.Commission) error {
	if err := f.SetSheetRow(sheet, "A1", &auditHeadings); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	for i, c := range commissions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.Name,
			c.OrderNumber,
			c.Status.Label(),
			formatTime(c.LastScannedAt),
			c.LastUpdatedAt.Format(time.DateTime),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateTime)
}
