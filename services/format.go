package services

import (
	"fmt"
	"time"
)

// DocumentKind names a downloadable report.
type DocumentKind string

const (
	DocCombinedPDF   DocumentKind = "combined.pdf"
	DocHotelsPDF     DocumentKind = "hotels.pdf"
	DocCombinedExcel DocumentKind = "combined.xlsx"
)

// DisplayDate formats a report date for headings: 2025-03-05.
func DisplayDate(d time.Time) string {
	return d.Format(time.DateOnly)
}

// DateStamp formats a report date for file names: 20250305.
func DateStamp(d time.Time) string {
	return d.Format("20060102")
}

// FileName returns the download name of a report for date.
func FileName(kind DocumentKind, d time.Time) string {
	switch kind {
	case DocCombinedPDF:
		return fmt.Sprintf("complete_order_report_%s.pdf", DateStamp(d))
	case DocHotelsPDF:
		return fmt.Sprintf("individual_hotel_reports_%s.pdf", DateStamp(d))
	case DocCombinedExcel:
		return fmt.Sprintf("complete_order_report_%s.xlsx", DateStamp(d))
	}
	return fmt.Sprintf("report_%s", DateStamp(d))
}

// ContentType returns the MIME type of a report kind.
func ContentType(kind DocumentKind) string {
	if kind == DocCombinedExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// ParseReportDate reads a YYYY-MM-DD date from a query or path value.
func ParseReportDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid report date %q: %w", s, err)
	}
	return d, nil
}
