package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"hotelorders/services"
	"hotelorders/views"
)

// HandleReportPage renders the date selector and, when ?date= is given, the
// summary of that day's report with its download links.
func HandleReportPage(d Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := views.ReportData{
			Date:           e.Request.URL.Query().Get("date"),
			SecondaryLabel: d.SecondaryLabel,
		}
		status := http.StatusOK

		if data.Date != "" {
			date, err := services.ParseReportDate(data.Date)
			if err != nil {
				status = http.StatusBadRequest
				data.Error = "Please pick a valid date."
			} else if rep, err := d.Generator.Build(e.Request.Context(), date); err != nil {
				status, data.Error = statusFor(err)
			} else {
				data.Report = rep
			}
		}

		if isHTMX(e) {
			return renderHTML(e, status, views.ReportContent(data))
		}
		return renderHTML(e, status, views.ReportPage(data, popFlash(e)))
	}
}

// HandleReportFile serves one artifact of a day's report: a rendered
// document or the JSON of a pivot.
func HandleReportFile(d Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		date, err := services.ParseReportDate(e.Request.PathValue("date"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}

		file := e.Request.PathValue("file")
		switch file {
		case "vegetables.json", "vendors.json", "hotels.json",
			string(services.DocCombinedPDF), string(services.DocHotelsPDF), string(services.DocCombinedExcel):
		default:
			return e.String(http.StatusNotFound, "Unknown report file")
		}

		rep, err := d.Generator.Build(e.Request.Context(), date)
		if err != nil {
			status, msg := statusFor(err)
			return e.String(status, msg)
		}

		switch file {
		case "vegetables.json":
			return e.JSON(http.StatusOK, rep.Vegetables)
		case "vendors.json":
			return e.JSON(http.StatusOK, rep.Vendors)
		case "hotels.json":
			return e.JSON(http.StatusOK, rep.Hotels)
		}

		kind := services.DocumentKind(file)
		out, err := d.Generator.Render(rep, kind)
		if err != nil {
			var rerr *services.RenderError
			if errors.As(err, &rerr) {
				return e.String(http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s", rerr.Document))
			}
			return e.String(http.StatusInternalServerError, "Failed to generate document")
		}

		d.logger().Info("report downloaded",
			zap.String("run_id", rep.RunID),
			zap.String("document", file),
			zap.Int("bytes", len(out)),
		)
		return writeAttachment(e, services.ContentType(kind), services.FileName(kind, date), out)
	}
}

// HandleRefresh drops the cached order sheet so the next report reads it
// afresh.
func HandleRefresh(d Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		msg := "Order sheet will be reloaded on the next report."
		if !d.Generator.Refresh() {
			msg = "The order sheet is read fresh on every report."
		}
		SetToast(e, "success", msg)

		if isHTMX(e) {
			return e.NoContent(http.StatusNoContent)
		}
		return e.Redirect(http.StatusSeeOther, "/reports")
	}
}
