package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"hotelorders/testhelpers"
)

func TestHandleReportPage_NoDate(t *testing.T) {
	d := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()

	if err := HandleReportPage(d)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="date"`) {
		t.Error("date form missing")
	}
	if strings.Contains(body, "combined.pdf") {
		t.Error("download links shown before a date was picked")
	}
}

func TestHandleReportPage_WithDate(t *testing.T) {
	d := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/reports?date=2025-03-05", nil)
	rec := httptest.NewRecorder()

	if err := HandleReportPage(d)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<!doctype html>",
		"/reports/2025-03-05/combined.pdf",
		"<th>Novotel</th><th>Grandbay</th>",
		"Vendor: Ravi",
		"Vendor: Sita",
		"<td>10 kg</td><td>4 kg</td>",
	)
	if strings.Contains(body, "Carrot") {
		t.Error("row from another day leaked into the report")
	}
}

func TestHandleReportPage_HTMXPartial(t *testing.T) {
	d := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/reports?date=2025-03-05", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleReportPage(d)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("htmx request got the full layout")
	}
	if !strings.HasPrefix(body, `<section id="report">`) {
		t.Errorf("partial should start with the report section, got %.60q", body)
	}
}

func TestHandleReportPage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		deps       func(t *testing.T) Deps
		query      string
		wantStatus int
		wantText   string
	}{
		{"bad date", newTestDeps, "?date=05-03-2025", http.StatusBadRequest, "valid date"},
		{"source down", func(t *testing.T) Deps { return newFailingDeps(t, errSheetDown) }, "?date=2025-03-05", http.StatusBadGateway, "could not be read"},
		{"timeout", func(t *testing.T) Deps { return newFailingDeps(t, context.DeadlineExceeded) }, "?date=2025-03-05", http.StatusGatewayTimeout, "took too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reports"+tt.query, nil)
			rec := httptest.NewRecorder()

			if err := HandleReportPage(tt.deps(t))(newTestRequestEvent(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
		})
	}
}

func TestHandleReportPage_NoOrdersIsWarning(t *testing.T) {
	d := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/reports?date=2025-01-01", nil)
	rec := httptest.NewRecorder()

	if err := HandleReportPage(d)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No orders found for 2025-01-01.") {
		t.Error("no-orders warning missing")
	}
}

func fileRequest(date, file string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/reports/"+date+"/"+file, nil)
	req.SetPathValue("date", date)
	req.SetPathValue("file", file)
	return req
}

func TestHandleReportFile_Documents(t *testing.T) {
	tests := []struct {
		file        string
		contentType string
		filename    string
		magic       string
	}{
		{"combined.pdf", "application/pdf", "complete_order_report_20250305.pdf", "%PDF"},
		{"hotels.pdf", "application/pdf", "individual_hotel_reports_20250305.pdf", "%PDF"},
		{"combined.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "complete_order_report_20250305.xlsx", "PK"},
	}
	d := newTestDeps(t)
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", tt.file), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			wantCD := `attachment; filename="` + tt.filename + `"`
			if got := rec.Header().Get("Content-Disposition"); got != wantCD {
				t.Errorf("Content-Disposition = %q, want %q", got, wantCD)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.magic) {
				t.Errorf("body does not start with %q", tt.magic)
			}
		})
	}
}

func TestHandleReportFile_ExcelSheets(t *testing.T) {
	d := newTestDeps(t)
	rec := httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "combined.xlsx"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got := f.GetSheetList()
	want := []string{"Vegetables", "Ravi", "Sita"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sheets = %v, want %v", got, want)
	}
}

func TestHandleReportFile_JSON(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "vegetables.json"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var veg struct {
		Hotels []string `json:"hotels"`
		Rows   []struct {
			DisplayName string `json:"display_name"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &veg); err != nil {
		t.Fatalf("vegetables.json: %v", err)
	}
	if len(veg.Hotels) != 2 || len(veg.Rows) != 2 || veg.Rows[0].DisplayName != "Onion" {
		t.Errorf("vegetables = %+v", veg)
	}

	rec = httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "vendors.json"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var vendors []struct {
		Vendor string `json:"vendor"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &vendors); err != nil {
		t.Fatalf("vendors.json: %v", err)
	}
	if len(vendors) != 2 || vendors[0].Vendor != "Ravi" || vendors[1].Vendor != "Sita" {
		t.Errorf("vendors = %+v", vendors)
	}

	rec = httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "hotels.json"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var hotels []struct {
		Hotel string `json:"hotel"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &hotels); err != nil {
		t.Fatalf("hotels.json: %v", err)
	}
	if len(hotels) != 2 || hotels[0].Hotel != "Novotel" {
		t.Errorf("hotels = %+v", hotels)
	}
}

func TestHandleReportFile_Errors(t *testing.T) {
	tests := []struct {
		name       string
		deps       Deps
		date, file string
		wantStatus int
	}{
		{"bad date", newTestDeps(t), "20250305", "combined.pdf", http.StatusBadRequest},
		{"unknown file", newTestDeps(t), "2025-03-05", "summary.docx", http.StatusNotFound},
		{"source down", newFailingDeps(t, errSheetDown), "2025-03-05", "combined.pdf", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := HandleReportFile(tt.deps)(newTestRequestEvent(fileRequest(tt.date, tt.file), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleReportFile_RenderFailure(t *testing.T) {
	d := newTestDeps(t)
	d.Generator.PDF = nil

	rec := httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "combined.pdf"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "combined.pdf") {
		t.Errorf("body = %q", rec.Body.String())
	}

	// The workbook does not depend on the PDF renderer.
	rec = httptest.NewRecorder()
	if err := HandleReportFile(d)(newTestRequestEvent(fileRequest("2025-03-05", "combined.xlsx"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("xlsx status = %d, want 200", rec.Code)
	}
}

func TestHandleRefresh(t *testing.T) {
	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reports/refresh", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()

		if err := HandleRefresh(newTestDeps(t))(newTestRequestEvent(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("HX-Trigger"), "reloaded") {
			t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
		}
	})

	t.Run("plain form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reports/refresh", nil)
		rec := httptest.NewRecorder()

		if err := HandleRefresh(newTestDeps(t))(newTestRequestEvent(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/reports" {
			t.Errorf("Location = %q", loc)
		}
	})
}

func TestHandleReportPage_ShowsFlash(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reports/refresh", nil)
	if err := HandleRefresh(d)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("refresh error: %v", err)
	}

	page := httptest.NewRequest(http.MethodGet, "/reports", nil)
	for _, c := range rec.Result().Cookies() {
		page.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	if err := HandleReportPage(d)(newTestRequestEvent(page, rec)); err != nil {
		t.Fatalf("page error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `<div class="flash success">Order sheet will be reloaded`) {
		t.Error("flash message from the refresh not shown")
	}
}
