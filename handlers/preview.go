package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"hotelorders/views"
)

// HandlePreviewPage shows the raw order sheet.
func HandlePreviewPage(d Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := d.Generator.Preview(e.Request.Context(), d.PreviewRows)
		if err != nil {
			status, msg := statusFor(err)
			return renderHTML(e, status, views.PreviewPage(nil, msg))
		}
		return renderHTML(e, http.StatusOK, views.PreviewPage(p, ""))
	}
}

// HandlePreviewJSON returns the raw sheet summary as JSON.
func HandlePreviewJSON(d Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := d.Generator.Preview(e.Request.Context(), d.PreviewRows)
		if err != nil {
			status, msg := statusFor(err)
			return e.JSON(status, map[string]string{"error": msg})
		}
		return e.JSON(http.StatusOK, p)
	}
}
