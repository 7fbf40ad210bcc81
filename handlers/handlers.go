// Package handlers serves the report site on the PocketBase router.
package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"hotelorders/services"
)

// Deps is what every handler needs.
type Deps struct {
	Generator *services.Generator
	// SecondaryLabel heads the secondary-name column in HTML tables.
	SecondaryLabel string
	PreviewRows    int
	Logger         *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Register mounts every route on the router of se.
func Register(se *core.ServeEvent, d Deps, accessCode string) {
	se.Router.BindFunc(AccessGate(accessCode))

	se.Router.GET("/access", HandleAccessPage())
	se.Router.POST("/access", HandleAccessSubmit(accessCode, d.logger()))

	se.Router.GET("/reports", HandleReportPage(d))
	se.Router.POST("/reports/refresh", HandleRefresh(d))
	se.Router.GET("/reports/{date}/{file}", HandleReportFile(d))

	se.Router.GET("/preview", HandlePreviewPage(d))
	se.Router.GET("/preview.json", HandlePreviewJSON(d))

	se.Router.GET("/", func(e *core.RequestEvent) error {
		return e.Redirect(http.StatusFound, "/reports")
	})
}

// statusFor maps a pipeline error onto an HTTP status and a message fit
// for the page.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrTimedOut):
		return http.StatusGatewayTimeout, "Building the report took too long. Please try again."
	case errors.Is(err, services.ErrSourceUnavailable):
		return http.StatusBadGateway, "The order sheet could not be read. Please try again later."
	}
	return http.StatusInternalServerError, "Something went wrong while building the report."
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

func renderHTML(e *core.RequestEvent, status int, c templ.Component) error {
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	e.Response.WriteHeader(status)
	return c.Render(e.Request.Context(), e.Response)
}
