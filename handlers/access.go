package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"hotelorders/views"
)

// HandleAccessPage renders the access-code form.
func HandleAccessPage() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		next := safeNext(e.Request.URL.Query().Get("next"))
		return renderHTML(e, http.StatusOK, views.AccessPage(next, ""))
	}
}

// HandleAccessSubmit checks the posted code and sets the access cookie.
func HandleAccessSubmit(code string, logger *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}
		next := safeNext(e.Request.FormValue("next"))

		if code == "" {
			return e.Redirect(http.StatusSeeOther, next)
		}
		given := e.Request.FormValue("code")
		if subtle.ConstantTimeCompare([]byte(given), []byte(code)) != 1 {
			logger.Warn("access denied", zap.String("remote", e.Request.RemoteAddr))
			return renderHTML(e, http.StatusUnauthorized, views.AccessPage(next, "That code is not right."))
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     accessCookie,
			Value:    accessToken(code),
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return e.Redirect(http.StatusSeeOther, next)
	}
}
