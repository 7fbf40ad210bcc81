package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

const accessCookie = "order_access"

// accessToken is what the access cookie holds for code.
func accessToken(code string) string {
	sum := sha256.Sum256([]byte("hotelorders:" + code))
	return hex.EncodeToString(sum[:])
}

// hasAccess reports whether the request carries the cookie for code.
func hasAccess(r *http.Request, code string) bool {
	c, err := r.Cookie(accessCookie)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(accessToken(code))) == 1
}

// ungated reports paths the gate leaves to PocketBase's own auth: the admin
// UI, where operators enter order rows, and the REST API.
func ungated(path string) bool {
	return path == "/access" || path == "/_" ||
		strings.HasPrefix(path, "/_/") || strings.HasPrefix(path, "/api/")
}

// AccessGate sends every request to the report pages without the access
// cookie to /access. An empty code disables the gate.
func AccessGate(code string) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if code == "" || ungated(e.Request.URL.Path) || hasAccess(e.Request, code) {
			return e.Next()
		}

		if e.Request.Method != http.MethodGet {
			if isHTMX(e) {
				return ErrorToast(e, http.StatusUnauthorized, "Access code required")
			}
			return e.String(http.StatusUnauthorized, "Access code required")
		}
		if isHTMX(e) {
			// A plain redirect would be swapped into the page.
			e.Response.Header().Set("HX-Redirect", "/access")
			return e.NoContent(http.StatusUnauthorized)
		}
		next := url.QueryEscape(e.Request.URL.RequestURI())
		return e.Redirect(http.StatusFound, "/access?next="+next)
	}
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/reports"
	}
	return next
}
