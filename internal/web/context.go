package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/vendorboard/internal/core"
)

// Cookie names for the per-browser view state.
const (
	viewCookie  = "vb_view"
	themeCookie = "vb_theme"
)

// viewCookieMaxAge outlives the default view TTL; the server prunes first.
const viewCookieMaxAge = 30 * 24 * time.Hour

// viewState puts the browser's view id and theme on the request context.
// Requests without a valid view cookie are issued a fresh id.
func (s *Server) viewState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewID := ""
		if c, err := r.Cookie(viewCookie); err == nil && core.ValidViewID(c.Value) {
			viewID = c.Value
		} else {
			viewID = core.NewViewID()
			s.setCookie(w, viewCookie, viewID)
		}
		ctx = core.WithViewID(ctx, viewID)

		theme := s.opts.DefaultTheme
		if c, err := r.Cookie(themeCookie); err == nil {
			if t, ok := core.ParseTheme(c.Value); ok {
				theme = t
			}
		}
		ctx = core.WithTheme(ctx, theme)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(viewCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
