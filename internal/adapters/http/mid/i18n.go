// Package mid provides the HTTP middleware shared by the netbind servers:
// locale detection, request logging and Prometheus request metrics.
package mid

import (
	"net/http"
	"time"

	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/invopop/ctxi18n"
)

const langCookie = "lang"

// I18n sets the request locale from the lang cookie, the lang query
// parameter or the Accept-Language header, in that order.
func I18n(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lang string

		if c, err := r.Cookie(langCookie); err == nil {
			lang = c.Value
		}
		if lang == "" {
			lang = r.URL.Query().Get("lang")
		}
		if lang == "" {
			lang = r.Header.Get("Accept-Language")
		}

		ctx, err := ctxi18n.WithLocale(r.Context(), lang)
		if err != nil || ctx == nil {
			utils.Logger.Warn("failed to set locale", "lang", lang, "err", err)
			next.ServeHTTP(w, r)
			return
		}

		if r.URL.Query().Has("lang") {
			if l := ctxi18n.Locale(ctx); l != nil {
				http.SetCookie(w, &http.Cookie{
					Name:     langCookie,
					Value:    l.Code().String(),
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				})
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
