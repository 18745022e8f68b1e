package httpserver

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
)

type viewPage struct {
	Lang       string
	Example    string
	SocketPath string
}

func (s *Server) uiView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := viewPage{Lang: "en", Example: s.example, SocketPath: "/ws"}
	if l := ctxi18n.Locale(ctx); l != nil {
		page.Lang = l.Code().String()
	}

	funcs := template.FuncMap{
		"t": func(key string, args ...any) string { return i18n.T(ctx, key, args...) },
	}

	var buf bytes.Buffer
	if err := s.engine.RenderView(&buf, page, funcs); err != nil {
		utils.Logger.Error("render view failed", "view", s.engine.ViewName(), "err", err)
		http.Error(w, "render view failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
