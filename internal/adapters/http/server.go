package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/OliveiraNt/netbind/internal/adapters/http/mid"
	"github.com/OliveiraNt/netbind/internal/adapters/http/ui"
	"github.com/OliveiraNt/netbind/internal/application"
	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	staticCacheDuration = 7 * 24 * time.Hour
	shutdownTimeout     = 10 * time.Second
	sessionBacklog      = 256
)

// Server provides the color REST API and the view endpoints. Either side
// may be absent; only the routes of the configured side are mounted.
type Server struct {
	colors  *application.ColorService
	engine  *binding.Engine
	example string

	registry *prometheus.Registry
	metrics  *mid.Metrics
}

// NewColors creates the REST color server.
func NewColors(colors *application.ColorService, reg *prometheus.Registry) (*Server, error) {
	return newServer(&Server{colors: colors}, reg)
}

// NewView creates the server delivering the view document and its
// websocket session for the named example.
func NewView(engine *binding.Engine, example string, reg *prometheus.Registry) (*Server, error) {
	return newServer(&Server{engine: engine, example: example}, reg)
}

func newServer(s *Server, reg *prometheus.Registry) (*Server, error) {
	if reg == nil {
		return s, nil
	}
	m, err := mid.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	s.registry = reg
	s.metrics = m
	return s, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mid.RequestLogger)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}

	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	if s.colors != nil {
		r.Route("/colors", func(r chi.Router) {
			r.Get("/", s.apiListColors)
			r.Post("/", s.apiCreateColor)
			r.Get("/{name}", s.apiGetColor)
			r.Put("/{name}", s.apiUpdateColor)
			r.Delete("/{name}", s.apiDeleteColor)
		})
	}

	if s.engine != nil {
		r.Group(func(r chi.Router) {
			r.Use(mid.I18n)
			r.Handle("/static/*", http.StripPrefix("/static/", StaticWithCache(ui.StaticFiles, staticCacheDuration)))
			r.Get("/lang", ChangeLanguage)
			r.Get("/", s.uiView)
			r.Get("/ws", s.wsSession)
		})
	}

	return otelhttp.NewHandler(r, "netbind",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Run serves h on addr until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("HTTP server shutting down", "addr", addr)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StaticWithCache serves files from fsys applying a public max-age cache header.
func StaticWithCache(fsys fs.FS, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)[1:]
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
		http.ServeFileFS(w, r, fsys, name)
	}
}

// ChangeLanguage stores the lang query parameter in a cookie and returns
// to the previous page.
func ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "lang",
		Value:    lang,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   31536000,
	})

	ref := r.Header.Get("Referer")
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}
