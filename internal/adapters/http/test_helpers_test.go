package httpserver

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/OliveiraNt/netbind/internal/application"
	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/infrastructure/repository"
	"github.com/OliveiraNt/netbind/internal/testutil"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var i18nOnce sync.Once

func initTest() {
	utils.InitLogger()
	i18nOnce.Do(config.InitI18n)
}

// buildColorsServer builds a colors Server seeded with red and blue.
func buildColorsServer(t *testing.T) (*Server, *testutil.FakePublisher) {
	t.Helper()
	initTest()
	repo := repository.NewColorRepository([]domain.Color{
		{Name: "red", Value: "#ff0000"},
		{Name: "blue", Value: "#0000ff"},
	})
	pub := testutil.NewFakePublisher()
	s, err := NewColors(application.NewColorService(repo, pub), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new colors server: %v", err)
	}
	return s, pub
}

// buildViewServer builds a view Server around a running engine. The
// engine stops when stop is called or the test ends.
func buildViewServer(t *testing.T, setup func(e *binding.Engine)) (s *Server, e *binding.Engine, stop func()) {
	t.Helper()
	initTest()
	e = binding.NewEngine()
	if setup != nil {
		setup(e)
	}
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = e.Run(ctx)
		close(stopped)
	}()
	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			<-stopped
		})
	}
	t.Cleanup(stop)

	s, err := NewView(e, "property", prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new view server: %v", err)
	}
	return s, e, stop
}

// chiCtxWithParam adds a single URL param to request context for handler funcs using chi.URLParam
func chiCtxWithParam(key, val string, req *http.Request) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}
