package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"surveyflow/internal/modkit"
	phttp "surveyflow/internal/platform/net/http"
	kit "surveyflow/internal/platform/testkit"
	sdom "surveyflow/internal/services/surveys/domain"

	"github.com/go-chi/chi/v5"
)

type enq struct{}

func (enq) Enqueue(context.Context, sdom.Event) error { return nil }

type nps struct{}

func (nps) Snapshot() []sdom.ClientNps { return []sdom.ClientNps{} }

type ins struct{}

func (ins) Latest() []sdom.ClientInsights { return []sdom.ClientInsights{} }

func TestNew_RequiresPorts(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.Deps{}) })
}

func TestModule_MountsRoutes(t *testing.T) {
	extra := 0
	m := New(modkit.Deps{},
		modkit.WithPorts(Ports{Enqueuer: enq{}, Metrics: nps{}, Insights: ins{}}),
		modkit.WithRegister(func(r phttp.Router) {
			r.Get("/extra", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { extra++; w.WriteHeader(204) })
		}),
	)
	if m.Name() != "surveys-api" {
		t.Fatalf("Name = %q", m.Name())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	for _, path := range []string{"/metrics/nps", "/metrics/insights", "/extra"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rr.Code >= 300 {
			t.Fatalf("GET %s = %d", path, rr.Code)
		}
	}
	if extra != 1 {
		t.Fatalf("external register hits = %d, want 1", extra)
	}
}

func TestModule_Prefix(t *testing.T) {
	m := New(modkit.Deps{},
		modkit.WithPrefix("/v1"),
		modkit.WithPorts(Ports{Enqueuer: enq{}, Metrics: nps{}, Insights: ins{}}),
	)
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/v1/metrics/nps", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("GET /v1/metrics/nps = %d", rr.Code)
	}
}
