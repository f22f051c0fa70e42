package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "surveyflow/internal/platform/net/http"
	"surveyflow/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func responsesOf(t *testing.T, spec map[string]any, path, method string) map[string]any {
	t.Helper()
	op := spec["paths"].(map[string]any)[path].(map[string]any)[method].(map[string]any)
	return op["responses"].(map[string]any)
}

func TestSpec_EmbeddedDocument(t *testing.T) {
	testkit.Serial(t)
	t.Cleanup(reset)

	spec, err := Spec("/api")
	if err != nil {
		t.Fatalf("Spec err = %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v, want 3.0.3", spec["openapi"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api" {
		t.Fatalf("servers = %v", servers)
	}

	for _, p := range []struct{ path, method string }{
		{"/surveys/responses", "post"},
		{"/metrics/nps", "get"},
		{"/metrics/insights", "get"},
	} {
		resps := responsesOf(t, spec, p.path, p.method)
		if _, ok := resps["500"]; !ok {
			t.Fatalf("%s %s missing default 500", p.method, p.path)
		}
		if _, ok := resps["400"]; !ok {
			t.Fatalf("%s %s missing default 400", p.method, p.path)
		}
	}
	if _, ok := responsesOf(t, spec, "/surveys/responses", "post")["202"]; !ok {
		t.Fatal("submit is missing its 202 response")
	}

	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("ErrorResponse schema missing")
	}
}

func TestEnsureServers_Table(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
		want string
	}{
		{"swagger2 lifted", map[string]any{"swagger": "2.0"}, "3.0.3"},
		{"3.1 downgraded", map[string]any{"openapi": "3.1.0"}, "3.0.3"},
		{"missing set", map[string]any{}, "3.0.3"},
		{"3.0.1 kept", map[string]any{"openapi": "3.0.1"}, "3.0.1"},
	}
	for _, c := range cases {
		ensureServers(c.in, "/x")
		if c.in["openapi"] != c.want {
			t.Fatalf("%s: openapi = %v, want %v", c.name, c.in["openapi"], c.want)
		}
		if _, ok := c.in["swagger"]; ok {
			t.Fatalf("%s: swagger key kept", c.name)
		}
		if _, ok := c.in["servers"]; !ok {
			t.Fatalf("%s: servers missing", c.name)
		}
	}
}

func TestRegister_MutatorsApplied(t *testing.T) {
	testkit.Serial(t)
	t.Cleanup(reset)

	Register(nil)
	Register(func(spec map[string]any) { spec["x-mutated"] = true })

	spec, err := Spec("/api")
	if err != nil {
		t.Fatalf("Spec err = %v", err)
	}
	if spec["x-mutated"] != true {
		t.Fatal("mutator not applied")
	}
}

func TestMount(t *testing.T) {
	testkit.Serial(t)
	t.Cleanup(reset)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d, want 200", rr.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("/api/docs status = %d, want 308", rr.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false)
	rr = httptest.NewRecorder()
	off.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled doc.json status = %d, want 404", rr.Code)
	}
}

func TestServeDocJSON_BadDocument(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })

	rr := httptest.NewRecorder()
	serveDocJSON("/api")(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}
