package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "surveyflow/internal/platform/errors"
)

// run executes a Handler and returns status code and body
func run(h Handler, r *http.Request) (int, string) {
	rec := httptest.NewRecorder()
	h(rec, r)
	res := rec.Result()
	defer func() { _ = res.Body.Close() }()

	b, _ := io.ReadAll(res.Body)
	return rec.Code, string(b)
}

func TestHandle_PassThrough(t *testing.T) {
	cases := []struct {
		name string
		resp Response
		code int
		body string
	}{
		{"ok", OK("made"), http.StatusOK, "made"},
		{"accepted", Accepted(map[string]string{"responseId": "r1"}), http.StatusAccepted, `"responseId":"r1"`},
		{"status", Status(http.StatusServiceUnavailable, "down"), http.StatusServiceUnavailable, "down"},
		{"error", Error(perr.NotFoundf("nope")), http.StatusNotFound, "nope"},
		{"foreign error", Error(errors.New("boom")), http.StatusInternalServerError, "boom"},
	}
	for _, c := range cases {
		h := Handle(func(*http.Request) Response { return c.resp })
		code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
		if code != c.code {
			t.Fatalf("%s: status = %d, want %d", c.name, code, c.code)
		}
		if !strings.Contains(body, c.body) {
			t.Fatalf("%s: body = %q, want contains %q", c.name, body, c.body)
		}
	}
}

func TestNoContent(t *testing.T) {
	code, body := run(Handle(func(*http.Request) Response { return NoContent() }), httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusNoContent || body != "" {
		t.Fatalf("NoContent = %d %q, want 204 and empty body", code, body)
	}
}

func TestCall_WrapsValueAndError(t *testing.T) {
	h := Call(func(*http.Request) (any, error) { return map[string]string{"a": "1"}, nil })
	code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusOK || !strings.Contains(body, `"a":"1"`) {
		t.Fatalf("Call = %d %q", code, body)
	}

	h = Call(func(*http.Request) (any, error) { return nil, perr.Unavailablef("queue closed") })
	if code, _ := run(h, httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusServiceUnavailable {
		t.Fatalf("Call(err) status = %d, want 503", code)
	}
}

type in struct {
	Name string `json:"name" validate:"required,max=4"`
}

func TestJSON_DecodesAndValidates(t *testing.T) {
	h := JSON(func(_ *http.Request, v in) (any, error) { return Accepted(v.Name), nil })

	cases := []struct {
		body string
		code int
	}{
		{`{"name":"ok"}`, http.StatusAccepted},
		{`{"name":"toolong"}`, http.StatusBadRequest},
		{`{`, http.StatusBadRequest},
		{``, http.StatusBadRequest},
	}
	for _, c := range cases {
		code, body := run(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(c.body)))
		if code != c.code {
			t.Fatalf("JSON(%q) status = %d, want %d body=%s", c.body, code, c.code, body)
		}
	}
}
