package net_test

import (
	"net/http"
	"testing"

	perr "surveyflow/internal/platform/errors"
	pnet "surveyflow/internal/platform/net"
)

func TestReplyHelpers(t *testing.T) {
	type result struct {
		status int
		w      pnet.Wire
	}
	wrap := func(st int, w pnet.Wire) result { return result{st, w} }

	cases := []struct {
		name string
		got  result
		want int
	}{
		{"ok", wrap(pnet.OK([]int{1}, "r1")), http.StatusOK},
		{"accepted", wrap(pnet.Accepted(map[string]string{"responseId": "x"}, "r1")), http.StatusAccepted},
		{"reply", wrap(pnet.Reply(http.StatusServiceUnavailable, "report", "r1")), http.StatusServiceUnavailable},
	}
	for _, c := range cases {
		if c.got.status != c.want || c.got.w.StatusCode != c.want || c.got.w.Status != http.StatusText(c.want) {
			t.Fatalf("%s: status = %d wire %+v, want %d", c.name, c.got.status, c.got.w, c.want)
		}
		if c.got.w.RequestID != "r1" || c.got.w.Data == nil || c.got.w.Error != "" {
			t.Fatalf("%s: wire = %+v", c.name, c.got.w)
		}
	}
}

func TestError(t *testing.T) {
	st, w := pnet.Error(nil, "r")
	if st != http.StatusOK || w.Error != "" {
		t.Fatalf("Error(nil) = %d %+v", st, w)
	}

	st, w = pnet.Error(perr.Unavailablef("queue closed"), "r2")
	if st != http.StatusServiceUnavailable || w.Code != perr.ErrorCodeUnavailable || w.Error != "queue closed" {
		t.Fatalf("Error(unavailable) = %d %+v", st, w)
	}
	if w.StatusCode != st || w.RequestID != "r2" || w.Data != nil {
		t.Fatalf("Error envelope = %+v", w)
	}
}
