package config

import (
	"testing"
	"time"

	kit "surveyflow/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	survey := New().Prefix("SURVEY_")
	if got := survey.key("QUEUE_CAPACITY"); got != "SURVEY_QUEUE_CAPACITY" {
		t.Fatalf("key() = %q, want %q", got, "SURVEY_QUEUE_CAPACITY")
	}
	if got := survey.Prefix("ENCRYPTION_").key("KEY"); got != "SURVEY_ENCRYPTION_KEY" {
		t.Fatalf("nested key() = %q, want %q", got, "SURVEY_ENCRYPTION_KEY")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q, want %q", got, "postgres://x")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_N", " 8 ")
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d, want 8", got)
	}
	t.Setenv("CFGT_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_WS", "   ")
	kit.MustNotPanic(t, func() { c.Require("A") })
	kit.MustPanic(t, func() { c.Require("A", "WS") })
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want 9", got)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want 7", got)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad = %d, want 3", got)
	}
}

func TestMayIntMin(t *testing.T) {
	c := New().Prefix("SURVEY_")
	cases := []struct {
		val  string
		def  int
		min  int
		want int
	}{
		{"", 5, 1, 5},
		{"3", 5, 1, 3},
		{"1", 5, 1, 1},
		{"0", 5, 1, 5},
		{"-10", 2000, 0, 2000},
		{"0", 2000, 0, 0},
		{"junk", 60, 0, 60},
	}
	for _, tc := range cases {
		t.Setenv("SURVEY_X", tc.val)
		if got := c.MayIntMin("X", tc.def, tc.min); got != tc.want {
			t.Fatalf("MayIntMin(%q, def=%d, min=%d) = %d, want %d", tc.val, tc.def, tc.min, got, tc.want)
		}
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_F", "false")
	if c.MayBool("F", true) {
		t.Fatalf("MayBool false expected")
	}
	t.Setenv("B_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration default = %v, want 1m", got)
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want 150ms", got)
	}
	t.Setenv("DUR_BAD", "soon")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad = %v, want 1m", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_ORIGINS", " http://a, http://b , ,")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CSV_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all blank = %#v, want default", got)
	}
}
