package module

import (
	"fmt"
	"testing"

	"surveyflow/internal/modkit/httpkit"
	"surveyflow/internal/platform/testkit"
)

type FooPort interface {
	Foo() int
}

type fooImpl struct{ v int }

func (f fooImpl) Foo() int { return f.v }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string               { return m.name }
func (m fakeModule) Ports() PortSet             { return m.ports }
func (m fakeModule) MountRoutes(httpkit.Router) {}

type Bundle struct {
	Foo FooPort
	Bar int
}

type hidden struct {
	foo FooPort
}

func TestPortsOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		ports  any
		wantOK bool
		want   int
	}{
		{"nil ports", nil, false, 0},
		{"direct", FooPort(fooImpl{v: 42}), true, 42},
		{"struct bundle", Bundle{Foo: fooImpl{v: 7}}, true, 7},
		{"pointer bundle", &Bundle{Foo: fooImpl{v: 8}}, true, 8},
		{"nil pointer bundle", (*Bundle)(nil), false, 0},
		{"unexported field ignored", hidden{foo: fooImpl{v: 1}}, false, 0},
		{"primitive", 123, false, 0},
	}
	for _, c := range cases {
		got, ok := PortsOf[FooPort](fakeModule{name: c.name, ports: c.ports})
		if ok != c.wantOK {
			t.Fatalf("%s: ok = %v, want %v", c.name, ok, c.wantOK)
		}
		if ok && got.Foo() != c.want {
			t.Fatalf("%s: Foo = %d, want %d", c.name, got.Foo(), c.want)
		}
	}

	if _, ok := PortsOf[FooPort](nil); ok {
		t.Fatalf("PortsOf(nil module) ok = true")
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	msg := func() (s string) {
		defer func() { s = fmt.Sprint(recover()) }()
		_ = MustPortsOf[FooPort](fakeModule{name: "surveys"})
		return ""
	}()
	testkit.MustContain(t, msg, "requested port not found on module surveys")

	if got := MustPortsOf[FooPort](fakeModule{ports: Bundle{Foo: fooImpl{v: 99}}}); got.Foo() != 99 {
		t.Fatalf("MustPortsOf = %d, want 99", got.Foo())
	}
}
