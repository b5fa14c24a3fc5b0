package lowering

import (
	"reflect"
	"testing"

	"hacfg/internal/parser"
)

func directiveFrom(t *testing.T, src string) *parser.Directive {
	t.Helper()
	file, errs := parser.Parse("config c {\n"+src+"\n}\n", "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(file.Config.Body) != 1 {
		t.Fatalf("expected exactly one directive, got %d", len(file.Config.Body))
	}
	return file.Config.Body[0]
}

func TestKeyStripsTrailingColon(t *testing.T) {
	d := directiveFrom(t, "connect: 5s")
	if got := key(d); got != "connect" {
		t.Errorf("key() = %q, want %q", got, "connect")
	}
}

func TestScalarJoinsArgsWithSpace(t *testing.T) {
	d := directiveFrom(t, "log /dev/log local0 info")
	if got := scalar(d); got != "/dev/log local0 info" {
		t.Errorf("scalar() = %q, want %q", got, "/dev/log local0 info")
	}
}

func TestListStripsBracketsAndCommas(t *testing.T) {
	d := directiveFrom(t, "hosts [a, b, c]")
	got := list(d)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list() = %v, want %v", got, want)
	}
}

func TestFieldMapBuildsKeyValuePairsFromBody(t *testing.T) {
	d := directiveFrom(t, "timeout {\n  connect: 5s\n  client: 10s\n}")
	got := fieldMap(d)
	want := map[string]string{"connect": "5s", "client": "10s"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fieldMap() = %v, want %v", got, want)
	}
}

func TestFieldMapOfEmptyBodyIsNil(t *testing.T) {
	d := directiveFrom(t, "mode http")
	if got := fieldMap(d); got != nil {
		t.Errorf("fieldMap() = %v, want nil", got)
	}
}

func TestSplitAddrPortWithNumericPort(t *testing.T) {
	addr, port := splitAddrPort("10.0.1.1:8080")
	if addr != "10.0.1.1" {
		t.Errorf("addr = %q, want %q", addr, "10.0.1.1")
	}
	if port == nil || *port != 8080 {
		t.Errorf("port = %v, want 8080", port)
	}
}

func TestSplitAddrPortWithoutPort(t *testing.T) {
	addr, port := splitAddrPort("10.0.1.1")
	if addr != "10.0.1.1" || port != nil {
		t.Errorf("got addr=%q port=%v, want addr unchanged and nil port", addr, port)
	}
}

func TestSplitAddrPortUnixSocketPath(t *testing.T) {
	addr, port := splitAddrPort("/var/run/app.sock")
	if addr != "/var/run/app.sock" || port != nil {
		t.Errorf("got addr=%q port=%v, want the path preserved whole", addr, port)
	}
}

func TestSplitAddrPortLeavesUnresolvedMarkerWhole(t *testing.T) {
	addr, port := splitAddrPort("10.0.0.1:${port}")
	if addr != "10.0.0.1:${port}" || port != nil {
		t.Errorf("got addr=%q port=%v, want the whole string kept for post-resolution re-split", addr, port)
	}
}

func TestBoolValRecognizesTruthyForms(t *testing.T) {
	for _, s := range []string{"true", "on", "1", "yes", "enabled", "TRUE"} {
		if !boolVal(s) {
			t.Errorf("boolVal(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"false", "off", "0", "no", ""} {
		if boolVal(s) {
			t.Errorf("boolVal(%q) = true, want false", s)
		}
	}
}

func TestNameAndRestSplitsFirstArgument(t *testing.T) {
	d := directiveFrom(t, "server app1 10.0.1.1:8080")
	name, rest := nameAndRest(d)
	if name != "app1" {
		t.Errorf("name = %q, want %q", name, "app1")
	}
	if len(rest) != 1 || rest[0].Value != "10.0.1.1:8080" {
		t.Errorf("rest = %v, want one token '10.0.1.1:8080'", rest)
	}
}

func TestTemplateRefRecognizesAtPrefix(t *testing.T) {
	d := directiveFrom(t, "@std-check")
	ref, ok := templateRef(d.Name, &ctx{path: "test.hacfg"})
	if !ok {
		t.Fatal("expected templateRef to recognize an '@name' token")
	}
	if ref.Name != "std-check" {
		t.Errorf("ref.Name = %q, want %q", ref.Name, "std-check")
	}
}
