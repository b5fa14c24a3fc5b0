package serializer

import (
	"strings"
	"testing"

	"hacfg/internal/ir"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

// minimalConfig builds the IR equivalent of the "Native configuration
// output" example in spec.md §6, so its serialized form can be checked
// against that example bit-for-bit.
func minimalConfig() *ir.ConfigIR {
	return &ir.ConfigIR{
		Name: "minimal",
		Global: &ir.Global{
			Daemon:  true,
			Maxconn: intp(50000),
			Logs:    []ir.LogTarget{{Target: "/dev/log", Facility: "local0", Level: "info"}},
		},
		Defaults: &ir.Defaults{
			ProxyCommon: ir.ProxyCommon{
				Mode:     "http",
				Timeouts: ir.Timeouts{Connect: "5s"},
			},
		},
		Frontends: []*ir.Frontend{
			{
				Name:           "web",
				Binds:          []ir.Bind{{Address: "*:80"}},
				DefaultBackend: "app",
			},
		},
		Backends: []*ir.Backend{
			{
				Name:    "app",
				Balance: "roundrobin",
				Servers: []ir.Server{
					{
						Name:     "app1",
						Address:  "10.0.1.1",
						Port:     intp(8080),
						Check:    boolp(true),
						Interval: "3s",
						Rise:     intp(5),
						Fall:     intp(2),
					},
				},
			},
		},
	}
}

func TestSerializeMinimalConfigMatchesSpecExample(t *testing.T) {
	wantLines := []string{
		"# generated by hacfg — do not edit by hand",
		"# name: minimal",
		"",
		"global",
		"    daemon",
		"    maxconn 50000",
		"    log /dev/log local0 info",
		"",
		"defaults",
		"    mode http",
		"    timeout connect 5s",
		"",
		"frontend web",
		"    bind *:80",
		"    default_backend app",
		"",
		"backend app",
		"    balance roundrobin",
		"    server app1 10.0.1.1:8080 check inter 3s rise 5 fall 2",
		"",
	}
	want := strings.Join(wantLines, "\n") + "\n"

	got, err := Serialize(minimalConfig())
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Serialize output mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	cfg := minimalConfig()
	first, err := Serialize(cfg)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	second, err := Serialize(cfg)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if first != second {
		t.Fatalf("two Serialize invocations on the same IR produced different output")
	}
}

func TestSerializeNilConfigIsCodeGenerationError(t *testing.T) {
	_, err := Serialize(nil)
	if err == nil {
		t.Fatal("expected an error for a nil ConfigIR")
	}
}

// TestSerializeSortsMapKeyedDirectives exercises spec.md §8 invariant 1:
// even though Go map iteration order is randomized, directives built from
// maps (global's setenv/cpu-map/device-detection, a backend's
// errorfile/errorloc) must always render in the same (sorted) order.
func TestSerializeSortsMapKeyedDirectives(t *testing.T) {
	cfg := &ir.ConfigIR{
		Global: &ir.Global{
			Setenv: map[string]string{"ZETA": "z", "ALPHA": "a", "MU": "m"},
		},
	}
	for i := 0; i < 5; i++ {
		out, err := Serialize(cfg)
		if err != nil {
			t.Fatalf("Serialize returned error: %v", err)
		}
		idxAlpha := strings.Index(out, "setenv ALPHA")
		idxMu := strings.Index(out, "setenv MU")
		idxZeta := strings.Index(out, "setenv ZETA")
		if !(idxAlpha < idxMu && idxMu < idxZeta) {
			t.Fatalf("expected setenv lines sorted ALPHA < MU < ZETA, got:\n%s", out)
		}
	}
}

func TestWriteBackendHealthCheckAndCompression(t *testing.T) {
	b := &ir.Backend{
		Name: "app",
		HealthCheck: &ir.HealthCheck{
			Method:       "GET",
			URI:          "/health",
			Version:      "HTTP/1.1",
			ExpectStatus: intp(200),
		},
		Compression: &ir.Compression{
			Algorithms: []string{"gzip", "deflate"},
			Types:      []string{"text/html", "text/plain"},
			Offload:    true,
		},
	}
	w := &writer{}
	writeBackend(w, b)
	out := w.String()

	for _, want := range []string{
		"option httpchk GET /health HTTP/1.1",
		"http-check expect status 200",
		"compression algo gzip deflate",
		"compression type text/html text/plain",
		"compression offload",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatRuleWithConditionAndNamedParams(t *testing.T) {
	r := ir.Rule{
		Action:    "deny",
		Params:    []string{"deny_status", "403"},
		Named:     map[string]string{"zeta": "2", "alpha": "1"},
		Condition: "if is_blocked",
	}
	got := formatRule("http-request", r)
	want := "http-request deny deny_status 403 alpha=1 zeta=2 if is_blocked"
	if got != want {
		t.Fatalf("formatRule() = %q, want %q", got, want)
	}
}

func TestFormatACL(t *testing.T) {
	a := ir.ACL{Name: "is_api", Criterion: "path_beg", Values: []string{"/api"}}
	got := formatACL(a)
	want := "acl is_api path_beg /api"
	if got != want {
		t.Fatalf("formatACL() = %q, want %q", got, want)
	}
}

func TestWriteErrorMapSortsNumericCodes(t *testing.T) {
	b := &ir.Backend{
		Name: "app",
		ErrorFile: map[int]string{
			503: "/503.http",
			404: "/404.http",
			500: "/500.http",
		},
	}
	w := &writer{}
	writeBackend(w, b)
	out := w.String()

	idx404 := strings.Index(out, "errorfile 404")
	idx500 := strings.Index(out, "errorfile 500")
	idx503 := strings.Index(out, "errorfile 503")
	if !(idx404 < idx500 && idx500 < idx503) {
		t.Fatalf("expected errorfile lines sorted 404 < 500 < 503, got:\n%s", out)
	}
}
