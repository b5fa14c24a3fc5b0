package validate

import (
	"testing"

	"hacfg/internal/ir"
)

func intp(v int) *int { return &v }

func TestValidateReportsDuplicateServerNames(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{
				Name: "app",
				Servers: []ir.Server{
					{Name: "app1", Address: "10.0.0.1"},
					{Name: "app1", Address: "10.0.0.2"},
				},
			},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for duplicate server names, got %d: %v", len(errs), errs)
	}
}

func TestValidateReportsDuplicateServerIDs(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{
				Name: "app",
				Servers: []ir.Server{
					{Name: "app1", ID: intp(1)},
					{Name: "app2", ID: intp(1)},
				},
			},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for duplicate server ids, got %d: %v", len(errs), errs)
	}
}

func TestValidateChecksServerWeightRange(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", Servers: []ir.Server{{Name: "app1", Weight: intp(257)}}},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for weight out of range, got %d: %v", len(errs), errs)
	}
}

func TestValidateChecksRiseAndFallMinimums(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", Servers: []ir.Server{{Name: "app1", Rise: intp(0), Fall: intp(0)}}},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 2 {
		t.Fatalf("expected two errors (rise and fall), got %d: %v", len(errs), errs)
	}
}

func TestValidateRejectsUnrecognizedHealthCheckMethod(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", HealthCheck: &ir.HealthCheck{Method: "FROBNICATE"}},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected one error for an unrecognized health-check method, got %d: %v", len(errs), errs)
	}
}

func TestValidateChecksHealthCheckExpectStatusRange(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", HealthCheck: &ir.HealthCheck{ExpectStatus: intp(999)}},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected one error for expect-status out of range, got %d: %v", len(errs), errs)
	}
}

func TestValidateChecksHashBalanceFactorRange(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", HashBalanceFactor: intp(50)},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected one error for hash-balance-factor out of range, got %d: %v", len(errs), errs)
	}
}

func TestValidateRejectsHTTPOnlyOptionInTCPMode(t *testing.T) {
	cfg := &ir.ConfigIR{
		Frontends: []*ir.Frontend{
			{
				Name: "web",
				ProxyCommon: ir.ProxyCommon{
					Mode:    "tcp",
					Options: []string{"httplog"},
				},
			},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected one error for an HTTP-only option under tcp mode, got %d: %v", len(errs), errs)
	}
}

func TestValidateRejectsTCPOnlyOptionInHTTPMode(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{
				Name: "app",
				ProxyCommon: ir.ProxyCommon{
					Mode:    "http",
					Options: []string{"tcplog"},
				},
			},
		},
	}
	errs, _ := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected one error for a TCP-only option under http mode, got %d: %v", len(errs), errs)
	}
}

func TestValidateWarnsOnUnreferencedTemplate(t *testing.T) {
	cfg := &ir.ConfigIR{
		Templates: map[string]*ir.Template{
			"unused-tmpl": {Name: "unused-tmpl"},
		},
	}
	_, warnings := Validate(cfg)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for an unreferenced template, got %d: %v", len(warnings), warnings)
	}
}

func TestValidateWarnsOnUnusedVariable(t *testing.T) {
	cfg := &ir.ConfigIR{
		Variables: map[string]*ir.Variable{
			"region": {Name: "region"},
		},
	}
	_, warnings := Validate(cfg)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for an unused variable, got %d: %v", len(warnings), warnings)
	}
}

func TestValidateWarnsOnFrontendWithNoBinds(t *testing.T) {
	cfg := &ir.ConfigIR{
		Frontends: []*ir.Frontend{{Name: "web"}},
	}
	_, warnings := Validate(cfg)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for a frontend with no binds, got %d: %v", len(warnings), warnings)
	}
}

func TestValidateWarnsOnBackendWithNoServers(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{{Name: "app"}},
	}
	_, warnings := Validate(cfg)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for a backend with no servers, got %d: %v", len(warnings), warnings)
	}
}

func TestValidateAcceptsWellFormedMinimalConfig(t *testing.T) {
	cfg := &ir.ConfigIR{
		Frontends: []*ir.Frontend{
			{
				Name:           "web",
				Binds:          []ir.Bind{{Address: "*:80"}},
				DefaultBackend: "app",
			},
		},
		Backends: []*ir.Backend{
			{Name: "app", Servers: []ir.Server{{Name: "app1", Address: "10.0.0.1"}}},
		},
	}
	errs, warnings := Validate(cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{
			{Name: "app", Servers: []ir.Server{{Name: "app1"}}},
		},
	}
	Validate(cfg)
	if len(cfg.Backends[0].Servers) != 1 || cfg.Backends[0].Servers[0].Name != "app1" {
		t.Fatal("expected Validate to leave the input IR's server slice untouched")
	}
}
