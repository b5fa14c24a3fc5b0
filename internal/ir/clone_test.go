package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intp(v int) *int   { return &v }
func boolp(v bool) *bool { return &v }

func sampleConfig() *ConfigIR {
	return &ConfigIR{
		Name:    "sample",
		Version: "1",
		Global: &Global{
			Daemon: true,
			Maxconn: intp(50000),
			Logs:    []LogTarget{{Target: "/dev/log", Facility: "local0", Level: "info"}},
			Setenv:  map[string]string{"FOO": "bar"},
		},
		Defaults: &Defaults{
			ProxyCommon: ProxyCommon{
				Mode:    "http",
				Options: []string{"httplog"},
				Timeouts: Timeouts{Connect: "5s"},
			},
			Retries: intp(3),
		},
		Backends: []*Backend{
			{
				Name: "app",
				ProxyCommon: ProxyCommon{
					Mode: "http",
				},
				Balance: "roundrobin",
				Servers: []Server{
					{Name: "app1", Address: "10.0.1.1", Port: intp(8080), Check: boolp(true)},
				},
				ErrorFile: map[int]string{503: "/errors/503.http"},
			},
		},
		Variables: map[string]*Variable{
			"region": {Name: "region", Value: Value{Kind: ValueString, Str: "us-east"}},
		},
		Templates: map[string]*Template{},
		HealthCheckTemplates: map[string]*HealthCheckTemplate{},
		HttpErrorsGroups:     map[string]*HttpErrorsGroup{},
	}
}

func TestCloneProducesDeepEqualCopy(t *testing.T) {
	original := sampleConfig()
	clone := original.Clone()

	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs from original (-original +clone):\n%s", diff)
	}
}

func TestCloneDoesNotAliasMutableState(t *testing.T) {
	original := sampleConfig()
	clone := original.Clone()

	*clone.Global.Maxconn = 1
	clone.Global.Logs[0].Target = "stdout"
	clone.Global.Setenv["FOO"] = "mutated"
	clone.Defaults.Options[0] = "tcplog"
	clone.Backends[0].Servers[0].Address = "10.0.1.2"
	*clone.Backends[0].Servers[0].Port = 9090
	clone.Backends[0].ErrorFile[503] = "/other.http"

	if *original.Global.Maxconn != 50000 {
		t.Errorf("mutating clone's Maxconn leaked into original: got %d", *original.Global.Maxconn)
	}
	if original.Global.Logs[0].Target != "/dev/log" {
		t.Errorf("mutating clone's Logs leaked into original: got %q", original.Global.Logs[0].Target)
	}
	if original.Global.Setenv["FOO"] != "bar" {
		t.Errorf("mutating clone's Setenv leaked into original: got %q", original.Global.Setenv["FOO"])
	}
	if original.Defaults.Options[0] != "httplog" {
		t.Errorf("mutating clone's Options leaked into original: got %q", original.Defaults.Options[0])
	}
	if original.Backends[0].Servers[0].Address != "10.0.1.1" {
		t.Errorf("mutating clone's Server leaked into original: got %q", original.Backends[0].Servers[0].Address)
	}
	if *original.Backends[0].Servers[0].Port != 8080 {
		t.Errorf("mutating clone's Server port leaked into original: got %d", *original.Backends[0].Servers[0].Port)
	}
	if original.Backends[0].ErrorFile[503] != "/errors/503.http" {
		t.Errorf("mutating clone's ErrorFile leaked into original: got %q", original.Backends[0].ErrorFile[503])
	}
}

func TestCloneNilConfigIsNil(t *testing.T) {
	var c *ConfigIR
	if got := c.Clone(); got != nil {
		t.Fatalf("expected nil Clone of nil *ConfigIR, got %#v", got)
	}
}
