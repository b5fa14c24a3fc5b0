// Package ir defines ConfigIR, the intermediate representation every
// pipeline stage after lowering reads and rewrites. The tree is strictly
// owned: every child belongs to exactly one parent, and cross-references
// (default_backend, use_backend, use-server) are plain strings resolved
// only by the validator. No node stores a location pointer back to its
// parent.
package ir

import "hacfg/internal/diag"

// ConfigIR is the root of the tree. A pipeline stage that "transforms the
// IR" takes ownership of one ConfigIR and returns a new one; see Clone.
type ConfigIR struct {
	Name    string
	Version string
	Loc     diag.Location

	Global   *Global
	Defaults *Defaults

	Frontends []*Frontend
	Backends  []*Backend
	Listens   []*Listen
	Peers     []*Peers
	Resolvers []*Resolvers
	Mailers   []*Mailers

	Variables            map[string]*Variable
	Templates            map[string]*Template
	HealthCheckTemplates map[string]*HealthCheckTemplate
	HttpErrorsGroups     map[string]*HttpErrorsGroup

	LuaScripts []*LuaScript
	Imports    []string
}

// Global holds process-wide settings (spec.md §3 "Global").
type Global struct {
	Loc diag.Location

	Daemon         bool
	User           string
	Group          string
	UID            *int
	GID            *int
	MasterWorker   bool
	HardStopAfter  string // duration, verbatim

	Maxconn        *int
	MaxconnRate    *int
	MaxsessRate    *int
	MaxsslRate     *int
	Maxpipes       *int
	FDHardLimit    *int
	Maxzlibmem     *int
	StrictLimits   *bool
	Nbproc         *int
	Nbthread       *int
	ThreadGroups   *int
	NumaCPUMapping *bool

	Logs          []LogTarget
	LogTag        string
	LogSendHostname *string

	CABase                    string
	CrtBase                   string
	KeyBase                   string
	SSLDefaultBindCiphers     string
	SSLDefaultBindCiphersuites string
	SSLDefaultServerCiphers   string
	SSLDefaultServerCiphersuites string
	SSLDefaultBindCurves      string
	SSLDefaultSignatureAlgorithms string
	SSLDefaultBindOptions     []string
	SSLDhParamFile            string
	SSLEngine                 string
	SSLServerVerify           string
	SSLSecurityLevel          *int
	SSLProvider               string
	SSLProviderPath           string

	DeviceDetection map[string]string // third-party library name -> config path/string

	StatsSockets []StatsSocket

	ServerStateBase          string
	ServerStateFile          string
	LoadServerStateFromFile  string

	Setenv   map[string]string
	Presetenv map[string]string
	Resetenv []string
	Unsetenv []string

	CPUMap map[string]string // process-id string -> cpu-set string

	// Tuning holds every tune.*/profiling.* directive. Values are stored as
	// their original textual form; the serializer emits them verbatim.
	Tuning map[string]string

	Programs []Program
}

// LogTarget is one "log ..." directive line.
type LogTarget struct {
	Target   string // address, "/dev/log", or "stdout"/"stderr"
	Facility string
	Level    string
	MinLevel string
}

// StatsSocket is one "stats socket ..." directive.
type StatsSocket struct {
	Path    string
	Options map[string]string
}

// Program is a "program NAME { command ... }" block under Global.
type Program struct {
	Name    string
	Command []string
}

// Defaults holds the "defaults" section (spec.md §3 "Defaults"). It embeds
// ProxyCommon for the directives shared with Frontend/Backend/Listen.
type Defaults struct {
	Loc diag.Location

	ProxyCommon

	Retries          *int
	EmailAlert       *EmailAlert
	PersistRDPCookie string
}

// Timeouts holds every timeout.* directive common to Defaults and every
// proxy section.
type Timeouts struct {
	Connect      string
	Client       string
	Server       string
	Check        string
	HTTPRequest  string
	HTTPKeepAlive string
	Tunnel       string
	ClientFin    string
	ServerFin    string
	Tarpit       string
}

// EmailAlert is the "email-alert ..." block.
type EmailAlert struct {
	Mailers string
	From    string
	To      string
	Level   string
}
