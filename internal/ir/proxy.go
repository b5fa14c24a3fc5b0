package ir

import "hacfg/internal/diag"

// ProxyCommon holds the directives lawful in every proxy-like section
// (Defaults, Frontend, Backend, Listen), per spec.md §3 "Common to all
// three".
type ProxyCommon struct {
	Mode string // "http", "tcp", "health", ""=unset

	Options []string // e.g. "httplog", "forwardfor" — order preserved
	Logs    []LogTarget

	LogFormat      string
	LogFormatSD    string
	ErrorLogFormat string
	LogTag         string
	LogSteps       *int

	ACLs []ACL

	HTTPRequestRules       []Rule
	HTTPResponseRules      []Rule
	HTTPAfterResponseRules []Rule
	TCPRequestRules        []Rule
	TCPResponseRules       []Rule
	HTTPCheckRules         []Rule
	TCPCheckRules          []Rule

	Filters []string

	Description string
	GUID        string

	Maxconn  *int
	Backlog  *int
	Fullconn *int

	Timeouts Timeouts

	EmailAlert *EmailAlert

	// TemplateRefs holds unresolved `@name` spreads on this section itself
	// (as opposed to on an individual server); consumed by the Template
	// Expander.
	TemplateRefs []TemplateRef

	// ServerLoops and RuleLoops hold not-yet-unrolled `for` blocks whose
	// bodies produce servers or rules respectively; consumed by the Loop
	// Unroller, which appends their expansions to Servers/the matching
	// rule list and then clears these slices.
	ServerLoops []ForLoop
	RuleLoops   []ForLoop

	Loc diag.Location
}

// ACL is a named boolean predicate (spec.md GLOSSARY "ACL").
type ACL struct {
	Name      string
	Criterion string
	Values    []string
	Loc       diag.Location
}

// Frontend accepts client connections and dispatches to a backend.
type Frontend struct {
	Name string
	ProxyCommon

	Binds           []Bind
	DefaultBackend  string
	MonitorURI      string
	MonitorNet      []string
	MonitorFailRules []Rule

	StatsEnable  bool
	StatsURI     string
	StatsOptions map[string]string

	DeclareCaptures []Capture

	ForcePersistRules  []Rule
	IgnorePersistRules []Rule

	UseBackendRules []Rule

	StickTable *StickTable

	QuicInitialRules []Rule
}

// Backend is a pool of upstream servers with a load-balancing policy.
type Backend struct {
	Name string
	ProxyCommon

	Balance             string
	HashType            string
	HashBalanceFactor   *int

	Servers         []Server
	DefaultServer   *Server
	ServerTemplates []ServerTemplate

	HealthCheck *HealthCheck
	Compression *Compression

	Dispatch string

	ErrorLoc    map[int]string // status -> URI (errorloc)
	ErrorLoc302 map[int]string
	ErrorLoc303 map[int]string
	ErrorFile   map[int]string // status -> path
	ErrorFiles  string         // named errorfiles group reference

	HTTPReuse         string
	RetryOn           []string
	HTTPSendNameHeader string

	LoadServerStateFromFile string
	ServerStateFileName     string

	UseServerRules []Rule

	StickTable *StickTable
}

// Listen combines Frontend and Backend capabilities.
type Listen struct {
	Name string
	ProxyCommon

	Binds          []Bind
	DefaultBackend string

	Balance           string
	HashType          string
	HashBalanceFactor *int

	Servers         []Server
	DefaultServer   *Server
	ServerTemplates []ServerTemplate

	HealthCheck *HealthCheck
	Compression *Compression

	ErrorFile  map[int]string
	ErrorFiles string

	UseServerRules  []Rule
	UseBackendRules []Rule

	StickTable *StickTable

	QuicInitialRules []Rule
}

// HealthCheck groups a backend/listen's "option httpchk"/"http-check"
// configuration that doesn't fit the per-rule HTTPCheckRules list.
type HealthCheck struct {
	Method         string
	URI            string
	Version        string
	ExpectStatus   *int
	Interval       string
}

// Compression is a backend/listen's "compression ..." block.
type Compression struct {
	Algorithms []string
	Types      []string
	Offload    bool
}

// Capture is a "declare capture request/response len N" directive.
type Capture struct {
	Direction string // "request" or "response"
	Len       int
}

// StickTable is the "stick-table ..." directive on a backend/listen.
type StickTable struct {
	Type    string
	Length  *int
	Size    string
	Expire  string
	Store   []string
	Peers   string
}
