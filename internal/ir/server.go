package ir

import "hacfg/internal/diag"

// Server is one upstream target declared in a backend/listen, or produced
// by unrolling a server-list loop.
type Server struct {
	Name    string
	Address string
	Port    *int
	Loc     diag.Location

	// Health check.
	Check          *bool
	Interval       string
	Rise           *int
	Fall           *int
	CheckPort      *int
	CheckAddress   string
	CheckSNI       string
	CheckSendProxy *bool
	CheckProto     string
	AgentCheck     *bool
	AgentAddress   string
	AgentPort      *int
	AgentInterval  string

	// Load.
	Weight       *int
	Maxconn      *int
	Minconn      *int
	Maxqueue     *int
	MaxReuse     *int
	PoolMaxConn  *int
	PoolPurgeDelay string

	// TLS.
	SSL        *bool
	Verify     string
	SNI        string
	ALPN       []string
	CAFile     string
	CRLFile    string
	Cert       string
	Ciphers    string
	Curves     string

	// PROXY protocol.
	SendProxy   *bool
	SendProxyV2 *bool

	SlowStart string

	// DNS.
	Resolvers     string
	ResolvePrefer string
	InitAddr      string

	// Error handling.
	ErrorLimit  *int
	Observe     string
	OnError     string
	OnMarkedDown string
	OnMarkedUp   string

	// Protocol.
	Proto     string
	TFO       *bool
	Namespace string
	Usesrc    string

	// Identity.
	ID     *int
	Cookie string
	Track  string
	Redir  string

	// State.
	Disabled bool
	Backup   bool

	// Options carries any less-common knob not named above, keyed by name;
	// the serializer emits them sorted by key.
	Options map[string]string

	// set in loop unroll, purely diagnostic: which loop/iteration produced
	// this server, if any.
	LoopVar   string
	LoopValue string

	// TemplateRefs holds unresolved `@name` spreads on this server;
	// consumed by the Template Expander (spec.md S3 scenario).
	TemplateRefs []TemplateRef
}

// ServerTemplate is a "server-template ..." directive: N numbered servers
// sharing one set of options, expanded by the target load balancer itself
// (not by this pipeline — see spec.md §3 "Backend-specific").
type ServerTemplate struct {
	Prefix  string
	Count   int
	Address string
	Port    *int
	Server  // shares the same option surface as Server
}

// Bind declares one listening address on a frontend/listen.
type Bind struct {
	Address string
	Loc     diag.Location

	SSL  bool
	Cert string
	ALPN []string

	// Options holds the free-form bind knobs (accept-proxy, transparent,
	// defer-accept, name, maxconn, backlog, interface, thread,
	// accept-netscaler-cip, ssl-min-ver/max-ver, ciphers, ciphersuites,
	// curves, verify, ca-file, crl-file, no-sslv3/tlsv10/tlsv11,
	// strict-sni, prefer-client-ciphers, allow-0rtt), keyed by name; the
	// serializer emits them sorted by key.
	Options map[string]string
}
