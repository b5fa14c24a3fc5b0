package ir

import "hacfg/internal/diag"

// Peers is a peer cluster used for stick-table replication.
type Peers struct {
	Name    string
	Entries []PeerEntry
	Loc     diag.Location
}

// PeerEntry is one "peer NAME ADDR:PORT" line inside a Peers group.
type PeerEntry struct {
	Name    string
	Address string
	Port    *int
	Shard   string
}

// Resolvers configures upstream DNS resolution (spec.md GLOSSARY
// "Resolvers section").
type Resolvers struct {
	Name                string
	Nameservers         []Nameserver
	Hold                map[string]string // valid/obsolete/other -> duration
	ResolveRetries      *int
	Timeout             map[string]string // resolve/retry -> duration
	AcceptedPayloadSize *int
	Loc                 diag.Location
}

// Nameserver is one "nameserver NAME ADDR:PORT" line.
type Nameserver struct {
	Name    string
	Address string
	Port    *int
}

// Mailers is a group of SMTP relays used by EmailAlert blocks.
type Mailers struct {
	Name       string
	Entries    []MailerEntry
	TimeoutMail string
	Loc        diag.Location
}

// MailerEntry is one "mailer NAME ADDR:PORT" line.
type MailerEntry struct {
	Name    string
	Address string
	Port    *int
}

// LuaScript is an embedded script passed through verbatim (spec.md
// Non-goals: "semantic understanding of embedded scripts").
type LuaScript struct {
	Name   string
	Source string // raw, byte-for-byte as written in the DSL
	Inline bool   // true when the CLI should extract it to --lua-dir
	Loc    diag.Location
}

// HttpErrorsGroup is a named "http-errors NAME { errorfile ... }" group,
// referenced by a backend's ErrorFiles field.
type HttpErrorsGroup struct {
	Name      string
	ErrorFile map[int]string // status -> path
	Loc       diag.Location
}
