package pipeline

import (
	"github.com/google/uuid"

	"hacfg/internal/ir"
)

// stampGUIDs fills in every proxy section's empty GUID with a deterministic
// UUIDv5, derived from seed plus the section's kind and name, so that two
// compiles of the same named section against the same seed produce the same
// GUID (spec.md's "--guid-seed-file" stability requirement). An empty seed
// is hashed like any other (namespace derived from NameSpaceOID and the
// empty string), so it too yields the same GUIDs on every compile.
func stampGUIDs(cfg *ir.ConfigIR, seed string) {
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
	stamp := func(kind, name string, guid *string) {
		if *guid != "" {
			return
		}
		*guid = uuid.NewSHA1(ns, []byte(kind+":"+name)).String()
	}
	for _, f := range cfg.Frontends {
		stamp("frontend", f.Name, &f.GUID)
	}
	for _, b := range cfg.Backends {
		stamp("backend", b.Name, &b.GUID)
	}
	for _, l := range cfg.Listens {
		stamp("listen", l.Name, &l.GUID)
	}
}
