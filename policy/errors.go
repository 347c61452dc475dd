package policy

import "errors"

// ErrEvictUnsupported is the panic value a policy with no eviction concept
// (policy/noop) raises if the store ever calls EvictNext on it. The store
// treats this as a fatal contract violation (spec §7) and poisons itself.
var ErrEvictUnsupported = errors.New("policy: EvictNext called on a policy that never proposes evictions")

// ErrDuplicateAttribute is raised when a policy's Dependencies() registers
// the same attribute descriptor twice, or when two policy-level
// registrations collide during store startup.
var ErrDuplicateAttribute = errors.New("policy: attribute registered twice")

// ErrEntryNotHeld is raised when EvictNext or Replace returns an entry the
// policy does not currently hold, or Replace returns neither argument.
var ErrEntryNotHeld = errors.New("policy: contract violation — entry not held by policy")
