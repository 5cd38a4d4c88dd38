// Package authz contains the pure permission predicates behind every
// mutation. Predicates never touch the store; callers load whatever the
// check needs and branch on the returned decision.
package authz

// Reason explains why a decision denied the operation.
type Reason string

const (
	ReasonAllowed          Reason = "ALLOWED"
	ReasonNotAuthenticated Reason = "NOT_AUTHENTICATED"
	ReasonNotOwner         Reason = "NOT_OWNER"
	ReasonHasDependents    Reason = "HAS_DEPENDENTS"
)

// Decision is the result of a guard predicate.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// RequireAuthenticated passes when an acting user is present. actorID is nil
// for anonymous requests.
func RequireAuthenticated(actorID *uint64) Decision {
	if actorID == nil {
		return deny(ReasonNotAuthenticated)
	}
	return allow()
}

// RequireOwner passes when the acting user is the owner of the record:
// the author for tasks, the user themselves for profiles.
func RequireOwner(actorID *uint64, ownerID uint64) Decision {
	if d := RequireAuthenticated(actorID); !d.Allowed {
		return d
	}
	if *actorID != ownerID {
		return deny(ReasonNotOwner)
	}
	return allow()
}

// RequireNoDependents passes when no task references the record being
// deleted. dependents is the count the store reported.
func RequireNoDependents(dependents int64) Decision {
	if dependents > 0 {
		return deny(ReasonHasDependents)
	}
	return allow()
}
