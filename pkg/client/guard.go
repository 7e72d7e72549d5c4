package client

// Requirement is the access level a route demands.
type Requirement int

const (
	// RequireNone admits everyone.
	RequireNone Requirement = iota
	// RequireAuthenticated admits any authenticated principal.
	RequireAuthenticated
	// RequireAdmin admits enterprises and admin users only.
	RequireAdmin
)

// DecisionKind classifies a guard decision.
type DecisionKind int

const (
	// Admit lets the navigation proceed.
	Admit DecisionKind = iota
	// Pending means the session is still settling; decide again on the
	// next state change.
	Pending
	// Redirect sends the caller to Target.
	Redirect
)

// Redirect targets. The login target is qualified by the session's
// last-known principal kind so callers can show the right login view.
const (
	TargetLogin           = "login"
	TargetLoginEnterprise = "login/enterprise"
	TargetNotAuthorized   = "not-authorized"
)

// Decision is the outcome of a guard evaluation.
type Decision struct {
	Kind   DecisionKind
	Target string
	Reason string
}

// Guard decides whether a session state satisfies a requirement. It is
// a pure function of its inputs: callers re-evaluate whenever the
// session state changes.
func Guard(required Requirement, state State) Decision {
	if required == RequireNone {
		return Decision{Kind: Admit}
	}

	switch state.Status {
	case StatusUninitialized, StatusLoading:
		return Decision{Kind: Pending}
	case StatusUnauthenticated:
		target := TargetLogin
		if state.Kind == KindEnterprise {
			target = TargetLoginEnterprise
		}
		return Decision{Kind: Redirect, Target: target, Reason: "not authenticated"}
	}

	if required == RequireAdmin && !state.IsAdmin {
		return Decision{Kind: Redirect, Target: TargetNotAuthorized, Reason: "admin required"}
	}
	return Decision{Kind: Admit}
}
