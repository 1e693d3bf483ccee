package outreach

import "time"

// Policy holds the campaign budget: how many attempts and how long to wait
// between them.
type Policy struct {
	MaxAttempts   int
	FollowUpDelay time.Duration
}

// Decision is the outcome of evaluating one target against the eligibility
// predicate at a point in time.
type Decision struct {
	Eligible bool
	Attempt  int // zero-based index of the attempt to dispatch
	Kind     AttemptKind
}

// NextAction is the escalation rule: a pure function over the target's
// state, counters and timestamps. Running it twice at the same instant
// yields the same decision, which is what makes overlapping follow-up
// passes idempotent.
//
// A target is eligible only if its state is non-terminal, it has not
// responded, its attempt budget is not used up, and the follow-up delay has
// elapsed since the last attempt (for the very first contact there is no
// delay to wait out).
func (t *Target) NextAction(now time.Time, policy Policy) Decision {
	if t.state.Terminal() || t.responded {
		return Decision{}
	}
	if t.attemptCount >= policy.MaxAttempts {
		return Decision{}
	}
	if t.lastAttemptAt != nil && now.Sub(*t.lastAttemptAt) < policy.FollowUpDelay {
		return Decision{}
	}
	return Decision{
		Eligible: true,
		Attempt:  t.attemptCount,
		Kind:     KindForAttempt(t.attemptCount),
	}
}
