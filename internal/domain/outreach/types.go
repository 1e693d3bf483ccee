package outreach

// State is the escalation state of one outreach target. The set is closed;
// repositories reject anything else at reconstruction time.
type State string

const (
	StatePending          State = "pending"
	StateContacted        State = "contacted"
	StateAwaitingResponse State = "awaiting_response"
	StateResponded        State = "responded"
	StateExhausted        State = "exhausted"
)

func (s State) Valid() bool {
	switch s {
	case StatePending, StateContacted, StateAwaitingResponse, StateResponded, StateExhausted:
		return true
	}
	return false
}

// Terminal states are never selected by the follow-up pass again.
func (s State) Terminal() bool {
	return s == StateResponded || s == StateExhausted
}

func (s State) String() string { return string(s) }

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// AttemptKind identifies both the channel and the tone of one contact
// attempt. The ladder is fixed and ordinal: standard email, then a phone
// call, then a final urgent email.
type AttemptKind string

const (
	AttemptInitialEmail AttemptKind = "initial_email"
	AttemptPhoneCall    AttemptKind = "phone_call"
	AttemptUrgentEmail  AttemptKind = "urgent_email"
)

func (k AttemptKind) Channel() Channel {
	if k == AttemptPhoneCall {
		return ChannelPhone
	}
	return ChannelEmail
}

// KindForAttempt maps a zero-based attempt index to its kind. Attempts past
// the ladder reuse the urgent email form; the eligibility predicate keeps
// that from ever being dispatched under the default budget.
func KindForAttempt(index int) AttemptKind {
	switch index {
	case 0:
		return AttemptInitialEmail
	case 1:
		return AttemptPhoneCall
	default:
		return AttemptUrgentEmail
	}
}
