package domain

// Phase identifies which session state currently holds. Exactly one
// phase holds at a time.
type Phase int

const (
	// PhaseUnknown is the initial phase, before rehydration has
	// resolved. It must never be treated as authenticated.
	PhaseUnknown Phase = iota
	// PhaseUnauthenticated means no valid session exists.
	PhaseUnauthenticated
	// PhaseAuthenticated means a valid session and user exist.
	PhaseAuthenticated
	// PhaseMFASetupPending means the backend requires enrolling a
	// one-time-code device before the login can complete.
	PhaseMFASetupPending
	// PhaseMFAVerifyPending means the backend requires a one-time code
	// to complete the login.
	PhaseMFAVerifyPending
	// PhaseFailed means the last operation failed. It does not imply
	// de-authentication by itself.
	PhaseFailed
)

// String returns the phase name for logs and debug output.
func (p Phase) String() string {
	switch p {
	case PhaseUnknown:
		return "unknown"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseMFASetupPending:
		return "mfa-setup-pending"
	case PhaseMFAVerifyPending:
		return "mfa-verify-pending"
	case PhaseFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// State is a snapshot of the session store. User is set only while
// authenticated, Email only while an MFA step is pending, and Message
// only after a failed operation.
type State struct {
	Phase   Phase
	User    *User
	Email   string
	Message string
}
