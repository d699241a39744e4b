package domain

// User is the identity record returned by the profile endpoint.
// It is replaced wholesale on every successful profile fetch and is
// owned exclusively by the session store.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginOutcome carries the branch flags returned by the login endpoint.
// Both flags false means the session is already fully established
// server-side. Absent fields decode as false.
type LoginOutcome struct {
	MFASetupRequired bool `json:"mfa_setup_required"`
	MFARequired      bool `json:"mfa_required"`
}
