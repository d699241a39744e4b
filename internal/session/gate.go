package session

import "kolikctl/internal/domain"

// CanEnter reports whether protected content may render for st. Only
// an authenticated session qualifies. Unknown means rehydration has
// not resolved yet and must not be mistaken for either outcome.
func CanEnter(st domain.State) bool {
	return st.Phase == domain.PhaseAuthenticated
}
