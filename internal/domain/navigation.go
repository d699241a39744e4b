package domain

// Route is a navigation target inside the application shell.
type Route string

// Application routes reachable from session transitions.
const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteProducts Route = "/products"
	RouteMFASetup Route = "/mfa-setup"
	RouteMFALogin Route = "/mfa-login"
)

// Navigation describes a redirect requested by a session transition.
// Email is carried to the MFA screens. Flash is a one-shot message
// shown once at the destination and then discarded; it must not
// survive a restart. Return is the originally requested destination,
// set when an access-gated route bounced the caller to the login
// screen.
type Navigation struct {
	Route   Route
	Email   string
	Flash   string
	Return  Route
	Replace bool
}
