// Package navigation maps session transition outcomes to destinations.
// The mapping is pure; performing the redirect is left to a
// domain.Navigator implementation so the session store stays testable
// without any presentation dependency.
package navigation

import "kolikctl/internal/domain"

// ForMFASetup routes to the one-time-code enrollment screen.
func ForMFASetup(email string) domain.Navigation {
	return domain.Navigation{Route: domain.RouteMFASetup, Email: email}
}

// ForMFAVerify routes to the one-time-code verification screen.
func ForMFAVerify(email string) domain.Navigation {
	return domain.Navigation{Route: domain.RouteMFALogin, Email: email}
}

// ForLoginSuccess routes to the product catalog after a direct login.
func ForLoginSuccess() domain.Navigation {
	return domain.Navigation{Route: domain.RouteProducts, Replace: true}
}

// ForVerifySuccess routes home after a completed code challenge.
func ForVerifySuccess() domain.Navigation {
	return domain.Navigation{Route: domain.RouteHome, Replace: true}
}

// ForLogout routes home, optionally carrying a one-shot message.
func ForLogout(flash string) domain.Navigation {
	return domain.Navigation{Route: domain.RouteHome, Flash: flash, Replace: true}
}

// ForDenied routes to the login screen when the access gate refuses a
// protected destination. The refused route is preserved so the caller
// can return there after a successful login.
func ForDenied(target domain.Route) domain.Navigation {
	return domain.Navigation{Route: domain.RouteLogin, Return: target}
}

// Nop is a Navigator that discards every redirect.
type Nop struct{}

// Navigate implements domain.Navigator.
func (Nop) Navigate(domain.Navigation) {}
