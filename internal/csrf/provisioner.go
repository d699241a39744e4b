// Package csrf provisions the anti-forgery token required on every
// state-mutating backend call. The backend uses the double-submit
// cookie pattern: it sets the token in a cookie during a bootstrap GET,
// and expects the same value echoed back in a request header. The
// cookie name, header name, and read-after-bootstrap ordering are part
// of the wire contract.
package csrf

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"kolikctl/internal/domain"
	"kolikctl/internal/jar"
)

// DefaultCookieName is the cookie the backend stores the token in.
const DefaultCookieName = "csrftoken"

// bootstrapPath is the idempotent GET that makes the backend set the
// CSRF cookie. The response body carries no semantics.
const bootstrapPath = "/auth/csrf/"

// Provisioner resolves the CSRF token from the cookie jar, performing
// the bootstrap request when the cookie is absent. It owns no state of
// its own beyond coalescing concurrent bootstraps.
type Provisioner struct {
	httpc      *http.Client
	base       *url.URL
	cookies    *jar.Jar
	cookieName string
	group      singleflight.Group
	logger     *slog.Logger
}

// NewProvisioner creates a provisioner reading the named cookie from
// cookies. httpc must share the same jar so the bootstrap response's
// Set-Cookie lands where the provisioner reads.
func NewProvisioner(httpc *http.Client, base *url.URL, cookies *jar.Jar, cookieName string) *Provisioner {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Provisioner{
		httpc:      httpc,
		base:       base,
		cookies:    cookies,
		cookieName: cookieName,
		logger:     slog.Default(),
	}
}

// EnsureToken returns the current CSRF token. When the cookie is
// already present no network round trip is made; otherwise a single
// bootstrap GET is issued (concurrent callers share one flight) and the
// cookie is re-read. A cookie still absent after bootstrap fails with
// domain.ErrCSRFUnavailable.
func (p *Provisioner) EnsureToken(ctx context.Context) (string, error) {
	if token, ok := p.cookies.Cookie(p.cookieName); ok {
		return token, nil
	}

	result, err, _ := p.group.Do(p.cookieName, func() (any, error) {
		if err := p.bootstrap(ctx); err != nil {
			return "", err
		}
		token, ok := p.cookies.Cookie(p.cookieName)
		if !ok {
			return "", domain.ErrCSRFUnavailable
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// bootstrap issues the GET that causes the backend to set the CSRF
// cookie. The token is never taken from the response body, only from
// the cookie afterward.
func (p *Provisioner) bootstrap(ctx context.Context) error {
	u := *p.base
	u.Path = strings.TrimSuffix(u.Path, "/") + bootstrapPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building bootstrap request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.WarnContext(ctx, "csrf bootstrap rejected", "status", resp.StatusCode)
		return fmt.Errorf("%w: bootstrap returned HTTP %d", domain.ErrCSRFUnavailable, resp.StatusCode)
	}
	return nil
}
