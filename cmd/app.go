package cmd

import (
	"context"
	"fmt"
	"net/http"

	"kolikctl/internal/catalog"
	"kolikctl/internal/csrf"
	"kolikctl/internal/domain"
	"kolikctl/internal/gateway"
	"kolikctl/internal/jar"
	"kolikctl/internal/navigation"
	"kolikctl/internal/output"
	"kolikctl/internal/session"
)

// app wires the session core for a single command invocation. Every
// command builds one; the file-backed cookie jar is what carries the
// session across invocations.
type app struct {
	printer *output.Printer
	cookies *jar.Jar
	nav     *navigation.Recorder
	store   *session.Store
	catalog *catalog.Client
}

// newApp assembles the client from the loaded configuration.
func newApp() (*app, error) {
	base := cfg.BaseURL()

	cookies, err := jar.New(cfg.Session.JarPath, base)
	if err != nil {
		return nil, fmt.Errorf("initializing cookie jar: %w", err)
	}

	httpc := &http.Client{
		Jar:     cookies,
		Timeout: cfg.API.Timeout,
	}

	provisioner := csrf.NewProvisioner(httpc, base, cookies, cfg.CSRF.CookieName)
	client := gateway.NewClient(httpc, base, provisioner,
		gateway.WithCSRFHeader(cfg.CSRF.HeaderName))

	nav := &navigation.Recorder{}

	return &app{
		printer: output.NewPrinter(cfg.Output.Colors),
		cookies: cookies,
		nav:     nav,
		store:   session.New(gateway.NewAuth(client), nav),
		catalog: catalog.NewClient(client),
	}, nil
}

// requireAuth rehydrates the session once and consults the access gate
// before a protected command may run. On refusal the navigation
// mapping to the login entry point decides what to tell the user.
func (a *app) requireAuth(ctx context.Context, target domain.Route) error {
	a.store.Rehydrate(ctx)

	if session.CanEnter(a.store.State()) {
		return nil
	}

	denied := navigation.ForDenied(target)
	a.printer.Error("You must be signed in to view %s.", string(denied.Return))
	a.printer.Info("Run %s to sign in, then try again.", a.printer.Bold("kolikctl login"))
	return domain.ErrNotAuthenticated
}

// showFlash prints a pending one-shot message, if any.
func (a *app) showFlash() {
	if msg, ok := a.nav.TakeFlash(); ok {
		a.printer.Info("%s", msg)
	}
}
