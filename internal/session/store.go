// Package session holds the authoritative authentication state and the
// transitions that change it. The store is the single owner of the
// current user: the gateway is stateless and the presentation layer
// only ever reads snapshots.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kolikctl/internal/apierr"
	"kolikctl/internal/domain"
	"kolikctl/internal/navigation"
)

// Store is the session state machine. Operations are serialized: a
// second transition blocks until the one in flight resolves. Snapshot
// reads never block on network activity.
type Store struct {
	gw     domain.AuthGateway
	nav    domain.Navigator
	logger *slog.Logger

	// limiter throttles credential submissions client-side, mirroring
	// the backend's auth rate limits.
	limiter *rate.Limiter

	// opMu serializes transitions; stateMu guards the snapshot fields.
	opMu    sync.Mutex
	stateMu sync.RWMutex
	phase   domain.Phase
	user    *domain.User
	email   string
	message string
	loading bool

	rehydrateOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithLogger overrides the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithLimiter overrides the credential submission limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Store) { s.limiter = l }
}

// New creates a store in the Unknown phase. nav may be nil when no
// navigation side effects are wanted.
func New(gw domain.AuthGateway, nav domain.Navigator, opts ...Option) *Store {
	if nav == nil {
		nav = navigation.Nop{}
	}
	s := &Store{
		gw:      gw,
		nav:     nav,
		logger:  slog.Default(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		phase:   domain.PhaseUnknown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current session state.
func (s *Store) State() domain.State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	st := domain.State{
		Phase:   s.phase,
		Email:   s.email,
		Message: s.message,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Loading reports whether a transition's network step is outstanding.
func (s *Store) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// Rehydrate attempts to recover authentication state from an existing
// session cookie. It runs the network step at most once per store; an
// unauthenticated result is expected during startup and is never
// surfaced as an error.
func (s *Store) Rehydrate(ctx context.Context) {
	s.rehydrateOnce.Do(func() {
		s.opMu.Lock()
		defer s.opMu.Unlock()
		s.begin()
		defer s.end()

		user, err := s.gw.FetchProfile(ctx)
		if err != nil {
			if !apierr.IsUnauthenticated(err) {
				s.logger.DebugContext(ctx, "rehydration failed", "error", err)
			}
			s.set(func() {
				s.phase = domain.PhaseUnauthenticated
				s.user = nil
			})
			return
		}

		s.set(func() {
			s.phase = domain.PhaseAuthenticated
			s.user = user
		})
		s.logger.DebugContext(ctx, "session rehydrated", "user_id", user.ID)
	})
}

// Login submits credentials and follows the outcome: an MFA flag
// branches to the matching pending phase, otherwise the profile is
// fetched and the session becomes authenticated. Any failure is
// recorded in the state as well as returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.begin()
	defer s.end()

	if !s.limiter.Allow() {
		return s.fail(ctx, domain.ErrRateLimited)
	}

	out, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return s.fail(ctx, err)
	}

	switch {
	case out.MFASetupRequired:
		s.set(func() {
			s.phase = domain.PhaseMFASetupPending
			s.email = email
		})
		s.nav.Navigate(navigation.ForMFASetup(email))
	case out.MFARequired:
		s.set(func() {
			s.phase = domain.PhaseMFAVerifyPending
			s.email = email
		})
		s.nav.Navigate(navigation.ForMFAVerify(email))
	default:
		user, err := s.gw.FetchProfile(ctx)
		if err != nil {
			return s.fail(ctx, err)
		}
		s.set(func() {
			s.phase = domain.PhaseAuthenticated
			s.user = user
			s.email = ""
		})
		s.nav.Navigate(navigation.ForLoginSuccess())
	}
	return nil
}

// VerifyCode completes the one-time-code challenge and, on success,
// fetches the profile to establish the authenticated state. A failed
// attempt keeps the pending email so the code can be retried.
func (s *Store) VerifyCode(ctx context.Context, email, code string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.begin()
	defer s.end()

	if !s.limiter.Allow() {
		return s.fail(ctx, domain.ErrRateLimited)
	}

	if err := s.gw.VerifyCode(ctx, email, code); err != nil {
		return s.fail(ctx, err)
	}

	user, err := s.gw.FetchProfile(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	s.set(func() {
		s.phase = domain.PhaseAuthenticated
		s.user = user
		s.email = ""
	})
	s.nav.Navigate(navigation.ForVerifySuccess())
	return nil
}

// Logout clears the client-side session unconditionally. A failed
// server call is logged, never surfaced: the user must always be able
// to leave an authenticated view.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.begin()
	defer s.end()

	if err := s.gw.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "logout request failed, clearing local session anyway", "error", err)
	}

	s.set(func() {
		s.phase = domain.PhaseUnauthenticated
		s.user = nil
		s.email = ""
	})
	s.nav.Navigate(navigation.ForLogout("You have been signed out."))
}

// begin marks a transition as in flight and clears the previous error.
func (s *Store) begin() {
	s.stateMu.Lock()
	s.loading = true
	s.message = ""
	s.stateMu.Unlock()
}

// end releases the in-flight flag. It runs on every exit path.
func (s *Store) end() {
	s.stateMu.Lock()
	s.loading = false
	s.stateMu.Unlock()
}

// set applies a state mutation under the snapshot lock.
func (s *Store) set(mutate func()) {
	s.stateMu.Lock()
	mutate()
	s.stateMu.Unlock()
}

// fail records a failed transition. An authenticated session survives
// a failed operation untouched: only the error banner changes. In any
// other phase the store moves to Failed, keeping a pending MFA email
// for retry.
func (s *Store) fail(ctx context.Context, err error) error {
	s.logger.WarnContext(ctx, "session operation failed", "error", err)
	s.set(func() {
		s.message = err.Error()
		if s.phase != domain.PhaseAuthenticated {
			s.phase = domain.PhaseFailed
		}
	})
	return err
}
