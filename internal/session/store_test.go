package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"kolikctl/internal/apierr"
	"kolikctl/internal/domain"
	"kolikctl/internal/navigation"
)

// gatewayMock implements domain.AuthGateway with per-call hooks and
// invocation counters.
type gatewayMock struct {
	loginFn   func(ctx context.Context, email, password string) (domain.LoginOutcome, error)
	verifyFn  func(ctx context.Context, email, code string) error
	profileFn func(ctx context.Context) (*domain.User, error)
	logoutFn  func(ctx context.Context) error

	profileCalls int
}

func (m *gatewayMock) Login(ctx context.Context, email, password string) (domain.LoginOutcome, error) {
	if m.loginFn == nil {
		return domain.LoginOutcome{}, nil
	}
	return m.loginFn(ctx, email, password)
}

func (m *gatewayMock) VerifyCode(ctx context.Context, email, code string) error {
	if m.verifyFn == nil {
		return nil
	}
	return m.verifyFn(ctx, email, code)
}

func (m *gatewayMock) FetchProfile(ctx context.Context) (*domain.User, error) {
	m.profileCalls++
	if m.profileFn == nil {
		return &domain.User{ID: 1, Email: "a@b.com", Name: "A"}, nil
	}
	return m.profileFn(ctx)
}

func (m *gatewayMock) Logout(ctx context.Context) error {
	if m.logoutFn == nil {
		return nil
	}
	return m.logoutFn(ctx)
}

func unauthenticated() error {
	return apierr.New(http.StatusForbidden, []byte(`{"detail":"Authentication credentials were not provided."}`))
}

func TestNew_StartsUnknown(t *testing.T) {
	s := New(&gatewayMock{}, nil)
	assert.Equal(t, domain.PhaseUnknown, s.State().Phase)
	assert.False(t, s.Loading())
}

func TestRehydrate_Authenticated(t *testing.T) {
	gw := &gatewayMock{}
	s := New(gw, nil)

	s.Rehydrate(context.Background())

	st := s.State()
	assert.Equal(t, domain.PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, int64(1), st.User.ID)
	assert.False(t, s.Loading())
}

func TestRehydrate_Unauthenticated(t *testing.T) {
	gw := &gatewayMock{profileFn: func(context.Context) (*domain.User, error) {
		return nil, unauthenticated()
	}}
	s := New(gw, nil)

	s.Rehydrate(context.Background())

	st := s.State()
	assert.Equal(t, domain.PhaseUnauthenticated, st.Phase)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Message)
	assert.False(t, s.Loading())
}

func TestRehydrate_RunsOnce(t *testing.T) {
	gw := &gatewayMock{}
	s := New(gw, nil)

	s.Rehydrate(context.Background())
	s.Rehydrate(context.Background())

	assert.Equal(t, 1, gw.profileCalls)
}

func TestLogin_Direct(t *testing.T) {
	gw := &gatewayMock{}
	nav := &navigation.Recorder{}
	s := New(gw, nav)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	st := s.State()
	assert.Equal(t, domain.PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, "a@b.com", st.User.Email)
	assert.Empty(t, st.Email)

	last, ok := nav.Last()
	require.True(t, ok)
	assert.Equal(t, domain.RouteProducts, last.Route)
	assert.True(t, last.Replace)
}

func TestLogin_MFASetupRequired(t *testing.T) {
	gw := &gatewayMock{loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{MFASetupRequired: true}, nil
	}}
	nav := &navigation.Recorder{}
	s := New(gw, nav)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	st := s.State()
	assert.Equal(t, domain.PhaseMFASetupPending, st.Phase)
	assert.Equal(t, "a@b.com", st.Email)
	assert.Nil(t, st.User)

	// No profile fetch until the challenge is resolved.
	assert.Zero(t, gw.profileCalls)

	last, _ := nav.Last()
	assert.Equal(t, domain.RouteMFASetup, last.Route)
	assert.Equal(t, "a@b.com", last.Email)
}

func TestLogin_MFAVerifyRequired(t *testing.T) {
	gw := &gatewayMock{loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{MFARequired: true}, nil
	}}
	nav := &navigation.Recorder{}
	s := New(gw, nav)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	st := s.State()
	assert.Equal(t, domain.PhaseMFAVerifyPending, st.Phase)
	assert.Equal(t, "a@b.com", st.Email)
	assert.Zero(t, gw.profileCalls)

	last, _ := nav.Last()
	assert.Equal(t, domain.RouteMFALogin, last.Route)
}

func TestLogin_BadCredentials(t *testing.T) {
	gw := &gatewayMock{loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{}, apierr.New(http.StatusBadRequest, []byte(`{"non_field_errors":["Invalid credentials."]}`))
	}}
	s := New(gw, nil)

	err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, domain.PhaseFailed, st.Phase)
	assert.Equal(t, "Invalid credentials.", st.Message)
	assert.False(t, s.Loading())
}

func TestLogin_FailureKeepsAuthenticatedSession(t *testing.T) {
	gw := &gatewayMock{}
	s := New(gw, nil)
	s.Rehydrate(context.Background())
	require.Equal(t, domain.PhaseAuthenticated, s.State().Phase)

	gw.loginFn = func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{}, errors.New("boom")
	}
	require.Error(t, s.Login(context.Background(), "other@b.com", "pw"))

	st := s.State()
	assert.Equal(t, domain.PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, "boom", st.Message)
}

func TestLogin_RateLimited(t *testing.T) {
	gw := &gatewayMock{}
	s := New(gw, nil, WithLimiter(rate.NewLimiter(rate.Limit(0), 0)))

	err := s.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, domain.PhaseFailed, s.State().Phase)
}

func TestVerifyCode_Success(t *testing.T) {
	gw := &gatewayMock{loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{MFARequired: true}, nil
	}}
	nav := &navigation.Recorder{}
	s := New(gw, nav)
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	require.NoError(t, s.VerifyCode(context.Background(), "a@b.com", "123456"))

	st := s.State()
	assert.Equal(t, domain.PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Empty(t, st.Email)

	last, _ := nav.Last()
	assert.Equal(t, domain.RouteHome, last.Route)
	assert.True(t, last.Replace)
}

func TestVerifyCode_InvalidCodeKeepsEmail(t *testing.T) {
	gw := &gatewayMock{
		loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
			return domain.LoginOutcome{MFARequired: true}, nil
		},
		verifyFn: func(context.Context, string, string) error {
			return apierr.New(http.StatusBadRequest, []byte(`{"non_field_errors":["Invalid code."]}`))
		},
	}
	s := New(gw, nil)
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))

	err := s.VerifyCode(context.Background(), "a@b.com", "000000")
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, domain.PhaseFailed, st.Phase)
	assert.Equal(t, "Invalid code.", st.Message)
	assert.Equal(t, "a@b.com", st.Email)
}

func TestLogout_ClearsSession(t *testing.T) {
	gw := &gatewayMock{}
	nav := &navigation.Recorder{}
	s := New(gw, nav)
	s.Rehydrate(context.Background())

	s.Logout(context.Background())

	st := s.State()
	assert.Equal(t, domain.PhaseUnauthenticated, st.Phase)
	assert.Nil(t, st.User)

	last, _ := nav.Last()
	assert.Equal(t, domain.RouteHome, last.Route)
	flash, ok := nav.TakeFlash()
	require.True(t, ok)
	assert.Equal(t, "You have been signed out.", flash)
}

func TestLogout_ServerErrorStillClears(t *testing.T) {
	gw := &gatewayMock{logoutFn: func(context.Context) error {
		return errors.New("backend down")
	}}
	s := New(gw, nil)
	s.Rehydrate(context.Background())

	s.Logout(context.Background())

	st := s.State()
	assert.Equal(t, domain.PhaseUnauthenticated, st.Phase)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Message)
}

func TestBeginClearsPreviousError(t *testing.T) {
	gw := &gatewayMock{loginFn: func(context.Context, string, string) (domain.LoginOutcome, error) {
		return domain.LoginOutcome{}, errors.New("first failure")
	}}
	s := New(gw, nil)
	require.Error(t, s.Login(context.Background(), "a@b.com", "pw"))
	require.Equal(t, "first failure", s.State().Message)

	gw.loginFn = nil
	require.NoError(t, s.Login(context.Background(), "a@b.com", "pw"))
	assert.Empty(t, s.State().Message)
	assert.Equal(t, domain.PhaseAuthenticated, s.State().Phase)
}
