// Package session owns the authenticated identity. It turns credential
// workflows into session state changes and keeps that state in durable
// storage so a restart does not lose it.
//
// The lifecycle has two states. Anonymous becomes Authenticated on a
// successful Login or Register; Authenticated becomes Anonymous on Logout.
// A session's role never changes in place; a different role needs a new login.
package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/singleflight"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/log"
	"github.com/ShubhamSPawade/unbound/internal/storage"
)

//go:generate go run go.uber.org/mock/mockgen -destination=gateway_mock_test.go -package=session github.com/ShubhamSPawade/unbound/internal/session Gateway

// Gateway is the part of the backend client the manager depends on.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResult, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (*gateway.Response, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*gateway.Response, error)
	HealthCheck(ctx context.Context) (*gateway.Response, error)
	Ping(ctx context.Context) (*gateway.Response, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	Token() string
}

var _ Gateway = (*gateway.Client)(nil)

// Manager owns the current session.
type Manager struct {
	gw     Gateway
	store  storage.Store
	logger *log.Logger

	logins singleflight.Group

	mu   sync.RWMutex
	user *Session
}

// NewManager creates a manager and restores any persisted session. A
// persisted record that cannot be decoded, or that has no token beside it,
// is discarded and the manager starts Anonymous.
func NewManager(ctx context.Context, gw Gateway, store storage.Store, logger *log.Logger) *Manager {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	m := &Manager{
		gw:     gw,
		store:  store,
		logger: log.OrDefault(logger).Component("session"),
	}
	m.hydrate(ctx)
	return m
}

func (m *Manager) hydrate(ctx context.Context) {
	raw, ok, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		m.logger.WithError(err).Warn("could not read persisted session")
		return
	}
	if !ok {
		return
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || !s.valid() {
		if err == nil {
			err = stderrors.New("record has no email or role")
		}
		m.discard(ctx, errors.NewStoreCorruptError(storage.KeyUser, err))
		return
	}

	if _, hasToken, err := m.store.Get(ctx, storage.KeyToken); err != nil || !hasToken {
		m.discard(ctx, errors.New(errors.ErrCodeStoreCorrupt, "persisted session has no token"))
		return
	}

	m.user = &s
	m.logger.Debug("session restored", "email", s.Email, "role", s.Role)
}

func (m *Manager) discard(ctx context.Context, reason error) {
	m.logger.WithError(reason).Warn("discarding persisted session")
	if err := m.store.RemoveAll(ctx, storage.KeyToken, storage.KeyUser); err != nil {
		m.logger.WithError(err).Warn("could not clear persisted session")
	}
	if err := m.gw.ClearToken(ctx); err != nil {
		m.logger.WithError(err).Warn("could not clear gateway token")
	}
}

// Login authenticates and establishes a session. Concurrent logins with the
// same credentials share one backend call; any other pair proceeds on its own.
// The shared call is detached from each caller's cancellation and bounded by
// the gateway's timeout, so one caller giving up does not fail the others.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	shared := context.WithoutCancel(ctx)
	ch := m.logins.DoChan(loginKey(email, password), func() (any, error) {
		return m.login(shared, email, password)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			m.logger.WithError(res.Err).Debug("login failed", "email", email)
			return nil, res.Err
		}
		if res.Shared {
			m.logger.Debug("login shared an in-flight request", "email", email)
		}
		return res.Val.(*Session).clone(), nil
	}
}

func (m *Manager) login(ctx context.Context, email, password string) (*Session, error) {
	result, err := m.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if result == nil || !result.Success || result.Payload.Token == "" {
		return nil, errors.New(errors.ErrCodeInvalidAuthResponse, "Login failed - invalid response")
	}

	s := sessionFromPayload(result.Payload)
	if err := m.establish(ctx, result.Payload.Token, s); err != nil {
		return nil, err
	}
	return s, nil
}

// loginKey identifies a credential pair without keeping the password.
func loginKey(email, password string) string {
	sum := blake3.Sum256([]byte(email + "\x00" + password))
	return hex.EncodeToString(sum[:])
}

// Register creates an account and establishes a session. Role-specific
// fields from req are merged into the session because the backend may
// omit them from its answer.
func (m *Manager) Register(ctx context.Context, req gateway.RegisterRequest) (*Session, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	result, err := m.gw.Register(ctx, req)
	if err != nil {
		m.logger.WithError(err).Debug("registration failed", "email", req.Email)
		return nil, err
	}
	if result == nil || !result.Success || result.Payload.Token == "" {
		return nil, errors.New(errors.ErrCodeInvalidAuthResponse, "Registration failed - invalid response")
	}

	s := sessionFromPayload(result.Payload)
	if s.SName == "" {
		s.SName = req.SName
	}
	if s.CName == "" {
		s.CName = req.CName
	}
	s.CollegeID = req.CollegeID
	s.CDescription = req.CDescription
	s.Address = req.Address
	s.ContactEmail = req.ContactEmail

	if err := m.establish(ctx, result.Payload.Token, s); err != nil {
		return nil, err
	}
	return s.clone(), nil
}

func sessionFromPayload(p gateway.AuthPayload) *Session {
	return &Session{
		Email: p.Email,
		Role:  Role(p.Role),
		SName: p.SName,
		CName: p.CName,
	}
}

// establish persists the session and token together, then hands the token
// to the gateway. If the gateway refuses the token, the previously persisted
// session is put back and the in-memory state is not changed.
func (m *Manager) establish(ctx context.Context, token string, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode session", err)
	}

	prevToken, _, _ := m.store.Get(ctx, storage.KeyToken)
	m.mu.RLock()
	prev := m.user
	m.mu.RUnlock()

	if err := m.store.SetAll(ctx, map[string]string{
		storage.KeyToken: token,
		storage.KeyUser:  string(data),
	}); err != nil {
		return err
	}
	if err := m.gw.SetToken(ctx, token); err != nil {
		m.restore(ctx, prev, prevToken)
		return err
	}

	m.mu.Lock()
	m.user = s
	m.mu.Unlock()

	m.logger.Success("session established", "email", s.Email, "role", s.Role, "token_fp", gateway.Fingerprint(token))
	return nil
}

// restore puts back the persisted session and gateway token that were in
// place before a failed establish. Without a previous session both are cleared.
func (m *Manager) restore(ctx context.Context, prev *Session, prevToken string) {
	logger := m.logger.With("reason", "token handoff failed")

	if prev == nil || prevToken == "" {
		if err := m.store.RemoveAll(ctx, storage.KeyToken, storage.KeyUser); err != nil {
			logger.WithError(err).Warn("could not clear persisted session")
		}
		if err := m.gw.ClearToken(ctx); err != nil {
			logger.WithError(err).Warn("could not clear gateway token")
		}
		return
	}

	data, err := json.Marshal(prev)
	if err == nil {
		err = m.store.SetAll(ctx, map[string]string{
			storage.KeyToken: prevToken,
			storage.KeyUser:  string(data),
		})
	}
	if err != nil {
		logger.WithError(err).Warn("could not restore persisted session")
	}
	if err := m.gw.SetToken(ctx, prevToken); err != nil {
		logger.WithError(err).Warn("could not restore gateway token")
	}
}

// ForgotPassword asks the backend to send a reset link.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return errors.NewValidationError("email is required")
	}

	resp, err := m.gw.ForgotPassword(ctx, email)
	if err == nil && !forgotPasswordSucceeded(resp) {
		err = rejected(resp)
	}
	if err != nil {
		return ClassifyForgotPasswordError(err)
	}

	m.logger.Success("password reset requested", "email", email)
	return nil
}

// ResetPassword sets a new password using the token from a reset link.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return errors.NewValidationError("reset token and new password are required")
	}

	resp, err := m.gw.ResetPassword(ctx, token, newPassword)
	if err == nil && !resetPasswordSucceeded(resp) {
		err = rejected(resp)
	}
	if err != nil {
		return ClassifyResetPasswordError(err)
	}

	m.logger.Success("password reset")
	return nil
}

// rejected builds the error for a 2xx answer that did not report success.
// An empty message leaves the classifier to pick its default text.
func rejected(resp *gateway.Response) error {
	if resp == nil {
		return errors.New(errors.ErrCodeBackendRejected, "")
	}
	return errors.New(errors.ErrCodeBackendRejected, resp.Message).WithStatus(resp.StatusCode)
}

// Logout ends the session. No backend call is made. In-memory state is
// cleared even when storage cannot be updated.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	prev := m.user
	m.user = nil
	m.mu.Unlock()

	tokenErr := m.gw.ClearToken(ctx)
	storeErr := m.store.RemoveAll(ctx, storage.KeyToken, storage.KeyUser)

	if prev != nil {
		m.logger.Info("logged out", "email", prev.Email)
	}
	if tokenErr != nil {
		return tokenErr
	}
	return storeErr
}

// CurrentUser returns a copy of the session, or nil when Anonymous.
func (m *Manager) CurrentUser() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.clone()
}

// IsAuthenticated reports whether a session exists.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// HasRole reports whether the session has exactly role.
func (m *Manager) HasRole(role Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.Role == role
}

// IsApproved reports whether the backend marked the session's account approved.
func (m *Manager) IsApproved() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsApproved != nil && *m.user.IsApproved
}

// RedirectPath maps role to its landing path. See the package-level RedirectPath.
func (m *Manager) RedirectPath(role string) string {
	return RedirectPath(role)
}

// RequireRole returns the session when its role is one of roles. It fails
// with AUTH-007 when Anonymous and AUTH-008 on a mismatch; redirecting is
// the caller's decision.
func (m *Manager) RequireRole(roles ...Role) (*Session, error) {
	s := m.CurrentUser()
	if s == nil {
		return nil, errors.NewNotAuthenticatedError()
	}
	if len(roles) == 0 {
		return s, nil
	}
	for _, r := range roles {
		if s.Role == r {
			return s, nil
		}
	}
	return nil, errors.NewRoleMismatchError(string(roles[0]), string(s.Role))
}

// State returns a snapshot of user, token and authentication flag.
func (m *Manager) State() State {
	user := m.CurrentUser()
	token := m.gw.Token()
	return State{
		User:            user,
		Token:           token,
		TokenFP:         gateway.Fingerprint(token),
		IsAuthenticated: user != nil,
	}
}

// HealthCheck passes through to the backend health endpoint.
func (m *Manager) HealthCheck(ctx context.Context) (*gateway.Response, error) {
	return m.gw.HealthCheck(ctx)
}

// Ping passes through to the backend ping endpoint.
func (m *Manager) Ping(ctx context.Context) (*gateway.Response, error) {
	return m.gw.Ping(ctx)
}
