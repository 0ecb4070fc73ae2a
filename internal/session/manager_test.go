package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/log"
	"github.com/ShubhamSPawade/unbound/internal/storage"
)

func newTestManager(t *testing.T) (*MockGateway, *storage.MemoryStore, *Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := NewMockGateway(ctrl)
	store := storage.NewMemoryStore()
	return gw, store, NewManager(context.Background(), gw, store, log.Discard())
}

func studentResult() *gateway.AuthResult {
	return &gateway.AuthResult{
		Success: true,
		Payload: gateway.AuthPayload{
			Token: "jwt-1",
			Role:  "Student",
			Email: "student@demo.com",
			SName: "Demo Student",
		},
	}
}

func storedSession(t *testing.T, store storage.Store) (*Session, bool) {
	t.Helper()
	raw, ok, err := store.Get(context.Background(), storage.KeyUser)
	require.NoError(t, err)
	if !ok {
		return nil, false
	}
	var s Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return &s, true
}

// failingStore refuses every batch write.
type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) SetAll(context.Context, map[string]string) error {
	return errors.New(errors.ErrCodeStoreWrite, "disk full")
}

func TestLogin_Success(t *testing.T) {
	gw, store, m := newTestManager(t)
	ctx := context.Background()

	gw.EXPECT().Login(gomock.Any(), "student@demo.com", "pw").Return(studentResult(), nil)
	gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil)

	s, err := m.Login(ctx, "student@demo.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "student@demo.com", s.Email)
	assert.Equal(t, RoleStudent, s.Role)
	assert.Equal(t, "Demo Student", s.SName)
	assert.Equal(t, "/student/dashboard", m.RedirectPath(string(s.Role)))
	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.HasRole(RoleStudent))
	assert.False(t, m.HasRole(RoleAdmin))

	token, ok, err := store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "jwt-1", token)

	persisted, ok := storedSession(t, store)
	require.True(t, ok)
	assert.Equal(t, s, persisted)
}

func TestLogin_ReturnsCopy(t *testing.T) {
	gw, _, m := newTestManager(t)

	gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(studentResult(), nil)
	gw.EXPECT().SetToken(gomock.Any(), gomock.Any()).Return(nil)

	s, err := m.Login(context.Background(), "student@demo.com", "pw")
	require.NoError(t, err)

	s.Role = RoleAdmin
	assert.Equal(t, RoleStudent, m.CurrentUser().Role)
}

func TestLogin_Validation(t *testing.T) {
	_, _, m := newTestManager(t)

	_, err := m.Login(context.Background(), "", "pw")
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	_, err = m.Login(context.Background(), "a@b.c", "")
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		result *gateway.AuthResult
		err    error
		code   errors.ErrorCode
		msg    string
	}{
		{
			name: "backend rejected",
			err:  errors.New(errors.ErrCodeBackendRejected, "Invalid credentials"),
			code: errors.ErrCodeBackendRejected,
			msg:  "Invalid credentials",
		},
		{
			name: "network passes through",
			err:  errors.NewNetworkUnavailableError(stderrors.New("refused")),
			code: errors.ErrCodeNetworkUnavailable,
			msg:  "Network unavailable",
		},
		{
			name:   "missing token",
			result: &gateway.AuthResult{Success: true, Payload: gateway.AuthPayload{Email: "a@b.c", Role: "Student"}},
			code:   errors.ErrCodeInvalidAuthResponse,
			msg:    "Login failed - invalid response",
		},
		{
			name:   "not successful",
			result: &gateway.AuthResult{Success: false},
			code:   errors.ErrCodeInvalidAuthResponse,
			msg:    "Login failed - invalid response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, store, m := newTestManager(t)
			gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.result, tt.err)

			s, err := m.Login(context.Background(), "a@b.c", "pw")

			require.Error(t, err)
			assert.Nil(t, s)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.msg, errors.MessageOf(err))
			assert.False(t, m.IsAuthenticated())
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestLogin_PersistFailureLeavesStateUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := NewMockGateway(ctrl)
	m := NewManager(context.Background(), gw, failingStore{storage.NewMemoryStore()}, log.Discard())

	gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(studentResult(), nil)

	_, err := m.Login(context.Background(), "student@demo.com", "pw")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStoreWrite, errors.CodeOf(err))
	assert.False(t, m.IsAuthenticated())
}

func TestLogin_ConcurrentSameEmailSharesCall(t *testing.T) {
	gw, _, m := newTestManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	gw.EXPECT().Login(gomock.Any(), "student@demo.com", "pw").
		DoAndReturn(func(context.Context, string, string) (*gateway.AuthResult, error) {
			close(started)
			<-release
			return studentResult(), nil
		}).
		Times(1)
	gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil).Times(1)

	var wg sync.WaitGroup
	results := make([]*Session, 2)
	errs := make([]error, 2)
	login := func(i int) {
		defer wg.Done()
		results[i], errs[i] = m.Login(context.Background(), "student@demo.com", "pw")
	}

	wg.Add(1)
	go login(0)
	<-started
	wg.Add(1)
	go login(1)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "student@demo.com", results[i].Email)
	}
	assert.NotSame(t, results[0], results[1])
}

func TestLogin_ConcurrentDifferentPasswordsDoNotShare(t *testing.T) {
	gw, _, m := newTestManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	gw.EXPECT().Login(gomock.Any(), "student@demo.com", "right").
		DoAndReturn(func(context.Context, string, string) (*gateway.AuthResult, error) {
			close(started)
			<-release
			return studentResult(), nil
		})
	gw.EXPECT().Login(gomock.Any(), "student@demo.com", "WRONG").
		Return(nil, errors.NewHTTPError(401, "Invalid credentials"))
	gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil)

	var (
		wg       sync.WaitGroup
		rightErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, rightErr = m.Login(context.Background(), "student@demo.com", "right")
	}()
	<-started

	s, err := m.Login(context.Background(), "student@demo.com", "WRONG")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Equal(t, "Invalid credentials", errors.MessageOf(err))

	close(release)
	wg.Wait()
	require.NoError(t, rightErr)
	assert.True(t, m.IsAuthenticated())
}

func TestLogin_CancelledCallerDoesNotFailSharedCall(t *testing.T) {
	gw, _, m := newTestManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var callCtxErr error
	gw.EXPECT().Login(gomock.Any(), "student@demo.com", "pw").
		DoAndReturn(func(ctx context.Context, _, _ string) (*gateway.AuthResult, error) {
			close(started)
			<-release
			callCtxErr = ctx.Err()
			return studentResult(), nil
		}).
		Times(1)
	gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil).Times(1)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var firstErr, secondErr error
	var second *Session
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = m.Login(firstCtx, "student@demo.com", "pw")
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, secondErr = m.Login(context.Background(), "student@demo.com", "pw")
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, context.Canceled)
	require.NoError(t, secondErr)
	assert.Equal(t, "student@demo.com", second.Email)
	assert.NoError(t, callCtxErr)
	assert.True(t, m.IsAuthenticated())
}

func TestLogin_TokenHandoffFailure(t *testing.T) {
	handoffErr := errors.New(errors.ErrCodeStoreWrite, "token not accepted")

	t.Run("restores previous session", func(t *testing.T) {
		gw, store, m := newTestManager(t)
		ctx := context.Background()

		gw.EXPECT().Login(gomock.Any(), "student@demo.com", "pw").Return(studentResult(), nil)
		gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil).Times(2)
		_, err := m.Login(ctx, "student@demo.com", "pw")
		require.NoError(t, err)

		gw.EXPECT().Login(gomock.Any(), "admin@demo.com", "pw").Return(&gateway.AuthResult{
			Success: true,
			Payload: gateway.AuthPayload{Token: "jwt-9", Role: "Admin", Email: "admin@demo.com"},
		}, nil)
		gw.EXPECT().SetToken(gomock.Any(), "jwt-9").Return(handoffErr)

		_, err = m.Login(ctx, "admin@demo.com", "pw")
		require.ErrorIs(t, err, handoffErr)

		assert.Equal(t, "student@demo.com", m.CurrentUser().Email)
		persisted, ok := storedSession(t, store)
		require.True(t, ok)
		assert.Equal(t, "student@demo.com", persisted.Email)
		token, _, err := store.Get(ctx, storage.KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "jwt-1", token)
	})

	t.Run("clears when anonymous", func(t *testing.T) {
		gw, store, m := newTestManager(t)

		gw.EXPECT().Login(gomock.Any(), "student@demo.com", "pw").Return(studentResult(), nil)
		gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(handoffErr)
		gw.EXPECT().ClearToken(gomock.Any()).Return(nil)

		_, err := m.Login(context.Background(), "student@demo.com", "pw")
		require.ErrorIs(t, err, handoffErr)

		assert.False(t, m.IsAuthenticated())
		assert.Equal(t, 0, store.Len())
	})
}

func TestLoginKey(t *testing.T) {
	k := loginKey("student@demo.com", "pw")
	assert.Equal(t, k, loginKey("student@demo.com", "pw"))
	assert.NotEqual(t, k, loginKey("student@demo.com", "pw2"))
	assert.NotEqual(t, loginKey("a", "bc"), loginKey("ab", "c"))
	assert.NotContains(t, k, "pw")
}

func TestRegister_MergesCollegeFields(t *testing.T) {
	gw, store, m := newTestManager(t)
	req := gateway.RegisterRequest{
		Email:        "college@demo.com",
		Password:     "pw",
		Role:         "College",
		CollegeID:    42,
		CName:        "Demo College",
		CDescription: "Engineering",
		Address:      "1 Campus Rd",
		ContactEmail: "office@demo.com",
	}

	gw.EXPECT().Register(gomock.Any(), req).Return(&gateway.AuthResult{
		Success: true,
		Payload: gateway.AuthPayload{Token: "jwt-2", Role: "College", Email: "college@demo.com", CName: "Demo College"},
	}, nil)
	gw.EXPECT().SetToken(gomock.Any(), "jwt-2").Return(nil)

	s, err := m.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, RoleCollege, s.Role)
	assert.Equal(t, int64(42), s.CollegeID)
	assert.Equal(t, "Engineering", s.CDescription)
	assert.Equal(t, "1 Campus Rd", s.Address)
	assert.Equal(t, "office@demo.com", s.ContactEmail)
	assert.Equal(t, "Demo College", s.DisplayName())
	assert.Equal(t, CollegeDashboardPath, RedirectPath(string(s.Role)))

	persisted, ok := storedSession(t, store)
	require.True(t, ok)
	assert.Equal(t, int64(42), persisted.CollegeID)
}

func TestRegister_Failures(t *testing.T) {
	t.Run("validation stops before backend", func(t *testing.T) {
		_, _, m := newTestManager(t)
		_, err := m.Register(context.Background(), gateway.RegisterRequest{Email: "x@y.z", Password: "pw", Role: "Organizer"})
		assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
	})

	t.Run("invalid response", func(t *testing.T) {
		gw, _, m := newTestManager(t)
		gw.EXPECT().Register(gomock.Any(), gomock.Any()).Return(&gateway.AuthResult{Success: true}, nil)

		_, err := m.Register(context.Background(), gateway.RegisterRequest{Email: "s@demo.com", Password: "pw", Role: "Student", SName: "S"})

		assert.Equal(t, errors.ErrCodeInvalidAuthResponse, errors.CodeOf(err))
		assert.Equal(t, "Registration failed - invalid response", errors.MessageOf(err))
	})

	t.Run("backend rejected", func(t *testing.T) {
		gw, _, m := newTestManager(t)
		gw.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, errors.NewHTTPError(400, "Email already registered"))

		_, err := m.Register(context.Background(), gateway.RegisterRequest{Email: "s@demo.com", Password: "pw", Role: "Student", SName: "S"})

		assert.Equal(t, "Email already registered", errors.MessageOf(err))
		assert.False(t, m.IsAuthenticated())
	})
}

func TestLogout(t *testing.T) {
	gw, store, m := newTestManager(t)
	ctx := context.Background()

	gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(studentResult(), nil)
	gw.EXPECT().SetToken(gomock.Any(), "jwt-1").Return(nil)
	_, err := m.Login(ctx, "student@demo.com", "pw")
	require.NoError(t, err)

	gw.EXPECT().ClearToken(gomock.Any()).Return(nil)
	require.NoError(t, m.Logout(ctx))

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
	assert.Equal(t, 0, store.Len())
}

func TestLogout_WhenAnonymous(t *testing.T) {
	gw, _, m := newTestManager(t)
	gw.EXPECT().ClearToken(gomock.Any()).Return(nil)

	assert.NoError(t, m.Logout(context.Background()))
}

func TestNewManager_Hydration(t *testing.T) {
	approved := true
	persisted := Session{Email: "college@demo.com", Role: RoleCollege, CName: "Demo College", IsApproved: &approved}
	raw, err := json.Marshal(persisted)
	require.NoError(t, err)

	t.Run("restores persisted session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := NewMockGateway(ctrl)
		store := storage.NewMemoryStore()
		require.NoError(t, store.SetAll(context.Background(), map[string]string{
			storage.KeyToken: "jwt-3",
			storage.KeyUser:  string(raw),
		}))

		m := NewManager(context.Background(), gw, store, log.Discard())

		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, &persisted, m.CurrentUser())
		assert.True(t, m.IsApproved())
	})

	t.Run("corrupt record is discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := NewMockGateway(ctrl)
		gw.EXPECT().ClearToken(gomock.Any()).Return(nil)
		store := storage.NewMemoryStore()
		require.NoError(t, store.SetAll(context.Background(), map[string]string{
			storage.KeyToken: "jwt-3",
			storage.KeyUser:  "{not json",
		}))

		m := NewManager(context.Background(), gw, store, log.Discard())

		assert.False(t, m.IsAuthenticated())
		assert.Equal(t, 0, store.Len())
	})

	t.Run("record without role is discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := NewMockGateway(ctrl)
		gw.EXPECT().ClearToken(gomock.Any()).Return(nil)
		store := storage.NewMemoryStore()
		require.NoError(t, store.SetAll(context.Background(), map[string]string{
			storage.KeyToken: "jwt-3",
			storage.KeyUser:  `{"email":"x@y.z"}`,
		}))

		m := NewManager(context.Background(), gw, store, log.Discard())

		assert.False(t, m.IsAuthenticated())
	})

	t.Run("record without token is discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := NewMockGateway(ctrl)
		gw.EXPECT().ClearToken(gomock.Any()).Return(nil)
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), storage.KeyUser, string(raw)))

		m := NewManager(context.Background(), gw, store, log.Discard())

		assert.False(t, m.IsAuthenticated())
		assert.Equal(t, 0, store.Len())
	})
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name string
		resp *gateway.Response
		err  error
		code errors.ErrorCode
		msg  string
	}{
		{
			name: "success flag",
			resp: &gateway.Response{Success: true, StatusCode: 200},
		},
		{
			name: "confirmation text without flag",
			resp: &gateway.Response{Message: "Reset password link sent to email", StatusCode: 200},
		},
		{
			name: "account not found",
			err:  errors.NewHTTPError(404, "Account Not Found"),
			code: errors.ErrCodeAccountNotFound,
			msg:  msgAccountNotFound,
		},
		{
			name: "endpoint missing",
			err:  errors.NewHTTPError(404, "HTTP 404: Not Found"),
			code: errors.ErrCodeFeatureUnavailable,
			msg:  msgForgotUnavailable,
		},
		{
			name: "other backend message",
			err:  errors.NewHTTPError(500, "SMTP unavailable"),
			code: errors.ErrCodeResetEmailFailed,
			msg:  "SMTP unavailable",
		},
		{
			name: "unsuccessful without message",
			resp: &gateway.Response{StatusCode: 200},
			code: errors.ErrCodeResetEmailFailed,
			msg:  msgForgotFailed,
		},
		{
			name: "timeout passes through",
			err:  errors.NewTimeoutError("/auth/forgot-password", context.DeadlineExceeded),
			code: errors.ErrCodeRequestTimeout,
			msg:  "Request timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _, m := newTestManager(t)
			gw.EXPECT().ForgotPassword(gomock.Any(), "student@demo.com").Return(tt.resp, tt.err)

			err := m.ForgotPassword(context.Background(), "student@demo.com")

			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.msg, errors.MessageOf(err))
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name string
		resp *gateway.Response
		err  error
		code errors.ErrorCode
		msg  string
	}{
		{
			name: "success flag",
			resp: &gateway.Response{Success: true, StatusCode: 200},
		},
		{
			name: "updated text without flag",
			resp: &gateway.Response{Message: "Password updated", StatusCode: 200},
		},
		{
			name: "invalid token",
			err:  errors.NewHTTPError(400, "Invalid token"),
			code: errors.ErrCodeResetLinkInvalid,
			msg:  msgResetLinkInvalid,
		},
		{
			name: "expired token",
			err:  errors.NewHTTPError(400, "Token expired"),
			code: errors.ErrCodeResetLinkInvalid,
			msg:  msgResetLinkInvalid,
		},
		{
			name: "endpoint missing",
			err:  errors.NewHTTPError(404, "HTTP 404: Not Found"),
			code: errors.ErrCodeFeatureUnavailable,
			msg:  msgResetUnavailable,
		},
		{
			name: "other backend message",
			err:  errors.NewHTTPError(500, "database down"),
			code: errors.ErrCodeResetPasswordFailed,
			msg:  "database down",
		},
		{
			name: "unsuccessful without message",
			resp: &gateway.Response{StatusCode: 200},
			code: errors.ErrCodeResetPasswordFailed,
			msg:  msgResetFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, _, m := newTestManager(t)
			gw.EXPECT().ResetPassword(gomock.Any(), "reset-tok", "newpw").Return(tt.resp, tt.err)

			err := m.ResetPassword(context.Background(), "reset-tok", "newpw")

			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.msg, errors.MessageOf(err))
		})
	}
}

func TestPasswordWorkflows_Validation(t *testing.T) {
	_, _, m := newTestManager(t)
	ctx := context.Background()

	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(m.ForgotPassword(ctx, "")))
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(m.ResetPassword(ctx, "", "pw")))
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(m.ResetPassword(ctx, "tok", "")))
}

func TestRequireRole(t *testing.T) {
	gw, _, m := newTestManager(t)

	_, err := m.RequireRole(RoleStudent)
	assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err))

	gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(studentResult(), nil)
	gw.EXPECT().SetToken(gomock.Any(), gomock.Any()).Return(nil)
	_, err = m.Login(context.Background(), "student@demo.com", "pw")
	require.NoError(t, err)

	s, err := m.RequireRole(RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "student@demo.com", s.Email)

	s, err = m.RequireRole()
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = m.RequireRole(RoleCollege, RoleAdmin)
	assert.Equal(t, errors.ErrCodeRoleMismatch, errors.CodeOf(err))
}

func TestState(t *testing.T) {
	gw, _, m := newTestManager(t)

	gw.EXPECT().Token().Return("")
	st := m.State()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, st.TokenFP)

	gw.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(studentResult(), nil)
	gw.EXPECT().SetToken(gomock.Any(), gomock.Any()).Return(nil)
	_, err := m.Login(context.Background(), "student@demo.com", "pw")
	require.NoError(t, err)

	gw.EXPECT().Token().Return("jwt-1")
	st = m.State()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "jwt-1", st.Token)
	assert.Equal(t, gateway.Fingerprint("jwt-1"), st.TokenFP)

	out, err := json.Marshal(st)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "jwt-1")
}

// The remaining tests drive a real gateway client against a fake backend.

func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newClientManager(t *testing.T, baseURL string, store storage.Store) (*gateway.Client, *Manager) {
	t.Helper()
	ctx := context.Background()
	gw := gateway.NewClient(ctx, gateway.Config{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Store:   store,
		Logger:  log.Discard(),
	})
	return gw, NewManager(ctx, gw, store, log.Discard())
}

func TestStudentLoginAgainstBackend(t *testing.T) {
	var gotAuth string
	srv := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": reply(200, `{"success":true,"message":"ok","data":{"token":"jwt-1","role":"Student","email":"student@demo.com","sname":"Demo Student"}}`),
		"GET /api/student/events/dashboard/stats": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			reply(200, `{"success":true,"data":{}}`)(w, r)
		},
	})
	store := storage.NewMemoryStore()
	gw, m := newClientManager(t, srv.URL+"/api", store)
	ctx := context.Background()

	s, err := m.Login(ctx, "student@demo.com", "demo123")
	require.NoError(t, err)

	assert.Equal(t, &Session{Email: "student@demo.com", Role: RoleStudent, SName: "Demo Student"}, s)
	assert.Equal(t, "/student/dashboard", RedirectPath(string(s.Role)))
	assert.Equal(t, "jwt-1", gw.Token())

	_, err = gw.StudentDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-1", gotAuth)

	// A fresh process over the same store comes back authenticated.
	gw2, m2 := newClientManager(t, srv.URL+"/api", store)
	assert.True(t, m2.IsAuthenticated())
	assert.Equal(t, "jwt-1", gw2.Token())

	require.NoError(t, m2.Logout(ctx))
	assert.Empty(t, gw2.Token())
	assert.Equal(t, 0, store.Len())
}

func TestForgotPasswordAgainstBackend(t *testing.T) {
	srv := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/auth/forgot-password": reply(404, `{"success":false,"message":"Account Not Found"}`),
	})
	_, m := newClientManager(t, srv.URL+"/api", storage.NewMemoryStore())

	err := m.ForgotPassword(context.Background(), "nobody@demo.com")

	require.Error(t, err)
	ue, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAccountNotFound, ue.Code)
	assert.Equal(t, msgAccountNotFound, ue.Message)
	assert.Equal(t, 404, ue.StatusCode)
}

func TestResetPasswordEndpointMissing(t *testing.T) {
	srv := newBackend(t, nil)
	_, m := newClientManager(t, srv.URL+"/api", storage.NewMemoryStore())

	err := m.ResetPassword(context.Background(), "tok", "newpw")

	assert.Equal(t, errors.ErrCodeFeatureUnavailable, errors.CodeOf(err))
}
