package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finmate-app/finmate/internal/client/api"
	"github.com/finmate-app/finmate/internal/client/session"
	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memStorage is an in-memory TokenStorage with injectable failures.
type memStorage struct {
	token     string
	StoreErr  error
	DeleteErr error
}

func (m *memStorage) Load(ctx context.Context) (string, error) { return m.token, nil }

func (m *memStorage) Store(ctx context.Context, token string) error {
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.token = token
	return nil
}

func (m *memStorage) Delete(ctx context.Context) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.token = ""
	return nil
}

func newTestStore(storage session.TokenStorage) (*session.Store, *int) {
	signal := session.NewSignal()
	emissions := 0
	signal.Subscribe(func() { emissions++ })
	return session.NewStore(storage, signal), &emissions
}

// ---- fake API client ----

// fakeAPI implements api.Client for unit tests of the auth service.
type fakeAPI struct {
	LoginToken string
	LoginErr   error

	RegisterErr error

	MeProfile *session.Profile
	MeErr     error

	LastLoginUser     string
	LastLoginPassword string
	LastRegisterUser  string
	LastRegisterEmail string
	LoginCalls        int
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginToken, f.LoginErr
}

func (f *fakeAPI) Register(ctx context.Context, username, email, password, fullName string) error {
	f.LastRegisterUser = username
	f.LastRegisterEmail = email
	return f.RegisterErr
}

func (f *fakeAPI) Me(ctx context.Context) (*session.Profile, error) {
	return f.MeProfile, f.MeErr
}

// The remaining api.Client methods are not exercised by the auth service.

func (f *fakeAPI) ListExpenses(ctx context.Context, from, to string) ([]api.Expense, error) {
	return nil, nil
}
func (f *fakeAPI) AddExpense(ctx context.Context, e api.Expense) (*api.Expense, error) {
	return nil, nil
}
func (f *fakeAPI) DeleteExpense(ctx context.Context, id string) error { return nil }
func (f *fakeAPI) ExpenseSummary(ctx context.Context) (*api.Summary, error) {
	return nil, nil
}
func (f *fakeAPI) ListGoals(ctx context.Context) ([]api.Goal, error) { return nil, nil }
func (f *fakeAPI) AddGoal(ctx context.Context, g api.Goal) (*api.Goal, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateGoalAmount(ctx context.Context, id string, amount float64) (*api.Goal, error) {
	return nil, nil
}
func (f *fakeAPI) DeleteGoal(ctx context.Context, id string) error { return nil }
func (f *fakeAPI) MonthlyTarget(ctx context.Context, id string) (*api.MonthlyTarget, error) {
	return nil, nil
}
func (f *fakeAPI) Chat(ctx context.Context, message string) (string, error) { return "", nil }
func (f *fakeAPI) Insights(ctx context.Context) ([]api.Insight, error)      { return nil, nil }

// ---- TESTS ----

func TestLogin_Success_SetsTokenAndProfile(t *testing.T) {
	store, emissions := newTestStore(&memStorage{})
	fc := &fakeAPI{
		LoginToken: "T1",
		MeProfile:  &session.Profile{ID: "u-1", Username: "alice", FullName: "Alice"},
	}
	svc := NewService(fc, store, testLogger())

	require.NoError(t, svc.Login(context.Background(), "alice", "secret"))

	require.Equal(t, "T1", store.Token())
	require.Equal(t, "alice", store.Profile().Username)
	require.Equal(t, "u-1", store.Profile().ID)
	// exactly one signal, from the token mutation
	require.Equal(t, 1, *emissions)
}

func TestLogin_InvalidCredentials_NoToken(t *testing.T) {
	store, emissions := newTestStore(&memStorage{})
	fc := &fakeAPI{LoginErr: common.ErrInvalidCredentials}
	svc := NewService(fc, store, testLogger())

	err := svc.Login(context.Background(), "alice", "badpass")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.Equal(t, "", store.Token())
	require.Nil(t, store.Profile())
	require.Equal(t, 0, *emissions)
}

func TestLogin_ProfileFetchFails_FallbackProfile_StillSucceeds(t *testing.T) {
	store, emissions := newTestStore(&memStorage{})
	fc := &fakeAPI{LoginToken: "T1", MeErr: common.ErrTimeout}
	svc := NewService(fc, store, testLogger())

	require.NoError(t, svc.Login(context.Background(), "alice", "secret"))

	require.Equal(t, "T1", store.Token())
	profile := store.Profile()
	require.NotNil(t, profile)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "alice", profile.FullName)
	require.NotEmpty(t, profile.ID)
	require.Equal(t, 1, *emissions)
}

func TestLogin_StorageWriteFails(t *testing.T) {
	store, emissions := newTestStore(&memStorage{StoreErr: errors.New("disk full")})
	fc := &fakeAPI{LoginToken: "T1"}
	svc := NewService(fc, store, testLogger())

	err := svc.Login(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, common.ErrStorage)
	require.Equal(t, "", store.Token())
	require.Equal(t, 0, *emissions)
}

func TestRegister_ChainsLoginWithSubmittedCredentials(t *testing.T) {
	store, _ := newTestStore(&memStorage{})
	fc := &fakeAPI{LoginToken: "T1", MeErr: errors.New("down")}
	svc := NewService(fc, store, testLogger())

	require.NoError(t, svc.Register(context.Background(), "alice", "a@b.c", "secret", "Alice"))

	require.Equal(t, "alice", fc.LastRegisterUser)
	require.Equal(t, 1, fc.LoginCalls)
	require.Equal(t, "alice", fc.LastLoginUser)
	require.Equal(t, "secret", fc.LastLoginPassword)
	require.Equal(t, "T1", store.Token())
}

func TestRegister_LoginFails_DistinctError(t *testing.T) {
	store, _ := newTestStore(&memStorage{})
	fc := &fakeAPI{LoginErr: common.ErrNetwork}
	svc := NewService(fc, store, testLogger())

	err := svc.Register(context.Background(), "alice", "a@b.c", "secret", "Alice")
	require.ErrorIs(t, err, common.ErrRegisteredButLoginFailed)
	// the underlying login failure stays inspectable
	require.ErrorIs(t, err, common.ErrNetwork)
	require.Equal(t, "", store.Token())
}

func TestRegister_Rejected(t *testing.T) {
	store, _ := newTestStore(&memStorage{})
	fc := &fakeAPI{RegisterErr: common.ErrRejected}
	svc := NewService(fc, store, testLogger())

	err := svc.Register(context.Background(), "alice", "a@b.c", "secret", "Alice")
	require.ErrorIs(t, err, common.ErrRejected)
	require.Equal(t, 0, fc.LoginCalls)
}

func TestLogout_ClearsSession_NeverFails(t *testing.T) {
	storage := &memStorage{token: "T1"}
	store, emissions := newTestStore(storage)
	ctx := context.Background()
	require.NoError(t, store.Hydrate(ctx))
	store.SetProfile(&session.Profile{Username: "alice"})

	svc := NewService(&fakeAPI{}, store, testLogger())
	svc.Logout(ctx)

	require.Equal(t, "", store.Token())
	require.Nil(t, store.Profile())
	require.Equal(t, 1, *emissions)

	// a failing durable delete still logs the user out locally
	storage.token = "T2"
	storage.DeleteErr = errors.New("io error")
	require.NoError(t, store.Hydrate(ctx))
	svc.Logout(ctx)
	require.Equal(t, "", store.Token())
}

// TestLogin_Timeout_LateResponseDiscarded drives the real HTTP transport
// against a backend that answers only after the deadline: the call must
// classify as a timeout and the late success must never reach the store.
func TestLogin_Timeout_LateResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	handlerDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"access_token":"LATE"}`))
		close(handlerDone)
	}))
	defer srv.Close()

	store, emissions := newTestStore(&memStorage{})
	client := api.NewHTTPClient(srv.URL, store.Token)
	svc := NewService(client, store, testLogger())
	svc.loginTimeout = 50 * time.Millisecond

	err := svc.Login(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, common.ErrTimeout)

	// let the stale response arrive, then verify nothing moved
	close(release)
	<-handlerDone
	time.Sleep(20 * time.Millisecond)

	require.Equal(t, "", store.Token())
	require.Nil(t, store.Profile())
	require.Equal(t, 0, *emissions)
}
