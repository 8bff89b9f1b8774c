package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/big-riz/HandcashIntegration/pkg/auth"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled"), Output: io.Discard})
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:       config.AppEnvDev,
			Port:      "8080",
			PublicURL: "https://app.example",
		},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			Issuer:     "handcash-integration",
			TTLMinutes: 60,
			CookieName: "hc_session",
		},
	}
}

type stubProfileFetcher struct {
	profile *handcash.Profile
	err     error
}

func (s *stubProfileFetcher) GetProfile(_ context.Context, _ string) (*handcash.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubUserStore struct {
	user        *models.User
	upsertErr   error
	clearedID   uuid.UUID
	clearCalled bool
}

func (s *stubUserStore) Upsert(_ context.Context, handle, authToken string) (*models.User, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	if s.user == nil {
		s.user = &models.User{ID: uuid.New(), Handle: handle, AuthToken: authToken}
	}
	return s.user, nil
}

func (s *stubUserStore) ClearAuthToken(_ context.Context, id uuid.UUID) error {
	s.clearCalled = true
	s.clearedID = id
	return nil
}

type stubSessionManager struct {
	sessionID string
	createErr error
	revoked   []string
}

func (s *stubSessionManager) Create(_ context.Context, _ string) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.sessionID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func walletProfile(handle string) *handcash.Profile {
	return &handcash.Profile{
		PublicProfile: handcash.PublicProfile{
			ID:     "pub-id",
			Handle: handle,
		},
	}
}

func TestAuthConnectSuccess(t *testing.T) {
	cfg := testConfig()
	users := &stubUserStore{}
	sessions := &stubSessionManager{sessionID: "session-1"}

	handler := AuthConnect(cfg, &stubProfileFetcher{profile: walletProfile("satoshi")}, users, sessions, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth?authToken=wallet-token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	res := rec.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "hc_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	claims, err := pkgAuth.ParseSessionToken(cfg.Session, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, users.user.ID, claims.UserID)
	assert.Equal(t, "satoshi", claims.Handle)
	assert.Equal(t, "session-1", claims.ID)
}

func TestAuthConnectMissingToken(t *testing.T) {
	handler := AuthConnect(testConfig(), &stubProfileFetcher{}, &stubUserStore{}, &stubSessionManager{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?error=missing_auth_token", rec.Header().Get("Location"))
}

func TestAuthConnectVendorRejectsToken(t *testing.T) {
	fetcher := &stubProfileFetcher{err: errors.New("unauthorized")}
	handler := AuthConnect(testConfig(), fetcher, &stubUserStore{}, &stubSessionManager{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth?authToken=bad-token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?error=auth_failed", rec.Header().Get("Location"))
}

func TestLogoutRevokesSessionAndClearsCookie(t *testing.T) {
	cfg := testConfig()
	users := &stubUserStore{}
	sessions := &stubSessionManager{}
	userID := uuid.New()

	token, err := pkgAuth.MintSessionToken(cfg.Session, time.Now(), pkgAuth.SessionTokenPayload{
		UserID: userID,
		Handle: "satoshi",
		JTI:    "session-1",
	})
	require.NoError(t, err)

	handler := Logout(cfg, users, sessions, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"session-1"}, sessions.revoked)
	assert.True(t, users.clearCalled)
	assert.Equal(t, userID, users.clearedID)

	res := rec.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestLogoutWithoutCookieStillSucceeds(t *testing.T) {
	sessions := &stubSessionManager{}
	handler := Logout(testConfig(), &stubUserStore{}, sessions, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sessions.revoked)
}
