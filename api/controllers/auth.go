package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/api/responses"
	pkgAuth "github.com/big-riz/HandcashIntegration/pkg/auth"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

type profileFetcher interface {
	GetProfile(ctx context.Context, authToken string) (*handcash.Profile, error)
}

type userStore interface {
	Upsert(ctx context.Context, handle, authToken string) (*models.User, error)
	ClearAuthToken(ctx context.Context, id uuid.UUID) error
}

type sessionManager interface {
	Create(ctx context.Context, authToken string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// AuthConnect completes the wallet connect flow. HandCash redirects the
// browser here with an authToken query parameter; a valid token becomes an
// upserted user, a Redis-backed session, and a signed cookie. Failures
// redirect back to the landing page so the UI can surface the error.
func AuthConnect(cfg *config.Config, client profileFetcher, users userStore, sessions sessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authToken := strings.TrimSpace(r.URL.Query().Get("authToken"))
		if authToken == "" {
			redirectWithError(w, r, "missing_auth_token")
			return
		}

		profile, err := client.GetProfile(ctx, authToken)
		if err != nil {
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "auth.profile_lookup_failed")
			}
			redirectWithError(w, r, "auth_failed")
			return
		}

		handle := strings.TrimSpace(profile.PublicProfile.Handle)
		if handle == "" {
			redirectWithError(w, r, "auth_failed")
			return
		}

		user, err := users.Upsert(ctx, handle, authToken)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "auth.user_upsert_failed", err)
			}
			redirectWithError(w, r, "server_error")
			return
		}

		sessionID, err := sessions.Create(ctx, authToken)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "auth.session_create_failed", err)
			}
			redirectWithError(w, r, "server_error")
			return
		}

		token, err := pkgAuth.MintSessionToken(cfg.Session, time.Now(), pkgAuth.SessionTokenPayload{
			UserID: user.ID,
			Handle: user.Handle,
			JTI:    sessionID,
		})
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "auth.token_mint_failed", err)
			}
			redirectWithError(w, r, "server_error")
			return
		}

		http.SetCookie(w, sessionCookie(cfg, token, int(cfg.Session.TTL().Seconds())))

		if logg != nil {
			logg.Info(logg.WithHandle(ctx, handle), "auth.connected")
		}

		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

// Logout revokes the Redis session behind the cookie, clears the stored
// wallet credential, and expires the cookie. Safe to call with a stale or
// missing session.
func Logout(cfg *config.Config, users userStore, sessions sessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if cookie, err := r.Cookie(cfg.Session.CookieName); err == nil && cookie.Value != "" {
			claims, err := pkgAuth.ParseSessionTokenAllowExpired(cfg.Session, cookie.Value)
			if err == nil {
				if claims.ID != "" {
					if err := sessions.Revoke(ctx, claims.ID); err != nil && logg != nil {
						logg.Warn(logg.WithField(ctx, "error", err.Error()), "logout.session_revoke_failed")
					}
				}
				if claims.UserID != uuid.Nil {
					if err := users.ClearAuthToken(ctx, claims.UserID); err != nil && logg != nil {
						logg.Warn(logg.WithField(ctx, "error", err.Error()), "logout.clear_token_failed")
					}
				}
			} else if logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "logout.token_parse_failed")
			}
		}

		http.SetCookie(w, sessionCookie(cfg, "", -1))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func sessionCookie(cfg *config.Config, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	}
}

func redirectWithError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(reason), http.StatusFound)
}
