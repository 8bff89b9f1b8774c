package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/big-riz/HandcashIntegration/api/responses"
	pkgAuth "github.com/big-riz/HandcashIntegration/pkg/auth"
	"github.com/big-riz/HandcashIntegration/pkg/auth/session"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

// Auth validates the session cookie and seeds the request context with the
// user identity and the wallet auth token resolved from Redis.
func Auth(cfg config.SessionConfig, resolver session.TokenResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			authToken, err := resolver.AuthToken(r.Context(), claims.ID)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxHandle, claims.Handle)
			ctx = context.WithValue(ctx, ctxAuthToken, authToken)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id": claims.UserID.String(),
					"handle":  claims.Handle,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
