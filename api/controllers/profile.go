package controllers

import (
	"net/http"

	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/api/responses"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

// Profile returns the connected wallet's profile straight from the vendor.
func Profile(client profileFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authToken := middleware.AuthTokenFromContext(r.Context())
		if authToken == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		profile, err := client.GetProfile(r.Context(), authToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
