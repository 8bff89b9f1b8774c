package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/api/responses"
	"github.com/big-riz/HandcashIntegration/api/validators"
	"github.com/big-riz/HandcashIntegration/internal/payments"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
	"github.com/big-riz/HandcashIntegration/pkg/qr"
)

type paymentService interface {
	Create(ctx context.Context, userID uuid.UUID, dto payments.CreateRequestDTO) (*payments.PaymentRequestDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]payments.PaymentRequestDTO, error)
	GetOwned(ctx context.Context, userID, requestID uuid.UUID) (*payments.PaymentRequestDTO, error)
}

// PaymentRequestCreate submits a new micropayment request to the vendor and
// records the pending row.
func PaymentRequestCreate(svc paymentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body payments.CreateRequestDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PaymentRequestList returns the caller's payment requests, newest first,
// with their webhook event history.
func PaymentRequestList(svc paymentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentRequestQR renders the payment URL of an owned request as a PNG.
func PaymentRequestQR(svc paymentService, gen *qr.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := uuid.Parse(chi.URLParam(r, "requestId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid request id"))
			return
		}

		request, err := svc.GetOwned(r.Context(), userID, requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		png, err := gen.EncodePNG(request.PaymentRequestURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session")
	}
	return userID, nil
}
