package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/internal/payments"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/qr"
)

type stubPaymentService struct {
	created *payments.PaymentRequestDTO
	listed  []payments.PaymentRequestDTO
	owned   *payments.PaymentRequestDTO
	err     error

	gotUserID uuid.UUID
	gotCreate payments.CreateRequestDTO
}

func (s *stubPaymentService) Create(_ context.Context, userID uuid.UUID, dto payments.CreateRequestDTO) (*payments.PaymentRequestDTO, error) {
	s.gotUserID = userID
	s.gotCreate = dto
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubPaymentService) List(_ context.Context, userID uuid.UUID) ([]payments.PaymentRequestDTO, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}

func (s *stubPaymentService) GetOwned(_ context.Context, userID, _ uuid.UUID) (*payments.PaymentRequestDTO, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.owned, nil
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithAuthToken(ctx, "wallet-token")
	return req.WithContext(ctx)
}

func TestPaymentRequestCreate(t *testing.T) {
	userID := uuid.New()
	stub := &stubPaymentService{
		created: &payments.PaymentRequestDTO{
			ID:                uuid.New(),
			AmountSatoshis:    50_000,
			Status:            "pending",
			PaymentRequestURL: "https://pay.example/abc",
		},
	}

	body := []byte(`{"amount_satoshis": 50000, "note": "coffee"}`)
	rec := httptest.NewRecorder()
	PaymentRequestCreate(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/payment-requests", body, userID))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, stub.gotUserID)
	assert.Equal(t, int64(50_000), stub.gotCreate.AmountSatoshis)
	assert.Equal(t, "coffee", stub.gotCreate.Note)
}

func TestPaymentRequestCreateRejectsZeroAmount(t *testing.T) {
	stub := &stubPaymentService{}
	body := []byte(`{"amount_satoshis": 0}`)
	rec := httptest.NewRecorder()
	PaymentRequestCreate(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/payment-requests", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentRequestCreateRequiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment-requests", bytes.NewReader([]byte(`{"amount_satoshis": 1}`)))
	PaymentRequestCreate(&stubPaymentService{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentRequestList(t *testing.T) {
	userID := uuid.New()
	stub := &stubPaymentService{
		listed: []payments.PaymentRequestDTO{
			{ID: uuid.New(), Status: "completed"},
			{ID: uuid.New(), Status: "pending"},
		},
	}

	rec := httptest.NewRecorder()
	PaymentRequestList(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/payment-requests", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []payments.PaymentRequestDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestPaymentRequestQR(t *testing.T) {
	userID := uuid.New()
	requestID := uuid.New()
	stub := &stubPaymentService{
		owned: &payments.PaymentRequestDTO{
			ID:                requestID,
			PaymentRequestURL: "https://pay.example/abc",
		},
	}

	req := authedRequest(http.MethodGet, "/api/payment-requests/"+requestID.String()+"/qr", nil, userID)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("requestId", requestID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	PaymentRequestQR(stub, qr.NewGenerator(0), testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestPaymentRequestQRInvalidID(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/payment-requests/nope/qr", nil, uuid.New())
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("requestId", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	PaymentRequestQR(&stubPaymentService{}, qr.NewGenerator(0), testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentRequestQRNotOwned(t *testing.T) {
	requestID := uuid.New()
	stub := &stubPaymentService{err: pkgerrors.New(pkgerrors.CodeForbidden, "payment request not owned by caller")}

	req := authedRequest(http.MethodGet, "/api/payment-requests/"+requestID.String()+"/qr", nil, uuid.New())
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("requestId", requestID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	PaymentRequestQR(stub, qr.NewGenerator(0), testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
