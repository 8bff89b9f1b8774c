package handcash

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/big-riz/HandcashIntegration/pkg/config"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), config.HandCashConfig{
		AppID:     "app-id",
		AppSecret: "app-secret",
		BaseURL:   baseURL,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientValidatesCredentials(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, config.HandCashConfig{AppSecret: "s"}, testLogger()); err == nil {
		t.Fatal("expected error for missing app id")
	}
	if _, err := NewClient(ctx, config.HandCashConfig{AppID: "a"}, testLogger()); err == nil {
		t.Fatal("expected error for missing app secret")
	}
	if _, err := NewClient(ctx, config.HandCashConfig{AppID: "a", AppSecret: "s"}, nil); err == nil {
		t.Fatal("expected error for missing logger")
	}
}

func TestGetProfileSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAppID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAppID = r.Header.Get("App-Id")
		if r.URL.Path != profilePath {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Profile{PublicProfile: PublicProfile{Handle: "satoshi"}})
	}))
	defer srv.Close()

	profile, err := testClient(t, srv.URL).GetProfile(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.PublicProfile.Handle != "satoshi" {
		t.Fatalf("unexpected handle %q", profile.PublicProfile.Handle)
	}
	if gotAuth != "Bearer user-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotAppID != "app-id" {
		t.Fatalf("unexpected app id header %q", gotAppID)
	}
}

func TestGetProfileRejectsBlankToken(t *testing.T) {
	_, err := testClient(t, "http://unused").GetProfile(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestCreatePaymentRequestDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != paymentRequestPath {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var params PaymentRequestParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Fatalf("decode params: %v", err)
		}
		if params.Product.Name != "Coffee" {
			t.Fatalf("unexpected product %q", params.Product.Name)
		}
		json.NewEncoder(w).Encode(PaymentRequestResult{
			ID:                      "pr_123",
			PaymentRequestURL:       "https://pay.example/pr_123",
			PaymentRequestQRCodeURL: "https://pay.example/pr_123/qr",
		})
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).CreatePaymentRequest(context.Background(), PaymentRequestParams{
		Product: PaymentProduct{Name: "Coffee"},
	})
	if err != nil {
		t.Fatalf("CreatePaymentRequest: %v", err)
	}
	if result.ID != "pr_123" {
		t.Fatalf("unexpected id %q", result.ID)
	}
}

func TestVendorErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid auth token"})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GetProfile(context.Background(), "bad-token")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", typed.Code())
	}
}

func TestDomainCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusRequestTimeout, pkgerrors.CodeTimeout},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
	}
	for _, tt := range tests {
		if got := domainCodeForStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestRedactField(t *testing.T) {
	if out := redactField("auth_token", "abc"); out != "[REDACTED]" {
		t.Fatalf("expected redacted value, got %v", out)
	}
	if out := redactField("count", 3); out != 3 {
		t.Fatalf("unexpected redaction for safe key")
	}
}
