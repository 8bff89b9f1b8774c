package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/types"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"handle": "satoshi"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["handle"] != "satoshi" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestWriteErrorMapsTypedCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "forbidden keeps message",
			err:        pkgerrors.New(pkgerrors.CodeForbidden, "invalid webhook signature"),
			wantStatus: 403,
			wantCode:   string(pkgerrors.CodeForbidden),
			wantMsg:    "invalid webhook signature",
		},
		{
			name:       "timeout keeps message",
			err:        pkgerrors.New(pkgerrors.CodeTimeout, "mint timed out"),
			wantStatus: 504,
			wantCode:   string(pkgerrors.CodeTimeout),
			wantMsg:    "mint timed out",
		},
		{
			name:       "internal hides message",
			err:        pkgerrors.New(pkgerrors.CodeInternal, "db exploded"),
			wantStatus: 500,
			wantCode:   string(pkgerrors.CodeInternal),
		},
		{
			name:       "untyped becomes internal",
			err:        context.DeadlineExceeded,
			wantStatus: 500,
			wantCode:   string(pkgerrors.CodeInternal),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var envelope types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, envelope.Error.Code)
			}
			if tt.wantMsg != "" && envelope.Error.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, envelope.Error.Message)
			}
			if tt.name == "internal hides message" && envelope.Error.Message == "db exploded" {
				t.Fatal("internal error message must not leak")
			}
		})
	}
}
