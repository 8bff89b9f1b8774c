package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/big-riz/HandcashIntegration/pkg/handcash"
)

func TestProfileReturnsVendorProfile(t *testing.T) {
	fetcher := &stubProfileFetcher{profile: walletProfile("satoshi")}

	rec := httptest.NewRecorder()
	Profile(fetcher, testLogger()).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/profile", nil, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data handcash.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "satoshi", envelope.Data.PublicProfile.Handle)
}

func TestProfileRequiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	Profile(&stubProfileFetcher{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
