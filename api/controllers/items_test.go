package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/big-riz/HandcashIntegration/internal/inventory"
	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
)

type stubMintService struct {
	item *items.ItemDTO
	err  error

	gotUserID uuid.UUID
	gotSeed   int
	gotSupply int
}

func (s *stubMintService) MintFromSeed(_ context.Context, userID uuid.UUID, seed, tokenSupply int) (*items.ItemDTO, error) {
	s.gotUserID = userID
	s.gotSeed = seed
	s.gotSupply = tokenSupply
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

type stubItemLister struct {
	items []models.Item
	err   error
}

func (s *stubItemLister) ListByUser(_ context.Context, _ uuid.UUID) ([]models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubInventoryLister struct {
	items     []handcash.InventoryItem
	err       error
	gotFilter inventory.Filter
	gotFrom   int
	paged     bool
}

func (s *stubInventoryLister) FetchAll(_ context.Context, _ string, filter inventory.Filter) ([]handcash.InventoryItem, error) {
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubInventoryLister) FetchPage(_ context.Context, _ string, from int, filter inventory.Filter) ([]handcash.InventoryItem, error) {
	s.gotFilter = filter
	s.gotFrom = from
	s.paged = true
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubMintedItemsLister struct {
	items []handcash.InventoryItem
	err   error
}

func (s *stubMintedItemsLister) GetUserItems(_ context.Context, _ handcash.InventoryFilter) ([]handcash.InventoryItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func TestItemMint(t *testing.T) {
	userID := uuid.New()
	stub := &stubMintService{
		item: &items.ItemDTO{
			ID:             uuid.New(),
			HandcashItemID: "hc-item-1",
			Name:           "Collectible #7",
			TokenSupply:    3,
		},
	}

	body := []byte(`{"seed": 7, "token_supply": 3}`)
	rec := httptest.NewRecorder()
	ItemMint(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/items", body, userID))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, stub.gotUserID)
	assert.Equal(t, 7, stub.gotSeed)
	assert.Equal(t, 3, stub.gotSupply)
}

func TestItemMintRejectsMissingSupply(t *testing.T) {
	rec := httptest.NewRecorder()
	ItemMint(&stubMintService{}, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/items", []byte(`{"seed": 1}`), uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemMintTimeoutSurfaces(t *testing.T) {
	stub := &stubMintService{err: pkgerrors.New(pkgerrors.CodeTimeout, "mint timed out")}

	body := []byte(`{"seed": 1, "token_supply": 1}`)
	rec := httptest.NewRecorder()
	ItemMint(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/items", body, uuid.New()))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestItemListMergesVendorAndLocalRows(t *testing.T) {
	userID := uuid.New()
	localID := uuid.New()

	repo := &stubItemLister{
		items: []models.Item{
			{ID: localID, UserID: userID, HandcashItemID: "hc-item-1", Name: "Collectible #1"},
		},
	}
	minted := &stubMintedItemsLister{
		items: []handcash.InventoryItem{
			{ID: "hc-item-1", Name: "Collectible #1"},
			{ID: "hc-item-2", Name: "Elsewhere Item"},
		},
	}

	rec := httptest.NewRecorder()
	ItemList(repo, minted, testLogger()).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/items", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []MergedItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)

	require.NotNil(t, envelope.Data[0].DBID)
	assert.Equal(t, localID, *envelope.Data[0].DBID)
	assert.Nil(t, envelope.Data[1].DBID)
}

func TestItemListRequiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/items", bytes.NewReader(nil))
	ItemList(&stubItemLister{}, &stubMintedItemsLister{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
