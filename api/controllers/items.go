package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/api/responses"
	"github.com/big-riz/HandcashIntegration/api/validators"
	"github.com/big-riz/HandcashIntegration/internal/inventory"
	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

type mintService interface {
	MintFromSeed(ctx context.Context, userID uuid.UUID, seed, tokenSupply int) (*items.ItemDTO, error)
}

type itemLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Item, error)
}

type inventoryLister interface {
	FetchAll(ctx context.Context, authToken string, filter inventory.Filter) ([]handcash.InventoryItem, error)
	FetchPage(ctx context.Context, authToken string, from int, filter inventory.Filter) ([]handcash.InventoryItem, error)
}

type mintedItemsLister interface {
	GetUserItems(ctx context.Context, filter handcash.InventoryFilter) ([]handcash.InventoryItem, error)
}

// MintItemRequest is the caller-facing input for minting a collectible.
type MintItemRequest struct {
	Seed        int `json:"seed" validate:"gte=0"`
	TokenSupply int `json:"token_supply" validate:"required,gt=0"`
}

// MergedItem is a vendor inventory item joined with its local row, when one
// exists.
type MergedItem struct {
	handcash.InventoryItem
	DBID *uuid.UUID `json:"db_id,omitempty"`
}

// ItemMint mints a seed-derived collectible for the caller and persists it
// once the creation order finalizes.
func ItemMint(svc mintService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body MintItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.MintFromSeed(r.Context(), userID, body.Seed, body.TokenSupply)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemList merges items minted through the business wallet with the caller's
// local rows so the UI can tell minted-here items from everything else.
func ItemList(repo itemLister, minted mintedItemsLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorItems, err := minted.GetUserItems(r.Context(), handcash.InventoryFilter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dbItems, err := repo.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		byHandcashID := make(map[string]uuid.UUID, len(dbItems))
		for _, item := range dbItems {
			byHandcashID[item.HandcashItemID] = item.ID
		}

		merged := make([]MergedItem, 0, len(vendorItems))
		for _, vendorItem := range vendorItems {
			entry := MergedItem{InventoryItem: vendorItem}
			if id, ok := byHandcashID[vendorItem.ID]; ok {
				dbID := id
				entry.DBID = &dbID
			}
			merged = append(merged, entry)
		}

		responses.WriteSuccess(w, merged)
	}
}
