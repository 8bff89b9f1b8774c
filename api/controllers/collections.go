package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/api/responses"
	"github.com/big-riz/HandcashIntegration/internal/inventory"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

type collectionLister interface {
	List(ctx context.Context) ([]models.Collection, error)
}

// CollectionSummary is a collection the caller actually holds items from,
// with the count taken from their wallet inventory.
type CollectionSummary struct {
	ID                   uuid.UUID `json:"id"`
	HandcashCollectionID string    `json:"handcash_collection_id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	ImageURL             *string   `json:"image_url,omitempty"`
	ItemCount            int       `json:"item_count"`
	CreatedAt            time.Time `json:"created_at"`
}

// CollectionList returns known collections restricted to those present in
// the caller's wallet inventory, each with its held-item count.
func CollectionList(repo collectionLister, fetcher inventoryLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authToken := middleware.AuthTokenFromContext(r.Context())
		if authToken == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		collections, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorItems, err := fetcher.FetchAll(r.Context(), authToken, inventory.Filter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		counts := make(map[string]int)
		for _, item := range vendorItems {
			if item.Collection == nil || item.Collection.ID == "" {
				continue
			}
			counts[item.Collection.ID]++
		}

		summaries := make([]CollectionSummary, 0, len(collections))
		for _, collection := range collections {
			count, held := counts[collection.HandcashCollectionID]
			if !held {
				continue
			}
			summaries = append(summaries, CollectionSummary{
				ID:                   collection.ID,
				HandcashCollectionID: collection.HandcashCollectionID,
				Name:                 collection.Name,
				Description:          collection.Description,
				ImageURL:             collection.ImageURL,
				ItemCount:            count,
				CreatedAt:            collection.CreatedAt,
			})
		}

		responses.WriteSuccess(w, summaries)
	}
}
