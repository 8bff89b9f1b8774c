package inventory

import (
	"context"

	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const pageSize = 50

// inventoryClient is the vendor surface the fetcher needs.
type inventoryClient interface {
	GetItemsInventory(ctx context.Context, authToken string, filter handcash.InventoryFilter) ([]handcash.InventoryItem, error)
}

// Fetcher pages through a wallet's full inventory. The vendor caps each
// window at 50 items, so the fetcher walks windows until a short page
// signals the end.
type Fetcher struct {
	client inventoryClient
	logger *logger.Logger
}

// NewFetcher wires the inventory fetcher.
func NewFetcher(client inventoryClient, logg *logger.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logg}
}

// Filter narrows an inventory fetch. Zero value fetches everything.
type Filter struct {
	CollectionID    string                     `json:"collection_id,omitempty"`
	SearchString    string                     `json:"search_string,omitempty"`
	Attributes      []handcash.AttributeFilter `json:"attributes,omitempty"`
	FetchAttributes bool                       `json:"fetch_attributes,omitempty"`
}

// FetchAll accumulates every inventory item matching the filter.
func (f *Fetcher) FetchAll(ctx context.Context, authToken string, filter Filter) ([]handcash.InventoryItem, error) {
	var all []handcash.InventoryItem

	for from := 0; ; from += pageSize {
		page, err := f.client.GetItemsInventory(ctx, authToken, handcash.InventoryFilter{
			From:            from,
			To:              from + pageSize,
			CollectionID:    filter.CollectionID,
			SearchString:    filter.SearchString,
			Attributes:      filter.Attributes,
			FetchAttributes: filter.FetchAttributes,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	ctx = f.logger.WithField(ctx, "count", len(all))
	f.logger.Info(ctx, "inventory fetched")
	return all, nil
}

// FetchPage returns a single vendor window without accumulation.
func (f *Fetcher) FetchPage(ctx context.Context, authToken string, from int, filter Filter) ([]handcash.InventoryItem, error) {
	if from < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from must not be negative")
	}
	return f.client.GetItemsInventory(ctx, authToken, handcash.InventoryFilter{
		From:            from,
		To:              from + pageSize,
		CollectionID:    filter.CollectionID,
		SearchString:    filter.SearchString,
		Attributes:      filter.Attributes,
		FetchAttributes: filter.FetchAttributes,
	})
}
