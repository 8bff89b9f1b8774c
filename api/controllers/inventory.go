package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/api/responses"
	"github.com/big-riz/HandcashIntegration/api/validators"
	"github.com/big-riz/HandcashIntegration/internal/inventory"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const maxInventoryOffset = 1 << 20

// Inventory returns the caller's full wallet inventory, optionally filtered
// by collection, search string, and attribute filters. The attributes query
// parameter carries a JSON array of vendor attribute filters.
func Inventory(fetcher inventoryLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authToken := middleware.AuthTokenFromContext(r.Context())
		if authToken == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		filter := inventory.Filter{
			CollectionID: strings.TrimSpace(r.URL.Query().Get("collectionId")),
			SearchString: strings.TrimSpace(r.URL.Query().Get("search")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("attributes")); raw != "" {
			var attrs []handcash.AttributeFilter
			if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attributes filter"))
				return
			}
			filter.Attributes = attrs
		}

		fetchAttributes, err := validators.ParseQueryBool(r, "fetchAttributes", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.FetchAttributes = fetchAttributes

		// A from offset asks for a single vendor window instead of the
		// accumulated inventory.
		var items []handcash.InventoryItem
		if r.URL.Query().Has("from") {
			from, err := validators.ParseQueryInt(r, "from", 0, 0, maxInventoryOffset)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			items, err = fetcher.FetchPage(r.Context(), authToken, from, filter)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else {
			items, err = fetcher.FetchAll(r.Context(), authToken, filter)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, items)
	}
}
