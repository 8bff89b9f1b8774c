package handcash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/big-riz/HandcashIntegration/pkg/config"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const (
	collectionOrderPath = "/v3/itemCreationOrder/collection"
	itemsOrderPath      = "/v3/itemCreationOrder/items"
	creationOrderPath   = "/v3/itemCreationOrder"
	userItemsPath       = "/v3/minter/items"
)

var (
	errMinterAppIDRequired     = errors.New("minter app id is required")
	errMinterAppSecretRequired = errors.New("minter app secret is required")
	errMinterTokenRequired     = errors.New("minter auth token is required")
	errOrderIDRequired         = errors.New("creation order id is required")
)

// Minter drives item and collection creation orders against the business
// wallet. Unlike Client it carries its own auth token: minting always acts
// as the application, never as an end user.
type Minter struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appSecret  string
	authToken  string
	logger     *logger.Logger
}

// NewMinter initializes the minting wrapper and validates the credentials.
func NewMinter(ctx context.Context, cfg config.MinterConfig, baseURL string, logg *logger.Logger) (*Minter, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	appID := strings.TrimSpace(cfg.AppID)
	if appID == "" {
		return nil, errMinterAppIDRequired
	}
	appSecret := strings.TrimSpace(cfg.AppSecret)
	if appSecret == "" {
		return nil, errMinterAppSecretRequired
	}
	authToken := strings.TrimSpace(cfg.AuthToken)
	if authToken == "" {
		return nil, errMinterTokenRequired
	}

	m := &Minter{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
		appSecret:  appSecret,
		authToken:  authToken,
		logger:     logg,
	}

	logg.Info(ctx, "handcash minter initialized")
	return m, nil
}

// CreateCollectionOrder submits a collection creation order.
func (m *Minter) CreateCollectionOrder(ctx context.Context, params CollectionOrderParams) (*CreationOrder, error) {
	m.log(ctx, "request", "create_collection_order", map[string]any{"name": params.Name})

	var order CreationOrder
	if err := m.doJSON(ctx, http.MethodPost, collectionOrderPath, params, &order); err != nil {
		m.log(ctx, "error", "create_collection_order", map[string]any{"error": err.Error()})
		return nil, err
	}

	m.log(ctx, "response", "create_collection_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

// CreateItemsOrder submits an items creation order inside a collection.
func (m *Minter) CreateItemsOrder(ctx context.Context, params ItemsOrderParams) (*CreationOrder, error) {
	m.log(ctx, "request", "create_items_order", map[string]any{
		"collection_id": params.CollectionID,
		"items":         len(params.Items),
	})

	var order CreationOrder
	if err := m.doJSON(ctx, http.MethodPost, itemsOrderPath, params, &order); err != nil {
		m.log(ctx, "error", "create_items_order", map[string]any{"error": err.Error()})
		return nil, err
	}

	m.log(ctx, "response", "create_items_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

// GetItemCreationOrder fetches the current state of a creation order.
func (m *Minter) GetItemCreationOrder(ctx context.Context, orderID string) (*CreationOrder, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errOrderIDRequired, "missing order id")
	}
	m.log(ctx, "request", "get_creation_order", map[string]any{"order_id": orderID})

	var order CreationOrder
	path := fmt.Sprintf("%s/%s", creationOrderPath, orderID)
	if err := m.doJSON(ctx, http.MethodGet, path, nil, &order); err != nil {
		m.log(ctx, "error", "get_creation_order", map[string]any{"error": err.Error()})
		return nil, err
	}

	m.log(ctx, "response", "get_creation_order", map[string]any{
		"order_id":  order.ID,
		"status":    order.Status,
		"finalized": order.Finalized(),
	})
	return &order, nil
}

// GetUserItems lists items the business wallet has minted.
func (m *Minter) GetUserItems(ctx context.Context, filter InventoryFilter) ([]InventoryItem, error) {
	m.log(ctx, "request", "get_user_items", map[string]any{
		"from": filter.From,
		"to":   filter.To,
	})

	var payload struct {
		Items []InventoryItem `json:"items"`
	}
	if err := m.doJSON(ctx, http.MethodPost, userItemsPath, filter, &payload); err != nil {
		m.log(ctx, "error", "get_user_items", map[string]any{"error": err.Error()})
		return nil, err
	}

	m.log(ctx, "response", "get_user_items", map[string]any{"count": len(payload.Items)})
	return payload.Items, nil
}

func (m *Minter) doJSON(ctx context.Context, method, path string, body, out any) error {
	headers := http.Header{}
	headers.Set(headerAppID, m.appID)
	headers.Set(headerAppSecret, m.appSecret)
	headers.Set(headerAuthToken, "Bearer "+m.authToken)
	return doJSON(ctx, m.httpClient, m.baseURL+path, method, headers, body, out)
}

func (m *Minter) log(ctx context.Context, phase, op string, fields map[string]any) {
	if m == nil || m.logger == nil {
		return
	}
	logVendorCall(ctx, m.logger, phase, op, fields)
}
