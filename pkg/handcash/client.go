package handcash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/big-riz/HandcashIntegration/pkg/config"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const (
	headerAppID     = "App-Id"
	headerAppSecret = "App-Secret"
	headerAuthToken = "Authorization"

	profilePath        = "/v1/connect/profile/currentUserProfile"
	paymentRequestPath = "/v3/paymentRequests"
	inventoryPath      = "/v3/itemsInventory"

	defaultRequestTimeout = 30 * time.Second
)

var (
	errAppIDRequired     = errors.New("handcash app id is required")
	errAppSecretRequired = errors.New("handcash app secret is required")
	errLoggerRequired    = errors.New("handcash logger is required")
	errAuthTokenRequired = errors.New("handcash auth token is required")
)

// Client exposes the HandCash Connect surface with centralized auth headers,
// logging, and error mapping. A single client serves every user; the per-user
// auth token is passed on each call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appSecret  string
	logger     *logger.Logger
}

// NewClient initializes the HandCash wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.HandCashConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	appID := strings.TrimSpace(cfg.AppID)
	if appID == "" {
		return nil, errAppIDRequired
	}
	appSecret := strings.TrimSpace(cfg.AppSecret)
	if appSecret == "" {
		return nil, errAppSecretRequired
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appID:      appID,
		appSecret:  appSecret,
		logger:     logg,
	}

	logg.Info(ctx, "handcash client initialized")
	return c, nil
}

// AppID returns the configured HandCash application id.
func (c *Client) AppID() string {
	if c == nil {
		return ""
	}
	return c.appID
}

// AppSecret returns the configured HandCash application secret. Webhook
// verification compares incoming signatures against it.
func (c *Client) AppSecret() string {
	if c == nil {
		return ""
	}
	return c.appSecret
}

// GetProfile resolves the wallet profile behind an auth token.
func (c *Client) GetProfile(ctx context.Context, authToken string) (*Profile, error) {
	if strings.TrimSpace(authToken) == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, errAuthTokenRequired, "missing auth token")
	}
	c.log(ctx, "request", "get_profile", nil)

	var profile Profile
	if err := c.doJSON(ctx, http.MethodGet, profilePath, authToken, nil, &profile); err != nil {
		c.log(ctx, "error", "get_profile", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "get_profile", map[string]any{"handle": profile.PublicProfile.Handle})
	return &profile, nil
}

// CreatePaymentRequest submits a hosted payment request on behalf of the app.
func (c *Client) CreatePaymentRequest(ctx context.Context, params PaymentRequestParams) (*PaymentRequestResult, error) {
	c.log(ctx, "request", "create_payment_request", map[string]any{
		"product":   params.Product.Name,
		"receivers": len(params.Receivers),
	})

	var result PaymentRequestResult
	if err := c.doJSON(ctx, http.MethodPost, paymentRequestPath, "", params, &result); err != nil {
		c.log(ctx, "error", "create_payment_request", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "create_payment_request", map[string]any{"payment_request_id": result.ID})
	return &result, nil
}

// GetItemsInventory fetches one window of the user's wallet inventory.
func (c *Client) GetItemsInventory(ctx context.Context, authToken string, filter InventoryFilter) ([]InventoryItem, error) {
	if strings.TrimSpace(authToken) == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, errAuthTokenRequired, "missing auth token")
	}
	c.log(ctx, "request", "get_items_inventory", map[string]any{
		"from":          filter.From,
		"to":            filter.To,
		"collection_id": filter.CollectionID,
	})

	var payload struct {
		Items []InventoryItem `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodPost, inventoryPath, authToken, filter, &payload); err != nil {
		c.log(ctx, "error", "get_items_inventory", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "get_items_inventory", map[string]any{"count": len(payload.Items)})
	return payload.Items, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, authToken string, body, out any) error {
	return doJSON(ctx, c.httpClient, c.baseURL+path, method, c.headers(authToken), body, out)
}

func (c *Client) headers(authToken string) http.Header {
	h := http.Header{}
	h.Set(headerAppID, c.appID)
	h.Set(headerAppSecret, c.appSecret)
	if authToken != "" {
		h.Set(headerAuthToken, "Bearer "+authToken)
	}
	return h
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logVendorCall(ctx, c.logger, phase, op, fields)
}

func doJSON(ctx context.Context, httpClient *http.Client, url, method string, headers http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode handcash request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build handcash request")
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "handcash request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read handcash response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapVendorError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode handcash response")
	}
	return nil
}

func mapVendorError(status int, body []byte) error {
	message := "handcash request failed"
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		message = payload.Message
	}
	return pkgerrors.New(domainCodeForStatus(status), fmt.Sprintf("handcash: %s", message)).
		WithDetails(map[string]any{"vendor_status": status})
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return pkgerrors.CodeTimeout
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}

func logVendorCall(ctx context.Context, logg *logger.Logger, phase, op string, fields map[string]any) {
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = redactField(k, v)
	}
	ctx = logg.WithFields(ctx, logFields)
	switch phase {
	case "error":
		logg.Error(ctx, fmt.Sprintf("handcash %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		logg.Info(ctx, fmt.Sprintf("handcash %s", phase))
	}
}

func redactField(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "email", "phone", "paymail"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}
