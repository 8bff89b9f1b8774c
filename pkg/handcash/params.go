package handcash

import "github.com/shopspring/decimal"

// PaymentReceiver is a single destination of a payment request.
type PaymentReceiver struct {
	SendAmount  decimal.Decimal `json:"sendAmount"`
	Destination string          `json:"destination"`
}

// PaymentProduct describes the good a payment request is for. It is shown
// to the payer inside the wallet UI.
type PaymentProduct struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// WebhookNotification configures the server-to-server completion callback.
type WebhookNotification struct {
	WebhookURL       string            `json:"webhookUrl"`
	CustomParameters map[string]string `json:"customParameters,omitempty"`
}

// PaymentRequestParams is the payload for creating a hosted payment request.
type PaymentRequestParams struct {
	Product                  PaymentProduct       `json:"product"`
	Receivers                []PaymentReceiver    `json:"receivers"`
	InstrumentCurrencyCode   string               `json:"instrumentCurrencyCode"`
	DenominationCurrencyCode string               `json:"denominatedIn"`
	RequestedUserData        []string             `json:"requestedUserData,omitempty"`
	Notifications            *WebhookNotification `json:"notifications,omitempty"`
	ExpirationType           string               `json:"expirationType,omitempty"`
	RedirectURL              string               `json:"redirectUrl,omitempty"`
}

// MediaDetails points at the hosted artwork for an item or collection.
type MediaDetails struct {
	Image MediaImage `json:"image"`
}

type MediaImage struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

// CollectionOrderParams creates a collection creation order.
type CollectionOrderParams struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	MediaDetails MediaDetails `json:"mediaDetails"`
}

// ItemAttribute is a display attribute attached to a minted item.
type ItemAttribute struct {
	Name        string `json:"name"`
	Value       any    `json:"value"`
	DisplayType string `json:"displayType"`
}

// ItemParams describes one item inside an items creation order.
type ItemParams struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Rarity       string          `json:"rarity,omitempty"`
	Attributes   []ItemAttribute `json:"attributes,omitempty"`
	MediaDetails MediaDetails    `json:"mediaDetails"`
	Quantity     int             `json:"quantity"`
}

// ItemsOrderParams creates an items creation order inside a collection.
type ItemsOrderParams struct {
	CollectionID string       `json:"collectionId"`
	Items        []ItemParams `json:"items"`
}

// AttributeFilter narrows an inventory query by item attribute.
type AttributeFilter struct {
	Name        string `json:"name"`
	DisplayType string `json:"displayType,omitempty"`
	Operation   string `json:"operation"`
	Value       any    `json:"value"`
}

// InventoryFilter selects a page window of a user's inventory. From and To
// are zero-based item offsets, half-open on neither end: the vendor returns
// items From through To inclusive.
type InventoryFilter struct {
	From            int               `json:"from"`
	To              int               `json:"to"`
	CollectionID    string            `json:"collectionId,omitempty"`
	SearchString    string            `json:"searchString,omitempty"`
	Attributes      []AttributeFilter `json:"attributes,omitempty"`
	FetchAttributes bool              `json:"fetchAttributes,omitempty"`
}
