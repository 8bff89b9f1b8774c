package handcash

import "strings"

// Profile is the wallet account behind an auth token.
type Profile struct {
	PublicProfile  PublicProfile   `json:"publicProfile"`
	PrivateProfile *PrivateProfile `json:"privateProfile,omitempty"`
}

type PublicProfile struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Paymail     string `json:"paymail"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

type PrivateProfile struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// PaymentRequestResult is the vendor's response to a payment request submission.
type PaymentRequestResult struct {
	ID                      string `json:"id"`
	PaymentRequestURL       string `json:"paymentRequestUrl"`
	PaymentRequestQRCodeURL string `json:"paymentRequestQrCodeUrl"`
}

// Creation order statuses observed across vendor API revisions.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// CreationOrder is the normalized shape of an item (or collection) creation
// order. Older API revisions signal completion through a per-item origin
// instead of the status field, so callers should rely on Finalized rather
// than inspecting either directly.
type CreationOrder struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

// OrderItem is a single entry inside a creation order.
type OrderItem struct {
	ID          string  `json:"id"`
	Origin      *string `json:"origin,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl"`
	Count       int     `json:"count"`
}

// Finalized reports whether the order has reached its terminal minted state,
// unifying the status-field and origin-marker signals.
func (o *CreationOrder) Finalized() bool {
	if o == nil {
		return false
	}
	if strings.EqualFold(o.Status, OrderStatusCompleted) {
		return true
	}
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if item.Origin == nil || *item.Origin == "" {
			return false
		}
	}
	return true
}

// InventoryItem is an item held in a user's wallet inventory.
type InventoryItem struct {
	ID          string              `json:"id"`
	Origin      *string             `json:"origin,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	ImageURL    string              `json:"imageUrl"`
	Collection  *ItemCollection     `json:"collection,omitempty"`
	Attributes  []ItemAttributeInfo `json:"attributes,omitempty"`
}

type ItemCollection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemAttributeInfo struct {
	Name        string `json:"name"`
	Value       any    `json:"value"`
	DisplayType string `json:"displayType"`
}

type apiError struct {
	Message string `json:"message"`
}
