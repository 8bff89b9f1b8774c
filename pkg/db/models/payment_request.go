package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment request statuses. Transitions happen only on webhook receipt.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusDeclined  = "declined"
	PaymentStatusExpired   = "expired"
)

// PaymentRequest tracks a micropayment requested through HandCash.
type PaymentRequest struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	HandcashRequestID string    `gorm:"column:handcash_request_id;type:text;not null;uniqueIndex"`
	UserID            uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	AmountSatoshis    int64     `gorm:"column:amount_satoshis;not null"`
	Status            string    `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentRequestURL string    `gorm:"column:payment_request_url;type:text;not null"`
	QRCodeURL         string    `gorm:"column:qr_code_url;type:text;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`

	WebhookEvents []WebhookEvent `gorm:"foreignKey:PaymentRequestID"`
}
