package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is an append-only record of a vendor callback. Rows are never
// mutated after insert.
type WebhookEvent struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentRequestID *uuid.UUID `gorm:"column:payment_request_id;type:uuid"`
	EventType        string     `gorm:"column:event_type;type:text;not null"`
	Payload          []byte     `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
}
