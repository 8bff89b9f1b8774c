package payments

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// PaymentRequestDTO is the transport shape of a payment request with its
// webhook history.
type PaymentRequestDTO struct {
	ID                uuid.UUID         `json:"id"`
	HandcashRequestID string            `json:"handcash_request_id"`
	AmountSatoshis    int64             `json:"amount_satoshis"`
	Status            string            `json:"status"`
	PaymentRequestURL string            `json:"payment_request_url"`
	QRCodeURL         string            `json:"qr_code_url"`
	CreatedAt         time.Time         `json:"created_at"`
	WebhookEvents     []WebhookEventDTO `json:"webhook_events"`
}

// WebhookEventDTO is the transport shape of a recorded vendor callback.
type WebhookEventDTO struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func FromModel(p *models.PaymentRequest) *PaymentRequestDTO {
	if p == nil {
		return nil
	}
	events := make([]WebhookEventDTO, 0, len(p.WebhookEvents))
	for _, event := range p.WebhookEvents {
		events = append(events, WebhookEventDTO{
			ID:        event.ID,
			EventType: event.EventType,
			Payload:   json.RawMessage(event.Payload),
			CreatedAt: event.CreatedAt,
		})
	}
	return &PaymentRequestDTO{
		ID:                p.ID,
		HandcashRequestID: p.HandcashRequestID,
		AmountSatoshis:    p.AmountSatoshis,
		Status:            p.Status,
		PaymentRequestURL: p.PaymentRequestURL,
		QRCodeURL:         p.QRCodeURL,
		CreatedAt:         p.CreatedAt,
		WebhookEvents:     events,
	}
}

func FromModels(models []models.PaymentRequest) []PaymentRequestDTO {
	out := make([]PaymentRequestDTO, 0, len(models))
	for i := range models {
		out = append(out, *FromModel(&models[i]))
	}
	return out
}
