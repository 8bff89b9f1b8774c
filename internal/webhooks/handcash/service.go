package handcashwebhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
	"github.com/big-riz/HandcashIntegration/pkg/metrics"
)

// Default mint fired on completed payments when the feature flag is on.
const (
	defaultMintSeed   = 0
	defaultMintSupply = 1
)

// Event is the payload HandCash posts on payment notifications. The app
// secret rides in the body; there is no separate signature header.
type Event struct {
	PaymentRequestID string `json:"paymentRequestId"`
	Status           string `json:"status"`
	TransactionID    string `json:"transactionId"`
	AppSecret        string `json:"appSecret"`
}

type paymentsRepo interface {
	FindByHandcashID(ctx context.Context, handcashID string) (*models.PaymentRequest, error)
	UpdateStatusWithEvent(ctx context.Context, id uuid.UUID, status, eventType string, payload []byte) error
	RecordOrphanEvent(ctx context.Context, eventType string, payload []byte) error
}

type minterService interface {
	MintFromSeed(ctx context.Context, userID uuid.UUID, seed, tokenSupply int) (*items.ItemDTO, error)
}

// ServiceParams collects the webhook service dependencies.
type ServiceParams struct {
	Payments    paymentsRepo
	Guard       *IdempotencyGuard
	Minter      minterService
	Metrics     *metrics.WebhookMetrics
	Logger      *logger.Logger
	AppSecret   string
	WebhookMint bool
}

// Service processes payment webhook deliveries.
type Service struct {
	payments    paymentsRepo
	guard       *IdempotencyGuard
	minter      minterService
	metrics     *metrics.WebhookMetrics
	logger      *logger.Logger
	appSecret   []byte
	webhookMint bool
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if params.AppSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "app secret required")
	}
	if params.WebhookMint && params.Minter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "minter required when webhook mint is enabled")
	}
	if params.Metrics == nil {
		params.Metrics = metrics.NewWebhookMetrics(nil)
	}
	return &Service{
		payments:    params.Payments,
		guard:       params.Guard,
		minter:      params.Minter,
		metrics:     params.Metrics,
		logger:      params.Logger,
		appSecret:   []byte(params.AppSecret),
		webhookMint: params.WebhookMint,
	}, nil
}

// HandleDelivery verifies, deduplicates, and records one webhook delivery.
func (s *Service) HandleDelivery(ctx context.Context, raw []byte) error {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		s.metrics.IncRejected("bad_payload")
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode webhook payload")
	}

	if subtle.ConstantTimeCompare([]byte(event.AppSecret), s.appSecret) != 1 {
		s.metrics.IncRejected("bad_secret")
		return pkgerrors.New(pkgerrors.CodeForbidden, "invalid webhook signature")
	}

	if event.PaymentRequestID == "" {
		s.metrics.IncRejected("missing_request_id")
		return pkgerrors.New(pkgerrors.CodeValidation, "paymentRequestId is required")
	}

	if s.guard != nil {
		seen, err := s.guard.CheckAndMark(ctx, s.deliveryID(event))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency check")
		}
		if seen {
			s.metrics.IncReplayed()
			ctx = s.logger.WithField(ctx, "payment_request_id", event.PaymentRequestID)
			s.logger.Info(ctx, "webhook replay skipped")
			return nil
		}
	}

	if err := s.process(ctx, event, raw); err != nil {
		if s.guard != nil {
			// Unmark so the vendor's retry is not swallowed.
			if delErr := s.guard.Delete(ctx, s.deliveryID(event)); delErr != nil {
				s.logger.Error(ctx, "clear idempotency mark", delErr)
			}
		}
		return err
	}
	return nil
}

func (s *Service) process(ctx context.Context, event Event, raw []byte) error {
	request, err := s.payments.FindByHandcashID(ctx, event.PaymentRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncRejected("unknown_request")
			// Keep the delivery for later reconciliation even though it
			// matched nothing.
			if recErr := s.payments.RecordOrphanEvent(ctx, deriveEventType(event), raw); recErr != nil {
				s.logger.Error(ctx, "record orphan webhook event", recErr)
			}
			return pkgerrors.New(pkgerrors.CodeNotFound, "payment request not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment request")
	}

	eventType := deriveEventType(event)
	if err := s.payments.UpdateStatusWithEvent(ctx, request.ID, eventType, eventType, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record webhook event")
	}
	s.metrics.IncReceived(eventType)

	ctx = s.logger.WithFields(ctx, map[string]any{
		"payment_request_id": request.ID.String(),
		"event_type":         eventType,
	})
	s.logger.Info(ctx, "webhook processed")

	if s.webhookMint && eventType == models.PaymentStatusCompleted {
		if _, err := s.minter.MintFromSeed(ctx, request.UserID, defaultMintSeed, defaultMintSupply); err != nil {
			// The payment is already recorded; a failed bonus mint must not
			// fail the delivery.
			s.logger.Error(ctx, "webhook mint failed", err)
		}
	}
	return nil
}

// deriveEventType normalizes vendor payloads that signal completion through
// a transaction id instead of an explicit status.
func deriveEventType(event Event) string {
	if event.Status != "" {
		return event.Status
	}
	if event.TransactionID != "" {
		return models.PaymentStatusCompleted
	}
	return models.PaymentStatusPending
}

func (s *Service) deliveryID(event Event) string {
	if event.TransactionID != "" {
		return event.TransactionID
	}
	return event.PaymentRequestID + ":" + deriveEventType(event)
}
