package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// Repository exposes payment request persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDTO holds the data required to persist a payment request row.
type CreateDTO struct {
	HandcashRequestID string
	UserID            uuid.UUID
	AmountSatoshis    int64
	PaymentRequestURL string
	QRCodeURL         string
}

// Create inserts a pending payment request.
func (r *Repository) Create(ctx context.Context, dto CreateDTO) (*models.PaymentRequest, error) {
	request := &models.PaymentRequest{
		ID:                uuid.New(),
		HandcashRequestID: dto.HandcashRequestID,
		UserID:            dto.UserID,
		AmountSatoshis:    dto.AmountSatoshis,
		Status:            models.PaymentStatusPending,
		PaymentRequestURL: dto.PaymentRequestURL,
		QRCodeURL:         dto.QRCodeURL,
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// FindByID loads a payment request by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByHandcashID retrieves the payment request with the vendor-assigned id.
func (r *Repository) FindByHandcashID(ctx context.Context, handcashID string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := r.db.WithContext(ctx).
		Where("handcash_request_id = ?", handcashID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByUser returns the user's payment requests, newest first, each with
// its webhook events newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("WebhookEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// terminalStatuses are sticky: once a request reaches one of these, later
// deliveries can append events but never move the status again.
var terminalStatuses = []string{
	models.PaymentStatusCompleted,
	models.PaymentStatusFailed,
	models.PaymentStatusDeclined,
	models.PaymentStatusExpired,
}

// UpdateStatusWithEvent transitions the request status and appends the
// webhook event in a single transaction. The event row is append-only and
// the status transition is monotonic: a late or replayed delivery cannot
// revert a terminal status.
func (r *Repository) UpdateStatusWithEvent(ctx context.Context, id uuid.UUID, status, eventType string, payload []byte) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.PaymentRequest{}).
			Where("id = ?", id).
			Where("status NOT IN ?", terminalStatuses).
			UpdateColumn("status", status).Error
		if err != nil {
			return err
		}
		event := &models.WebhookEvent{
			ID:               uuid.New(),
			PaymentRequestID: &id,
			EventType:        eventType,
			Payload:          payload,
		}
		return tx.Create(event).Error
	})
}

// RecordOrphanEvent appends a webhook event that matched no payment request.
func (r *Repository) RecordOrphanEvent(ctx context.Context, eventType string, payload []byte) error {
	event := &models.WebhookEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
	}
	return r.db.WithContext(ctx).Create(event).Error
}
