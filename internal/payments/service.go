package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/pkg/config"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const satoshisPerBSV = 100_000_000

// requester is the vendor surface the service needs.
type requester interface {
	CreatePaymentRequest(ctx context.Context, params handcash.PaymentRequestParams) (*handcash.PaymentRequestResult, error)
}

// Service creates payment requests against the vendor and tracks them.
type Service struct {
	repo        *Repository
	client      requester
	destination string
	webhookURL  string
	redirectURL string
	logger      *logger.Logger
}

var errDestinationRequired = errors.New("payment destination is required")

// NewService wires the payments service. The destination receives every
// requested payment.
func NewService(repo *Repository, client requester, cfg *config.Config, logg *logger.Logger) (*Service, error) {
	destination := strings.TrimSpace(cfg.HandCash.PayDestination)
	if destination == "" {
		return nil, errDestinationRequired
	}
	return &Service{
		repo:        repo,
		client:      client,
		destination: destination,
		webhookURL:  cfg.App.WebhookURL(),
		redirectURL: cfg.App.RedirectURL(),
		logger:      logg,
	}, nil
}

// CreateRequestDTO is the caller-facing input for a new payment request.
type CreateRequestDTO struct {
	AmountSatoshis int64  `json:"amount_satoshis" validate:"required,gt=0"`
	Note           string `json:"note" validate:"omitempty,max=140"`
}

// Create submits a payment request to the vendor and persists the pending
// row. Amounts are denominated in satoshis and converted to BSV on the wire.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, dto CreateRequestDTO) (*PaymentRequestDTO, error) {
	if dto.AmountSatoshis <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	product := handcash.PaymentProduct{Name: "Micropayment"}
	if dto.Note != "" {
		product.Description = dto.Note
	}

	sendAmount := decimal.NewFromInt(dto.AmountSatoshis).
		Div(decimal.NewFromInt(satoshisPerBSV))

	result, err := s.client.CreatePaymentRequest(ctx, handcash.PaymentRequestParams{
		Product: product,
		Receivers: []handcash.PaymentReceiver{{
			SendAmount:  sendAmount,
			Destination: s.destination,
		}},
		InstrumentCurrencyCode:   "BSV",
		DenominationCurrencyCode: "BSV",
		Notifications: &handcash.WebhookNotification{
			WebhookURL: s.webhookURL,
		},
		ExpirationType: "onPaymentCompleted",
		RedirectURL:    s.redirectURL,
	})
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Create(ctx, CreateDTO{
		HandcashRequestID: result.ID,
		UserID:            userID,
		AmountSatoshis:    dto.AmountSatoshis,
		PaymentRequestURL: result.PaymentRequestURL,
		QRCodeURL:         result.PaymentRequestQRCodeURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist payment request")
	}

	ctx = s.logger.WithFields(ctx, map[string]any{
		"payment_request_id": row.ID.String(),
		"amount_satoshis":    dto.AmountSatoshis,
	})
	s.logger.Info(ctx, "payment request created")

	return FromModel(row), nil
}

// List returns the user's payment requests with their webhook history.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]PaymentRequestDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list payment requests")
	}
	return FromModels(rows), nil
}

// GetOwned loads a payment request and enforces that it belongs to the user.
func (s *Service) GetOwned(ctx context.Context, userID, requestID uuid.UUID) (*PaymentRequestDTO, error) {
	row, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment request")
	}
	if row.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment request belongs to another user")
	}
	return FromModel(row), nil
}
