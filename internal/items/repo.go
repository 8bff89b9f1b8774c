package items

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// Repository exposes minted item persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDTO holds the data required to persist a finalized minted item.
type CreateDTO struct {
	UserID         uuid.UUID
	CollectionID   uuid.UUID
	HandcashItemID string
	Origin         *string
	Name           string
	Description    *string
	ImageURL       string
	TokenSupply    int
}

// Create inserts a minted item row.
func (r *Repository) Create(ctx context.Context, dto CreateDTO) (*models.Item, error) {
	item := &models.Item{
		ID:             uuid.New(),
		UserID:         dto.UserID,
		CollectionID:   dto.CollectionID,
		HandcashItemID: dto.HandcashItemID,
		Origin:         dto.Origin,
		Name:           dto.Name,
		Description:    dto.Description,
		ImageURL:       dto.ImageURL,
		TokenSupply:    dto.TokenSupply,
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListByUser returns the user's minted items, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindByHandcashID retrieves an item by the vendor-assigned id.
func (r *Repository) FindByHandcashID(ctx context.Context, handcashID string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Where("handcash_item_id = ?", handcashID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
